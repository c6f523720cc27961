package response

import (
	"net/http"

	"github.com/DmitryMisevra/shareit/internal/domain"
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error maps a domain error to its transport status: 400 for validation,
// unsupported filters and unavailable items, 403 for access failures, 404
// for missing entities, 409 for state conflicts. Anything unclassified is
// a 500 with the message withheld.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindUnsupported, domain.KindUnavailable:
		c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, ErrorBody{Error: err.Error()})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorBody{Error: err.Error()})
	case domain.KindConflict:
		c.JSON(http.StatusConflict, ErrorBody{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
}
