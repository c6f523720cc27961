package handler

import (
	"github.com/DmitryMisevra/shareit/internal/application"
	"github.com/DmitryMisevra/shareit/internal/response"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles HTTP requests for item request operations.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.AddRequest)
		requests.GET("", h.GetOwnRequests)
		requests.GET("/all", h.GetAllRequests)
		requests.GET("/:requestId", h.GetRequest)
	}
}

// AddRequest handles POST /requests.
func (h *RequestHandler) AddRequest(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddRequest(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetOwnRequests handles GET /requests.
func (h *RequestHandler) GetOwnRequests(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetOwnRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetAllRequests handles GET /requests/all?from=&size=.
func (h *RequestHandler) GetAllRequests(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	from, size, err := parseFromSize(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetAllRequests(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRequest handles GET /requests/:requestId.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	requestID, err := pathID(c, "requestId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetRequestByID(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
