package handler

import (
	"strconv"

	"github.com/DmitryMisevra/shareit/internal/application"
	"github.com/DmitryMisevra/shareit/internal/response"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetBookingsByBooker)
		bookings.GET("/owner", h.GetBookingsByOwner)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.UpdateBookingStatus)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateBookingStatus handles PATCH /bookings/:bookingId?approved=.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.UpdateBookingStatus(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.FindBookingByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingsByBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) GetBookingsByBooker(c *gin.Context) {
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

	state := c.DefaultQuery("state", "ALL")
	result, err := h.service.GetBookingsByBooker(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingsByOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) GetBookingsByOwner(c *gin.Context) {
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

	state := c.DefaultQuery("state", "ALL")
	result, err := h.service.GetBookingsByOwner(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
