package handler

import (
	"github.com/DmitryMisevra/shareit/internal/application"
	"github.com/DmitryMisevra/shareit/internal/response"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.GetItemsByOwner)
		items.GET("/search", h.SearchItems)
		items.GET("/:itemId", h.GetItem)
		items.PATCH("/:itemId", h.UpdateItem)
		items.POST("/:itemId/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /items/:itemId.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /items/:itemId.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetItemByID(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItemsByOwner handles GET /items?from=&size=.
func (h *ItemHandler) GetItemsByOwner(c *gin.Context) {
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

	result, err := h.service.GetItemsByOwner(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchItems handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	from, size, err := parseFromSize(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /items/:itemId/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
