package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/techverse/internal/http/response"
	"github.com/yungbote/techverse/internal/platform/apierr"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/services"
)

type ItemHandler struct {
	log   *logger.Logger
	items services.ItemService
}

func NewItemHandler(log *logger.Logger, items services.ItemService) *ItemHandler {
	return &ItemHandler{
		log:   log.With("handler", "ItemHandler"),
		items: items,
	}
}

// POST /api/GetItems
// body: {}
func (h *ItemHandler) GetItems(c *gin.Context) {
	list, err := h.items.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, itemAPIError(err, "fetch_items_failed"))
		return
	}
	response.RespondOK(c, list)
}

// POST /api/AddItem
// body: { "text": "..." }
func (h *ItemHandler) AddItem(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", errors.New("invalid request body")))
		return
	}

	if _, err := h.items.Add(c.Request.Context(), req.Text); err != nil {
		response.RespondAPIError(c, itemAPIError(err, "add_item_failed"))
		return
	}
	response.RespondOK(c, gin.H{})
}

// POST /api/DeleteItem
// body: { "id": 1 }
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	var req struct {
		ID *int64 `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", errors.New("invalid request body")))
		return
	}

	if err := h.items.Delete(c.Request.Context(), *req.ID); err != nil {
		response.RespondAPIError(c, itemAPIError(err, "delete_item_failed"))
		return
	}
	response.RespondOK(c, gin.H{})
}
