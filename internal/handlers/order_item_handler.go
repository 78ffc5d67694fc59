package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	orderuc "github.com/oficinaflow/oficina-api/internal/usecase/order"
)

type OrderItemHandler struct {
	add    *orderuc.AddItem
	remove *orderuc.RemoveItem
}

func NewOrderItemHandler(add *orderuc.AddItem, remove *orderuc.RemoveItem) *OrderItemHandler {
	return &OrderItemHandler{add: add, remove: remove}
}

type AddItemRequest struct {
	CatalogItemID uint `json:"catalog_item_id" binding:"required"`
	Quantity      int  `json:"quantity"`
}

func (h *OrderItemHandler) Add(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.add.Execute(c.Request.Context(), orderuc.AddItemInput{
		EstablishmentID: establishmentID,
		OrderID:         id,
		ActorID:         userID,
		CatalogItemID:   req.CatalogItemID,
		Quantity:        req.Quantity,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Remove tira uma unidade da linha; a linha some quando zera.
func (h *OrderItemHandler) Remove(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	lineID, err := strconv.ParseUint(c.Param("lineId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_line_id", "Identificador de item inválido.")
		return
	}

	deleted, err := h.remove.Execute(c.Request.Context(), establishmentID, id, uint(lineID), userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
