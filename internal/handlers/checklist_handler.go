package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/models"
)

// ChecklistHandler é CRUD direto: o checklist não tem efeito colateral
// sobre o status da OS, só o bloqueio de OS encerrada se aplica.
type ChecklistHandler struct {
	db *gorm.DB
}

func NewChecklistHandler(db *gorm.DB) *ChecklistHandler {
	return &ChecklistHandler{db: db}
}

// loadMutableOrder carrega a OS do estabelecimento e barra OS terminal.
func (h *ChecklistHandler) loadMutableOrder(c *gin.Context) (*models.ServiceOrder, bool) {
	id, ok := orderID(c)
	if !ok {
		return nil, false
	}
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var o models.ServiceOrder
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&o).Error; err != nil {

		httperr.NotFound(c, "order_not_found", "OS não encontrada.")
		return nil, false
	}

	if err := order.CanMutateContents(order.Status(o.Status)); err != nil {
		httperr.From(c, err)
		return nil, false
	}

	return &o, true
}

type ChecklistItemRequest struct {
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
}

func (h *ChecklistHandler) Create(c *gin.Context) {
	o, ok := h.loadMutableOrder(c)
	if !ok {
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	item := models.ChecklistItem{
		ServiceOrderID: o.ID,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         models.ChecklistPending,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_checklist_item", "Não foi possível criar o item.")
		return
	}

	c.JSON(http.StatusCreated, item)
}

type UpdateChecklistItemRequest struct {
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (h *ChecklistHandler) Update(c *gin.Context) {
	o, ok := h.loadMutableOrder(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_item_id", "Identificador de item inválido.")
		return
	}

	var item models.ChecklistItem
	if err := h.db.
		Where("id = ? AND service_order_id = ?", itemID, o.ID).
		First(&item).Error; err != nil {

		httperr.NotFound(c, "checklist_item_not_found", "Item de checklist não encontrado.")
		return
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.Status != nil {
		if *req.Status != models.ChecklistPending && *req.Status != models.ChecklistDone {
			httperr.BadRequest(c, "invalid_status", "Status deve ser pending ou done.")
			return
		}
		item.Status = *req.Status
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_checklist_item", "Não foi possível atualizar o item.")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ChecklistHandler) Delete(c *gin.Context) {
	o, ok := h.loadMutableOrder(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_item_id", "Identificador de item inválido.")
		return
	}

	result := h.db.
		Where("id = ? AND service_order_id = ?", itemID, o.ID).
		Delete(&models.ChecklistItem{})

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_checklist_item", "Não foi possível remover o item.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "checklist_item_not_found", "Item de checklist não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removido."})
}
