package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	orderuc "github.com/oficinaflow/oficina-api/internal/usecase/order"
)

// OrderHandler é fino: bind -> caso de uso -> httperr.From.
type OrderHandler struct {
	create           *orderuc.CreateOrder
	list             *orderuc.ListOrders
	get              *orderuc.GetOrder
	setStatus        *orderuc.SetStatus
	accept           *orderuc.AcceptPendingOrder
	finalizeServices *orderuc.FinalizeServices
	finalize         *orderuc.FinalizeOrder
	delete           *orderuc.DeleteOrder
}

func NewOrderHandler(
	create *orderuc.CreateOrder,
	list *orderuc.ListOrders,
	get *orderuc.GetOrder,
	setStatus *orderuc.SetStatus,
	accept *orderuc.AcceptPendingOrder,
	finalizeServices *orderuc.FinalizeServices,
	finalize *orderuc.FinalizeOrder,
	del *orderuc.DeleteOrder,
) *OrderHandler {
	return &OrderHandler{
		create:           create,
		list:             list,
		get:              get,
		setStatus:        setStatus,
		accept:           accept,
		finalizeServices: finalizeServices,
		finalize:         finalize,
		delete:           del,
	}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_order_id", "Identificador de OS inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE ORDER
// ======================================================

type CreateOrderRequest struct {
	ClientID  uint `json:"client_id" binding:"required"`
	VehicleID uint `json:"vehicle_id" binding:"required"`

	Description  string `json:"description" binding:"required"`
	Observations string `json:"observations"`

	ResponsibleID *uint      `json:"responsible_id"`
	ForecastExit  *time.Time `json:"forecast_exit"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	order, err := h.create.Execute(c.Request.Context(), orderuc.CreateOrderInput{
		EstablishmentID: establishmentID,
		OpenedBy:        userID,
		ClientID:        req.ClientID,
		VehicleID:       req.VehicleID,
		Description:     req.Description,
		Observations:    req.Observations,
		ResponsibleID:   req.ResponsibleID,
		ForecastExit:    req.ForecastExit,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	orders, err := h.list.Execute(c.Request.Context(), establishmentID, c.Query("status"))
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), establishmentID, id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ======================================================
// STATUS
// ======================================================

type SetStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	ResponsibleID *uint  `json:"responsible_id"`
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	order, err := h.setStatus.Execute(c.Request.Context(), orderuc.SetStatusInput{
		EstablishmentID: establishmentID,
		OrderID:         id,
		ActorID:         userID,
		Status:          req.Status,
		ResponsibleID:   req.ResponsibleID,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Accept: OS pendente vira em andamento com o usuário como responsável.
func (h *OrderHandler) Accept(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.accept.Execute(c.Request.Context(), establishmentID, id, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// FinalizeServices alterna serviços finalizados / serviço reaberto.
func (h *OrderHandler) FinalizeServices(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.finalizeServices.Execute(c.Request.Context(), establishmentID, id, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Finalize(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.finalize.Execute(c.Request.Context(), establishmentID, id, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), establishmentID, id, userID); err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OS removida."})
}
