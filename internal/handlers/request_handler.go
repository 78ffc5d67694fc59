package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	requestuc "github.com/oficinaflow/oficina-api/internal/usecase/request"
)

type RequestHandler struct {
	create *requestuc.CreateRequest
	accept *requestuc.AcceptRequest
	reject *requestuc.RejectRequest
	delete *requestuc.DeleteRequest
}

func NewRequestHandler(
	create *requestuc.CreateRequest,
	accept *requestuc.AcceptRequest,
	reject *requestuc.RejectRequest,
	del *requestuc.DeleteRequest,
) *RequestHandler {
	return &RequestHandler{
		create: create,
		accept: accept,
		reject: reject,
		delete: del,
	}
}

func requestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("reqId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request_id", "Identificador de solicitação inválido.")
		return 0, false
	}
	return uint(id), true
}

type CreateRequestBody struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := orderID(c)
	if !ok {
		return
	}

	var req CreateRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.create.Execute(c.Request.Context(), requestuc.CreateRequestInput{
		EstablishmentID: establishmentID,
		OrderID:         id,
		SenderID:        userID,
		RecipientID:     req.RecipientID,
		Subject:         req.Subject,
		Type:            req.Type,
		Description:     req.Description,
		Priority:        req.Priority,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// UPDATE STATUS (accept | reject)
// ======================================================

type UpdateRequestStatusBody struct {
	Action string `json:"action" binding:"required"`
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	oid, ok := orderID(c)
	if !ok {
		return
	}
	rid, ok := requestID(c)
	if !ok {
		return
	}

	var body UpdateRequestStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var (
		result *requestuc.AcceptResult
		err    error
	)

	switch body.Action {
	case "accept":
		result, err = h.accept.Execute(c.Request.Context(), establishmentID, oid, rid, userID)
	case "reject":
		result, err = h.reject.Execute(c.Request.Context(), establishmentID, oid, rid, userID)
	default:
		httperr.BadRequest(c, "invalid_action", "Ação deve ser accept ou reject.")
		return
	}

	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RequestHandler) Delete(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	oid, ok := orderID(c)
	if !ok {
		return
	}
	rid, ok := requestID(c)
	if !ok {
		return
	}

	order, err := h.delete.Execute(c.Request.Context(), establishmentID, oid, rid, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Solicitação removida.",
		"order":   order,
	})
}
