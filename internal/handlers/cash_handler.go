package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cashdomain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/middleware"
	"github.com/oficinaflow/oficina-api/internal/money"
	cashuc "github.com/oficinaflow/oficina-api/internal/usecase/cash"
)

type CashHandler struct {
	repo     cashdomain.Repository
	open     *cashuc.OpenSession
	movement *cashuc.RecordMovement
	close    *cashuc.CloseSession
	payment  *cashuc.RecordPayment
}

func NewCashHandler(
	repo cashdomain.Repository,
	open *cashuc.OpenSession,
	movement *cashuc.RecordMovement,
	closeUC *cashuc.CloseSession,
	payment *cashuc.RecordPayment,
) *CashHandler {
	return &CashHandler{
		repo:     repo,
		open:     open,
		movement: movement,
		close:    closeUC,
		payment:  payment,
	}
}

func sessionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "Identificador de sessão inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// OPEN SESSION
// ======================================================

type OpenSessionRequest struct {
	OpeningValue decimal.Decimal `json:"opening_value"`

	// contagem de cédulas/moedas opcional; quando presente, o valor de
	// abertura é a soma da contagem
	Denominations []money.DenominationCount `json:"denominations"`
}

func (h *CashHandler) Open(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	opening := req.OpeningValue
	if len(req.Denominations) > 0 {
		opening = money.SumDenominations(req.Denominations)
	}

	session, err := h.open.Execute(c.Request.Context(), establishmentID, opening, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ======================================================
// LIST / CURRENT / DETAIL
// ======================================================

func (h *CashHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	sessions, err := h.repo.ListSessions(c.Request.Context(), establishmentID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_sessions", "Não foi possível listar as sessões.")
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *CashHandler) Current(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	session, err := h.repo.GetOpenSession(c.Request.Context(), establishmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "no_open_session", "Não há caixa aberto.")
			return
		}
		httperr.Internal(c, "failed_to_get_session", "Não foi possível consultar o caixa.")
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *CashHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, ok := sessionID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	session, err := h.repo.GetSession(ctx, establishmentID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "session_not_found", "Sessão não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_session", "Não foi possível consultar a sessão.")
		return
	}

	movements, err := h.repo.ListMovements(ctx, session.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_movements", "Não foi possível listar as movimentações.")
		return
	}

	payments, err := h.repo.ListPayments(ctx, session.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Não foi possível listar os pagamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":   session,
		"movements": movements,
		"payments":  payments,
	})
}

// ======================================================
// MOVEMENTS
// ======================================================

type MovementRequest struct {
	Type        string          `json:"type" binding:"required"`
	Value       decimal.Decimal `json:"value" binding:"required"`
	Description string          `json:"description"`
}

func (h *CashHandler) RecordMovement(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.movement.Execute(c.Request.Context(), cashuc.RecordMovementInput{
		EstablishmentID: establishmentID,
		SessionID:       id,
		UserID:          userID,
		Type:            req.Type,
		Value:           req.Value,
		Description:     req.Description,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ======================================================
// CLOSE
// ======================================================

type CloseSessionRequest struct {
	ClosingValue decimal.Decimal `json:"closing_value"`

	Denominations []money.DenominationCount `json:"denominations"`
}

func (h *CashHandler) Close(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	closing := req.ClosingValue
	if len(req.Denominations) > 0 {
		closing = money.SumDenominations(req.Denominations)
	}

	session, err := h.close.Execute(c.Request.Context(), establishmentID, id, closing, userID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ======================================================
// PAYMENT (rota aninhada na OS)
// ======================================================

type PaymentRequest struct {
	Method string          `json:"method" binding:"required"`
	Value  decimal.Decimal `json:"value" binding:"required"`

	// corpo repassado ao provedor quando o método não é dinheiro
	Provider json.RawMessage `json:"provider"`
}

func (h *CashHandler) RecordPayment(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	oid, ok := orderID(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	payment, err := h.payment.Execute(c.Request.Context(), cashuc.RecordPaymentInput{
		EstablishmentID: establishmentID,
		OrderID:         oid,
		ActorID:         userID,
		Method:          req.Method,
		Value:           req.Value,
		ProviderPayload: req.Provider,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}
