package cash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	ordomain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
	"github.com/oficinaflow/oficina-api/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentInput struct {
	EstablishmentID uint
	OrderID         uint
	ActorID         uint

	Method string
	Value  decimal.Decimal

	// payload repassado ao provedor quando o método não é dinheiro
	ProviderPayload json.RawMessage
}

var validMethods = map[string]bool{
	models.PaymentMethodCash:     true,
	models.PaymentMethodPix:      true,
	models.PaymentMethodCard:     true,
	models.PaymentMethodTransfer: true,
}

// ======================================================
// USE CASE
// ======================================================

// RecordPayment liga as duas pontas: a OS finalizada e o caixa aberto.
// Um pagamento confirmado incrementa o revenue_total da sessão, nunca
// as entradas manuais.
type RecordPayment struct {
	cashRepo  domain.Repository
	orderRepo ordomain.Repository
	gateway   payments.Gateway
	notifier  *notification.Dispatcher
	audit     *audit.Dispatcher
}

func NewRecordPayment(
	cashRepo domain.Repository,
	orderRepo ordomain.Repository,
	gateway payments.Gateway,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *RecordPayment {
	return &RecordPayment{
		cashRepo:  cashRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		notifier:  notifier,
		audit:     audit,
	}
}

func (uc *RecordPayment) Execute(
	ctx context.Context,
	in RecordPaymentInput,
) (*models.Payment, error) {

	if !validMethods[in.Method] {
		return nil, httperr.Validation("invalid_payment_method", "Método de pagamento inválido.")
	}
	if !in.Value.IsPositive() {
		return nil, httperr.Validation("invalid_value", "Valor deve ser maior que zero.")
	}

	o, err := uc.orderRepo.GetOrder(ctx, in.EstablishmentID, in.OrderID)
	if err != nil {
		return nil, httperr.NotFoundErr("order_not_found", "OS não encontrada.")
	}
	if ordomain.Status(o.Status) != ordomain.StatusFinalized {
		return nil, httperr.InvalidTransition("order_not_payable", "A OS ainda não foi finalizada.")
	}

	// confirmação no provedor acontece antes da transação local; se o
	// commit falhar depois, o reprocesso é idempotente no provedor
	var providerID, providerStatus string
	if in.Method != models.PaymentMethodCash && uc.gateway != nil {
		providerID, providerStatus, _, err = uc.gateway.CreatePayment(ctx, in.ProviderPayload)
		if err != nil {
			return nil, err
		}
		if providerStatus != "approved" {
			return nil, httperr.Conflict("payment_not_approved", "Pagamento não aprovado pelo provedor.")
		}
	}

	var created *models.Payment

	err = uc.cashRepo.InTx(ctx, func(tx domain.Repository) error {
		s, err := tx.GetOpenSessionForUpdate(ctx, in.EstablishmentID)
		if err != nil {
			return httperr.Conflict("no_open_session", "Não há caixa aberto para receber o pagamento.")
		}

		p := &models.Payment{
			ServiceOrderID:    in.OrderID,
			CashSessionID:     s.ID,
			Method:            in.Method,
			Value:             in.Value,
			ProviderPaymentID: providerID,
			ProviderStatus:    providerStatus,
			ReceivedByID:      in.ActorID,
			ConfirmedAt:       time.Now(),
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}

		domain.ApplyPayment(s, in.Value)
		if err := tx.UpdateSession(ctx, s); err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if o.OpenedByID != in.ActorID {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventPaymentConfirmed,
			RecipientID: o.OpenedByID,
			Title:       "Pagamento recebido na OS " + o.Code,
			Message:     "Recebido " + in.Value.StringFixed(2) + " (" + in.Method + ").",
			Metadata: map[string]any{
				"order_id":   o.ID,
				"payment_id": created.ID,
			},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.ActorID,
		Action:          "payment_recorded",
		Entity:          "payment",
		EntityID:        &created.ID,
		Metadata: map[string]any{
			"order_id": in.OrderID,
			"method":   in.Method,
			"value":    in.Value.StringFixed(2),
		},
	})

	return created, nil
}
