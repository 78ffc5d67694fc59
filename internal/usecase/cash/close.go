package cash

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type CloseSession struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCloseSession(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CloseSession {
	return &CloseSession{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute fecha o caixa: concilia saldo esperado contra o valor contado
// e registra a quebra. Fechar duas vezes é transição inválida; depois
// do fechamento a sessão é imutável.
func (uc *CloseSession) Execute(
	ctx context.Context,
	establishmentID uint,
	sessionID uint,
	closingValue decimal.Decimal,
	closedBy uint,
) (*models.CashSession, error) {

	if closingValue.IsNegative() {
		return nil, httperr.Validation("invalid_closing_value", "Valor de fechamento não pode ser negativo.")
	}

	var closed *models.CashSession

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		s, err := tx.GetSessionForUpdate(ctx, establishmentID, sessionID)
		if err != nil {
			return httperr.NotFoundErr("session_not_found", "Caixa não encontrado.")
		}

		if err := domain.Close(s, closingValue, closedBy, time.Now()); err != nil {
			return err
		}

		if err := tx.UpdateSession(ctx, s); err != nil {
			return err
		}

		closed = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventCashClosed,
		RecipientID: closed.OpenedByID,
		Title:       "Caixa fechado",
		Message:     "Caixa fechado com quebra de " + closed.Difference.StringFixed(2) + ".",
		Metadata: map[string]any{
			"session_id": closed.ID,
			"difference": closed.Difference.StringFixed(2),
		},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &closedBy,
		Action:          "cash_session_closed",
		Entity:          "cash_session",
		EntityID:        &closed.ID,
		Metadata: map[string]any{
			"closing_value": closingValue.StringFixed(2),
			"difference":    closed.Difference.StringFixed(2),
		},
	})

	return closed, nil
}
