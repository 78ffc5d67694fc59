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

type OpenSession struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewOpenSession(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *OpenSession {
	return &OpenSession{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute abre o caixa do estabelecimento. No máximo uma sessão aberta
// por estabelecimento: a checagem roda em transação e o índice parcial
// único no banco fecha a corrida que sobrar.
func (uc *OpenSession) Execute(
	ctx context.Context,
	establishmentID uint,
	openingValue decimal.Decimal,
	openedBy uint,
) (*models.CashSession, error) {

	if err := domain.CanOpen(openingValue); err != nil {
		return nil, err
	}

	var created *models.CashSession

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetOpenSession(ctx, establishmentID); err == nil {
			return httperr.Conflict("session_already_open", "Já existe um caixa aberto.")
		}

		s := &models.CashSession{
			EstablishmentID: establishmentID,
			OpenedByID:      openedBy,
			OpeningValue:    openingValue,
			OpenedAt:        time.Now(),
		}
		if err := tx.CreateSession(ctx, s); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.Conflict("session_already_open", "Já existe um caixa aberto.")
			}
			return err
		}

		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventCashOpened,
		RecipientID: openedBy,
		Title:       "Caixa aberto",
		Message:     "Caixa aberto com " + openingValue.StringFixed(2) + ".",
		Metadata:    map[string]any{"session_id": created.ID},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &openedBy,
		Action:          "cash_session_opened",
		Entity:          "cash_session",
		EntityID:        &created.ID,
		Metadata:        map[string]any{"opening_value": openingValue.StringFixed(2)},
	})

	return created, nil
}
