package cash

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RecordMovementInput struct {
	EstablishmentID uint
	SessionID       uint
	UserID          uint

	Type        string
	Value       decimal.Decimal
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type RecordMovement struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRecordMovement(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RecordMovement {
	return &RecordMovement{
		repo:  repo,
		audit: audit,
	}
}

// Execute lança uma entrada/saída manual contra o caixa aberto.
// A linha da sessão fica travada do início ao fim: movimentações
// concorrentes não intercalam sobre os totais.
func (uc *RecordMovement) Execute(
	ctx context.Context,
	in RecordMovementInput,
) (*models.CashSession, error) {

	var updated *models.CashSession

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		s, err := tx.GetSessionForUpdate(ctx, in.EstablishmentID, in.SessionID)
		if err != nil {
			return httperr.NotFoundErr("session_not_found", "Caixa não encontrado.")
		}

		if err := domain.ValidateMovement(s, in.Type, in.Value); err != nil {
			return err
		}

		m := &models.Movement{
			CashSessionID: s.ID,
			Type:          in.Type,
			Description:   in.Description,
			Value:         in.Value,
			UserID:        in.UserID,
		}
		if err := tx.CreateMovement(ctx, m); err != nil {
			return err
		}

		domain.ApplyMovement(s, in.Type, in.Value)
		if err := tx.UpdateSession(ctx, s); err != nil {
			return err
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.UserID,
		Action:          "cash_movement_recorded",
		Entity:          "cash_session",
		EntityID:        &updated.ID,
		Metadata: map[string]any{
			"type":  in.Type,
			"value": in.Value.StringFixed(2),
		},
	})

	return updated, nil
}
