package order

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type AcceptPendingOrder struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewAcceptPendingOrder(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *AcceptPendingOrder {
	return &AcceptPendingOrder{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute aceita uma OS pendente e assume a responsabilidade.
// Só vale enquanto a OS ainda está pendente.
func (uc *AcceptPendingOrder) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	responsibleID uint,
) (*models.ServiceOrder, error) {

	resp, err := uc.repo.GetUser(ctx, establishmentID, responsibleID)
	if err != nil {
		return nil, httperr.NotFoundErr("responsible_not_found", "Responsável não encontrado.")
	}
	if !resp.CanBeResponsible() {
		return nil, httperr.Forbidden("responsible_role_not_allowed", "Usuário não pode ser responsável por OS.")
	}

	var updated *models.ServiceOrder

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		if err := domain.Accept(o, responsibleID); err != nil {
			return err
		}

		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.OpenedByID != responsibleID {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderStatusChanged,
			RecipientID: updated.OpenedByID,
			Title:       "OS " + updated.Code + " em andamento",
			Message:     resp.Name + " assumiu a OS " + updated.Code + ".",
			Metadata:    map[string]any{"order_id": updated.ID},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &responsibleID,
		Action:          "order_accepted",
		Entity:          "service_order",
		EntityID:        &updated.ID,
	})

	return updated, nil
}
