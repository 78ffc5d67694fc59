package order

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type FinalizeServices struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewFinalizeServices(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *FinalizeServices {
	return &FinalizeServices{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute alterna entre serviços finalizados e serviço reaberto.
// Usado quando o trabalho físico terminou mas o acerto ainda não.
func (uc *FinalizeServices) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	actorID uint,
) (*models.ServiceOrder, error) {

	var updated *models.ServiceOrder

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		if _, err := domain.ToggleServicesFinalized(o); err != nil {
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

	if updated.OpenedByID != actorID {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderStatusChanged,
			RecipientID: updated.OpenedByID,
			Title:       "OS " + updated.Code + " atualizada",
			Message:     "Status da OS " + updated.Code + " mudou para " + updated.Status + ".",
			Metadata:    map[string]any{"order_id": updated.ID, "to": updated.Status},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          "order_services_toggled",
		Entity:          "service_order",
		EntityID:        &updated.ID,
		Metadata:        map[string]any{"status": updated.Status},
	})

	return updated, nil
}
