package order

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type DeleteOrder struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewDeleteOrder(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *DeleteOrder {
	return &DeleteOrder{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute apaga a OS em qualquer status, em cascata sobre itens,
// solicitações, checklist e anexos. Operação terminal, confirmada na UI.
func (uc *DeleteOrder) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	actorID uint,
) error {

	var code string
	var interested []uint

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		code = o.Code
		if o.OpenedByID != actorID {
			interested = append(interested, o.OpenedByID)
		}
		if o.ResponsibleID != nil && *o.ResponsibleID != actorID && *o.ResponsibleID != o.OpenedByID {
			interested = append(interested, *o.ResponsibleID)
		}

		return tx.DeleteOrderCascade(ctx, orderID)
	})
	if err != nil {
		return err
	}

	for _, id := range interested {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderDeleted,
			RecipientID: id,
			Title:       "OS " + code + " excluída",
			Message:     "A OS " + code + " foi excluída.",
			Metadata:    map[string]any{"order_id": orderID, "code": code},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          "order_deleted",
		Entity:          "service_order",
		EntityID:        &orderID,
		Metadata:        map[string]any{"code": code},
	})

	return nil
}
