package order

import (
	"context"
	"time"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type FinalizeOrder struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewFinalizeOrder(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *FinalizeOrder {
	return &FinalizeOrder{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute encerra a OS de vez. Só vale a partir de serviços finalizados.
// A partir daqui o pagamento fica cobrável no caixa.
func (uc *FinalizeOrder) Execute(
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

		if err := domain.Finalize(o, actorID, time.Now()); err != nil {
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

	// pagamento liberado: avisa responsável e quem abriu
	recipients := map[uint]bool{updated.OpenedByID: true}
	if updated.ResponsibleID != nil {
		recipients[*updated.ResponsibleID] = true
	}
	delete(recipients, actorID)

	for id := range recipients {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderPaymentReady,
			RecipientID: id,
			Title:       "OS " + updated.Code + " finalizada",
			Message:     "OS " + updated.Code + " pronta para recebimento.",
			Metadata: map[string]any{
				"order_id": updated.ID,
				"total":    updated.Total.StringFixed(2),
			},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          "order_finalized",
		Entity:          "service_order",
		EntityID:        &updated.ID,
	})

	return updated, nil
}
