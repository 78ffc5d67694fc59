package request

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	ordomain "github.com/oficinaflow/oficina-api/internal/domain/order"
	reqdomain "github.com/oficinaflow/oficina-api/internal/domain/request"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type DeleteRequest struct {
	repo     ordomain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewDeleteRequest(
	repo ordomain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *DeleteRequest {
	return &DeleteRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute remove a solicitação (vedado se concluída). Se ela era a
// última de peça pendente, a OS sai de aguardando peças.
func (uc *DeleteRequest) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	requestID uint,
	actorID uint,
) (*models.ServiceOrder, error) {

	var affectedOrder *models.ServiceOrder
	var deleted *models.Request
	var orderCode string

	err := uc.repo.InTx(ctx, func(tx ordomain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}
		orderCode = o.Code

		req, err := tx.GetRequest(ctx, orderID, requestID)
		if err != nil {
			return httperr.NotFoundErr("request_not_found", "Solicitação não encontrada.")
		}

		if err := reqdomain.CanDelete(reqdomain.Normalize(req.Status)); err != nil {
			return err
		}

		if err := tx.DeleteRequest(ctx, req.ID); err != nil {
			return err
		}
		deleted = req

		outstanding, err := tx.CountOutstandingPartRequests(ctx, orderID)
		if err != nil {
			return err
		}
		if outstanding == 0 && ordomain.ReturnFromAwaitingParts(o) {
			if err := tx.UpdateOrder(ctx, o); err != nil {
				return err
			}
			affectedOrder = o
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range []uint{deleted.SenderID, deleted.RecipientID} {
		if id == actorID {
			continue
		}
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventRequestDeleted,
			RecipientID: id,
			Title:       "Solicitação removida da OS " + orderCode,
			Message:     deleted.Subject,
			Metadata:    map[string]any{"order_id": orderID, "request_id": requestID},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          "request_deleted",
		Entity:          "request",
		EntityID:        &requestID,
		Metadata:        map[string]any{"order_id": orderID},
	})

	return affectedOrder, nil
}
