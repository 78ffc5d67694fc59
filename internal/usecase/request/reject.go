package request

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	ordomain "github.com/oficinaflow/oficina-api/internal/domain/order"
	reqdomain "github.com/oficinaflow/oficina-api/internal/domain/request"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type RejectRequest struct {
	repo     ordomain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewRejectRequest(
	repo ordomain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *RejectRequest {
	return &RejectRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute recusa a solicitação: pendente vira rejeitada; em andamento
// vira cancelada. Recusa também conta como resolução para fins de
// aguardando peças.
func (uc *RejectRequest) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	requestID uint,
	actorID uint,
) (*AcceptResult, error) {

	result := &AcceptResult{}

	err := uc.repo.InTx(ctx, func(tx ordomain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		req, err := tx.GetRequest(ctx, orderID, requestID)
		if err != nil {
			return httperr.NotFoundErr("request_not_found", "Solicitação não encontrada.")
		}

		next, err := reqdomain.NextOnReject(reqdomain.Normalize(req.Status))
		if err != nil {
			return err
		}

		req.Status = string(next)
		req.ResponsibleID = &actorID
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}
		result.Request = req

		outstanding, err := tx.CountOutstandingPartRequests(ctx, orderID)
		if err != nil {
			return err
		}
		if outstanding == 0 && ordomain.ReturnFromAwaitingParts(o) {
			if err := tx.UpdateOrder(ctx, o); err != nil {
				return err
			}
			result.Order = o
		}

		if req.SenderID != actorID {
			uc.notifier.Dispatch(notification.Event{
				Type:        notification.EventRequestRejected,
				RecipientID: req.SenderID,
				Title:       "Solicitação recusada na OS " + o.Code,
				Message:     req.Subject,
				Metadata: map[string]any{
					"order_id":   orderID,
					"request_id": req.ID,
					"status":     req.Status,
				},
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          "request_rejected",
		Entity:          "request",
		EntityID:        &requestID,
		Metadata:        map[string]any{"order_id": orderID, "status": result.Request.Status},
	})

	return result, nil
}
