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

// AcceptResult devolve a solicitação e, quando houve efeito colateral,
// a OS atualizada.
type AcceptResult struct {
	Request *models.Request      `json:"request"`
	Order   *models.ServiceOrder `json:"order,omitempty"`
}

type AcceptRequest struct {
	repo     ordomain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewAcceptRequest(
	repo ordomain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *AcceptRequest {
	return &AcceptRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute avança a solicitação: pendente → em andamento → concluída
// (rejeitada pode ser reaceita). Concluir a última solicitação de peça
// pendente devolve a OS de aguardando peças para em andamento.
func (uc *AcceptRequest) Execute(
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

		next, err := reqdomain.NextOnAccept(reqdomain.Normalize(req.Status))
		if err != nil {
			return err
		}

		req.Status = string(next)
		req.ResponsibleID = &actorID
		if err := tx.UpdateRequest(ctx, req); err != nil {
			return err
		}
		result.Request = req

		// sem solicitações de peça pendentes, a OS volta a andar
		if !reqdomain.IsOutstanding(next) {
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
		}

		if req.SenderID != actorID {
			uc.notifier.Dispatch(notification.Event{
				Type:        notification.EventRequestAccepted,
				RecipientID: req.SenderID,
				Title:       "Solicitação aceita na OS " + o.Code,
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
		Action:          "request_accepted",
		Entity:          "request",
		EntityID:        &requestID,
		Metadata:        map[string]any{"order_id": orderID, "status": result.Request.Status},
	})

	return result, nil
}
