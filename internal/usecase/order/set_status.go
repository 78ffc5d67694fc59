package order

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

type SetStatusInput struct {
	EstablishmentID uint
	OrderID         uint
	ActorID         uint

	Status        string
	ResponsibleID *uint
}

type SetStatus struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewSetStatus(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *SetStatus {
	return &SetStatus{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute aplica uma mudança direta de status. Qualquer membro do enum é
// aceito a partir de qualquer status; não há tabela de origem e destino.
func (uc *SetStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*models.ServiceOrder, error) {

	if in.ResponsibleID != nil {
		resp, err := uc.repo.GetUser(ctx, in.EstablishmentID, *in.ResponsibleID)
		if err != nil {
			return nil, httperr.NotFoundErr("responsible_not_found", "Responsável não encontrado.")
		}
		if !resp.CanBeResponsible() {
			return nil, httperr.Forbidden("responsible_role_not_allowed", "Usuário não pode ser responsável por OS.")
		}
	}

	var updated *models.ServiceOrder

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, in.EstablishmentID, in.OrderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		previous := o.Status
		if err := domain.SetStatus(o, domain.Status(in.Status), in.ResponsibleID); err != nil {
			return err
		}

		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}

		updated = o
		uc.notifyStatusChange(o, previous, in.ActorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.ActorID,
		Action:          "order_status_changed",
		Entity:          "service_order",
		EntityID:        &updated.ID,
		Metadata:        map[string]any{"status": updated.Status},
	})

	return updated, nil
}

// notifyStatusChange avisa responsável e quem abriu a OS, sem avisar o
// próprio autor da mudança.
func (uc *SetStatus) notifyStatusChange(o *models.ServiceOrder, previous string, actorID uint) {
	recipients := map[uint]bool{}
	if o.ResponsibleID != nil {
		recipients[*o.ResponsibleID] = true
	}
	recipients[o.OpenedByID] = true
	delete(recipients, actorID)

	for id := range recipients {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderStatusChanged,
			RecipientID: id,
			Title:       "OS " + o.Code + " atualizada",
			Message:     "Status da OS " + o.Code + " mudou para " + o.Status + ".",
			Metadata: map[string]any{
				"order_id": o.ID,
				"from":     previous,
				"to":       o.Status,
			},
		})
	}
}
