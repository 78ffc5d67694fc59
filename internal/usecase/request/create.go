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

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	EstablishmentID uint
	OrderID         uint

	SenderID    uint
	RecipientID uint

	Subject     string
	Type        string
	Description string
	Priority    string
}

var validTypes = map[string]bool{
	models.RequestTypePart:     true,
	models.RequestTypeApproval: true,
	models.RequestTypePayment:  true,
	models.RequestTypeInfo:     true,
	models.RequestTypeOther:    true,
}

var validPriorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
	models.PriorityUrgent: true,
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo     ordomain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCreateRequest(
	repo ordomain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CreateRequest {
	return &CreateRequest{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute cria uma solicitação entre funcionários. Solicitação de peça
// sobre OS em andamento move a OS para aguardando peças. A política é
// da solicitação, executada sobre o agregado da OS na mesma transação.
func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.Request, error) {

	if !validTypes[in.Type] {
		return nil, httperr.Validation("invalid_request_type", "Tipo de solicitação inválido.")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !validPriorities[in.Priority] {
		return nil, httperr.Validation("invalid_priority", "Prioridade inválida.")
	}
	if in.Subject == "" {
		return nil, httperr.Validation("missing_subject", "Assunto obrigatório.")
	}

	// remetente e destinatário precisam ser do mesmo estabelecimento da OS
	if _, err := uc.repo.GetUser(ctx, in.EstablishmentID, in.SenderID); err != nil {
		return nil, httperr.NotFoundErr("sender_not_found", "Remetente não encontrado.")
	}
	if _, err := uc.repo.GetUser(ctx, in.EstablishmentID, in.RecipientID); err != nil {
		return nil, httperr.NotFoundErr("recipient_not_found", "Destinatário não encontrado.")
	}

	var created *models.Request
	var orderCode string

	err := uc.repo.InTx(ctx, func(tx ordomain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, in.EstablishmentID, in.OrderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		if err := ordomain.CanMutateContents(ordomain.Status(o.Status)); err != nil {
			return err
		}
		orderCode = o.Code

		req := &models.Request{
			ServiceOrderID: in.OrderID,
			SenderID:       in.SenderID,
			RecipientID:    in.RecipientID,
			Subject:        in.Subject,
			Type:           in.Type,
			Description:    in.Description,
			Priority:       in.Priority,
			Status:         string(reqdomain.StatusPending),
		}
		if err := tx.CreateRequest(ctx, req); err != nil {
			return err
		}
		created = req

		// solicitação de peça segura a OS
		if in.Type == models.RequestTypePart && ordomain.MarkAwaitingParts(o) {
			if err := tx.UpdateOrder(ctx, o); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:        notification.EventRequestCreated,
		RecipientID: in.RecipientID,
		Title:       "Nova solicitação na OS " + orderCode,
		Message:     in.Subject,
		Metadata: map[string]any{
			"order_id":   in.OrderID,
			"request_id": created.ID,
			"type":       in.Type,
			"priority":   in.Priority,
		},
	})

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.SenderID,
		Action:          "request_created",
		Entity:          "request",
		EntityID:        &created.ID,
		Metadata:        map[string]any{"order_id": in.OrderID, "type": in.Type},
	})

	return created, nil
}
