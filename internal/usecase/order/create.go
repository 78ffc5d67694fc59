package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	EstablishmentID uint
	OpenedBy        uint

	ClientID  uint
	VehicleID uint

	Description  string
	Observations string

	ResponsibleID *uint
	ForecastExit  *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.ServiceOrder, error) {

	if _, err := uc.repo.GetClient(ctx, in.EstablishmentID, in.ClientID); err != nil {
		return nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
	}

	if _, err := uc.repo.GetVehicle(ctx, in.EstablishmentID, in.VehicleID); err != nil {
		return nil, httperr.NotFoundErr("vehicle_not_found", "Veículo não encontrado.")
	}

	// responsável só pode ser mecânico ou gerente
	if in.ResponsibleID != nil {
		resp, err := uc.repo.GetUser(ctx, in.EstablishmentID, *in.ResponsibleID)
		if err != nil {
			return nil, httperr.NotFoundErr("responsible_not_found", "Responsável não encontrado.")
		}
		if !resp.CanBeResponsible() {
			return nil, httperr.Forbidden("responsible_role_not_allowed", "Usuário não pode ser responsável por OS.")
		}
	}

	o := &models.ServiceOrder{
		Code:            newOrderCode(),
		EstablishmentID: in.EstablishmentID,
		ClientID:        in.ClientID,
		VehicleID:       in.VehicleID,
		Description:     in.Description,
		Observations:    in.Observations,
		ResponsibleID:   in.ResponsibleID,
		Status:          string(domain.InitialStatus()),
		OpenedByID:      in.OpenedBy,
		OpenedAt:        time.Now(),
		ForecastExit:    in.ForecastExit,
	}

	if err := uc.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	if in.ResponsibleID != nil && *in.ResponsibleID != in.OpenedBy {
		uc.notifier.Dispatch(notification.Event{
			Type:        notification.EventOrderCreated,
			RecipientID: *in.ResponsibleID,
			Title:       "Nova OS " + o.Code,
			Message:     "Você foi atribuído como responsável pela OS " + o.Code + ".",
			Metadata:    map[string]any{"order_id": o.ID, "code": o.Code},
		})
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.OpenedBy,
		Action:          "order_created",
		Entity:          "service_order",
		EntityID:        &o.ID,
	})

	return o, nil
}

func newOrderCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("OS-%s", raw[:8])
}
