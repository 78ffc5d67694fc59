package order

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/money"
)

// OrderDetail é a projeção completa da OS servida ao cliente:
// itens já deduplicados, subtotal calculado no banco.
type OrderDetail struct {
	Order     *models.ServiceOrder   `json:"order"`
	Items     []models.OrderItem     `json:"items"`
	Requests  []models.Request       `json:"requests"`
	Checklist []models.ChecklistItem `json:"checklist"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
}

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
) (*OrderDetail, error) {

	o, err := uc.repo.GetOrder(ctx, establishmentID, orderID)
	if err != nil {
		return nil, httperr.NotFoundErr("order_not_found", "OS não encontrada.")
	}

	items, err := uc.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	requests, err := uc.repo.ListRequests(ctx, orderID)
	if err != nil {
		return nil, err
	}

	checklist, err := uc.repo.ListChecklist(ctx, orderID)
	if err != nil {
		return nil, err
	}

	subtotal, err := uc.repo.Subtotal(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:     o,
		Items:     items,
		Requests:  requests,
		Checklist: checklist,
		Subtotal:  money.Round2(subtotal),
	}, nil
}

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	establishmentID uint,
	status string,
) ([]models.ServiceOrder, error) {
	return uc.repo.ListOrders(ctx, establishmentID, status)
}
