package order

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/money"
)

// ======================================================
// INPUT
// ======================================================

type AddItemInput struct {
	EstablishmentID uint
	OrderID         uint
	ActorID         uint

	CatalogItemID uint
	Quantity      int
}

// ======================================================
// USE CASE
// ======================================================

type AddItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddItem {
	return &AddItem{
		repo:  repo,
		audit: audit,
	}
}

// Execute insere um item de catálogo na OS:
//   - produto já presente → soma quantidade sobre a mesma linha
//   - serviço já presente → conflito (serviço é único por OS)
//   - ausente → nova linha com snapshot do preço atual do catálogo
//
// Tudo dentro de uma transação com a linha da OS travada; o total da OS
// é recalculado antes do commit.
func (uc *AddItem) Execute(
	ctx context.Context,
	in AddItemInput,
) (*models.OrderItem, error) {

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var result *models.OrderItem

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, in.EstablishmentID, in.OrderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		if err := domain.CanMutateContents(domain.Status(o.Status)); err != nil {
			return err
		}

		catalog, err := tx.GetCatalogItem(ctx, in.EstablishmentID, in.CatalogItemID)
		if err != nil {
			return httperr.NotFoundErr("catalog_item_not_found", "Item de catálogo não encontrado.")
		}

		existing, err := tx.GetItemByCatalog(ctx, in.OrderID, in.CatalogItemID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			if existing.Kind == models.CatalogKindService {
				return httperr.Conflict("service_already_present", "Serviço já incluído na OS.")
			}

			existing.Quantity += quantity
			existing.Total = money.LineTotal(existing.UnitPrice, existing.Quantity)
			if err := tx.UpdateItem(ctx, existing); err != nil {
				return err
			}
			result = existing
		} else {
			if catalog.Kind == models.CatalogKindService {
				quantity = 1
			}

			item := &models.OrderItem{
				ServiceOrderID: in.OrderID,
				CatalogItemID:  catalog.ID,
				Kind:           catalog.Kind,
				Quantity:       quantity,
				UnitPrice:      catalog.Price,
				Total:          money.LineTotal(catalog.Price, quantity),
			}
			if err := tx.CreateItem(ctx, item); err != nil {
				return err
			}
			result = item
		}

		return retotal(ctx, tx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		UserID:          &in.ActorID,
		Action:          "order_item_added",
		Entity:          "order_item",
		EntityID:        &result.ID,
		Metadata:        map[string]any{"order_id": in.OrderID, "quantity": result.Quantity},
	})

	return result, nil
}

// retotal reaplica a invariante total = subtotal − desconto + acréscimo.
// Roda dentro da mesma transação de qualquer mutação de item.
func retotal(ctx context.Context, tx domain.Repository, o *models.ServiceOrder) error {
	subtotal, err := tx.Subtotal(ctx, o.ID)
	if err != nil {
		return err
	}

	o.Total = money.OrderTotal(subtotal, o.Discount, o.Surcharge)
	return tx.UpdateOrder(ctx, o)
}
