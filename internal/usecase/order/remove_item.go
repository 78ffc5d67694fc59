package order

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/money"
)

type RemoveItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveItem {
	return &RemoveItem{
		repo:  repo,
		audit: audit,
	}
}

// Execute reduz a linha em uma unidade; chegando a zero a linha some.
// Devolve deleted para o chamador distinguir remoção de redução.
func (uc *RemoveItem) Execute(
	ctx context.Context,
	establishmentID uint,
	orderID uint,
	lineID uint,
	actorID uint,
) (deleted bool, err error) {

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, establishmentID, orderID)
		if err != nil {
			return httperr.NotFoundErr("order_not_found", "OS não encontrada.")
		}

		if err := domain.CanMutateContents(domain.Status(o.Status)); err != nil {
			return err
		}

		item, err := tx.GetItem(ctx, orderID, lineID)
		if err != nil {
			return httperr.NotFoundErr("item_not_found", "Item não encontrado na OS.")
		}

		item.Quantity--
		if item.Quantity <= 0 {
			if err := tx.DeleteItem(ctx, item.ID); err != nil {
				return err
			}
			deleted = true
		} else {
			item.Total = money.LineTotal(item.UnitPrice, item.Quantity)
			if err := tx.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		return retotal(ctx, tx, o)
	})
	if err != nil {
		return false, err
	}

	action := "order_item_reduced"
	if deleted {
		action = "order_item_removed"
	}
	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		UserID:          &actorID,
		Action:          action,
		Entity:          "order_item",
		EntityID:        &lineID,
		Metadata:        map[string]any{"order_id": orderID},
	})

	return deleted, nil
}
