package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/oficinaflow/oficina-api/internal/httperr"
	"github.com/oficinaflow/oficina-api/internal/models"
)

func TestAddItemProdutoRepetidoSomaQuantidade(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAddItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	catalog := &models.CatalogItem{
		ID:    10,
		Kind:  models.CatalogKindProduct,
		Price: decimal.RequireFromString("12.00"), // preço atual, não usado
	}
	// linha existente com snapshot antigo de 10.00
	existing := &models.OrderItem{
		ID:             5,
		ServiceOrderID: 1,
		CatalogItemID:  10,
		Kind:           models.CatalogKindProduct,
		Quantity:       2,
		UnitPrice:      decimal.RequireFromString("10.00"),
		Total:          decimal.RequireFromString("20.00"),
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetCatalogItem", mock.Anything, uint(1), uint(10)).Return(catalog, nil)
	repo.On("GetItemByCatalog", mock.Anything, uint(1), uint(10)).Return(existing, nil)
	repo.On("UpdateItem", mock.Anything, existing).Return(nil)
	repo.On("Subtotal", mock.Anything, uint(1)).Return(decimal.RequireFromString("50.00"), nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	item, err := uc.Execute(context.Background(), AddItemInput{
		EstablishmentID: 1,
		OrderID:         1,
		ActorID:         2,
		CatalogItemID:   10,
		Quantity:        3,
	})

	assert.NoError(t, err)
	// 2 + 3 = 5 na mesma linha, sempre com o preço do snapshot
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, item.Total.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, o.Total.Equal(decimal.RequireFromString("50.00")))

	repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAddItemServicoRepetidoConflita(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAddItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	catalog := &models.CatalogItem{ID: 20, Kind: models.CatalogKindService}
	existing := &models.OrderItem{
		ID:            7,
		CatalogItemID: 20,
		Kind:          models.CatalogKindService,
		Quantity:      1,
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetCatalogItem", mock.Anything, uint(1), uint(20)).Return(catalog, nil)
	repo.On("GetItemByCatalog", mock.Anything, uint(1), uint(20)).Return(existing, nil)

	_, err := uc.Execute(context.Background(), AddItemInput{
		EstablishmentID: 1,
		OrderID:         1,
		CatalogItemID:   20,
		Quantity:        1,
	})

	assert.True(t, httperr.IsBusiness(err, "service_already_present"))
	repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestAddItemNovoCongelaPrecoDoCatalogo(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAddItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	catalog := &models.CatalogItem{
		ID:    30,
		Kind:  models.CatalogKindProduct,
		Price: decimal.RequireFromString("49.90"),
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetCatalogItem", mock.Anything, uint(1), uint(30)).Return(catalog, nil)
	repo.On("GetItemByCatalog", mock.Anything, uint(1), uint(30)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	repo.On("Subtotal", mock.Anything, uint(1)).Return(decimal.RequireFromString("99.80"), nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	item, err := uc.Execute(context.Background(), AddItemInput{
		EstablishmentID: 1,
		OrderID:         1,
		CatalogItemID:   30,
		Quantity:        2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("49.90")))
	assert.True(t, item.Total.Equal(decimal.RequireFromString("99.80")))
	repo.AssertExpectations(t)
}

func TestAddItemServicoNovoForcaQuantidadeUm(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAddItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	catalog := &models.CatalogItem{
		ID:    40,
		Kind:  models.CatalogKindService,
		Price: decimal.RequireFromString("120.00"),
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetCatalogItem", mock.Anything, uint(1), uint(40)).Return(catalog, nil)
	repo.On("GetItemByCatalog", mock.Anything, uint(1), uint(40)).
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*models.OrderItem")).Return(nil)
	repo.On("Subtotal", mock.Anything, uint(1)).Return(decimal.RequireFromString("120.00"), nil)
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	item, err := uc.Execute(context.Background(), AddItemInput{
		EstablishmentID: 1,
		OrderID:         1,
		CatalogItemID:   40,
		Quantity:        4, // ignorado para serviço
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Total.Equal(decimal.RequireFromString("120.00")))
}

func TestAddItemOSEncerrada(t *testing.T) {
	for _, status := range []string{"finalized", "cancelled", "rejected"} {
		o := &models.ServiceOrder{ID: 1, Status: status}
		repo := new(mockRepo)
		uc := NewAddItem(repo, noopAudit())
		repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)

		_, err := uc.Execute(context.Background(), AddItemInput{
			EstablishmentID: 1,
			OrderID:         1,
			CatalogItemID:   10,
			Quantity:        1,
		})

		assert.True(t, httperr.IsBusiness(err, "order_closed"), "status %s", status)
		repo.AssertNotCalled(t, "GetCatalogItem", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestRemoveItemReduzEDepoisApaga(t *testing.T) {
	repo := new(mockRepo)
	uc := NewRemoveItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	item := &models.OrderItem{
		ID:             5,
		ServiceOrderID: 1,
		Quantity:       2,
		UnitPrice:      decimal.RequireFromString("10.00"),
		Total:          decimal.RequireFromString("20.00"),
	}

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetItem", mock.Anything, uint(1), uint(5)).Return(item, nil)
	repo.On("UpdateItem", mock.Anything, item).Return(nil)
	repo.On("Subtotal", mock.Anything, uint(1)).Return(decimal.RequireFromString("10.00"), nil).Once()
	repo.On("UpdateOrder", mock.Anything, o).Return(nil)

	deleted, err := uc.Execute(context.Background(), 1, 1, 5, 2)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, item.Quantity)

	// segunda remoção zera e apaga a linha
	repo.On("DeleteItem", mock.Anything, uint(5)).Return(nil)
	repo.On("Subtotal", mock.Anything, uint(1)).Return(decimal.Zero, nil)

	deleted, err = uc.Execute(context.Background(), 1, 1, 5, 2)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, o.Total.IsZero())
}

func TestAddItemErroTransitorioNaoInsereLinha(t *testing.T) {
	repo := new(mockRepo)
	uc := NewAddItem(repo, noopAudit())

	o := &models.ServiceOrder{ID: 1, Status: "in_progress"}
	catalog := &models.CatalogItem{
		ID:    50,
		Kind:  models.CatalogKindProduct,
		Price: decimal.RequireFromString("10.00"),
	}

	boom := errors.New("connection reset")

	repo.On("GetOrderForUpdate", mock.Anything, uint(1), uint(1)).Return(o, nil)
	repo.On("GetCatalogItem", mock.Anything, uint(1), uint(50)).Return(catalog, nil)
	repo.On("GetItemByCatalog", mock.Anything, uint(1), uint(50)).Return(nil, boom)

	// só record not found leva ao insert; qualquer outro erro aborta
	_, err := uc.Execute(context.Background(), AddItemInput{
		EstablishmentID: 1,
		OrderID:         1,
		CatalogItemID:   50,
		Quantity:        1,
	})

	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
}
