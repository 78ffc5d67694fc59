package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oficinaflow/oficina-api/internal/models"
)

// Repository cobre a OS e seus agregados filhos (itens, solicitações,
// checklist). InTx devolve um Repository amarrado à transação; os casos
// de uso fazem todo read-modify-write dentro dele, com a linha da OS
// travada por GetOrderForUpdate.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Lookups --------
	GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error)
	GetUser(ctx context.Context, establishmentID, userID uint) (*models.User, error)
	GetClient(ctx context.Context, establishmentID, clientID uint) (*models.Client, error)
	GetVehicle(ctx context.Context, establishmentID, vehicleID uint) (*models.Vehicle, error)
	GetCatalogItem(ctx context.Context, establishmentID, itemID uint) (*models.CatalogItem, error)

	// -------- Service Order --------
	CreateOrder(ctx context.Context, o *models.ServiceOrder) error
	GetOrder(ctx context.Context, establishmentID, orderID uint) (*models.ServiceOrder, error)
	GetOrderForUpdate(ctx context.Context, establishmentID, orderID uint) (*models.ServiceOrder, error)
	UpdateOrder(ctx context.Context, o *models.ServiceOrder) error
	DeleteOrderCascade(ctx context.Context, orderID uint) error
	ListOrders(ctx context.Context, establishmentID uint, status string) ([]models.ServiceOrder, error)

	// -------- Items --------
	CreateItem(ctx context.Context, item *models.OrderItem) error
	UpdateItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, itemID uint) error
	GetItem(ctx context.Context, orderID, lineID uint) (*models.OrderItem, error)
	GetItemByCatalog(ctx context.Context, orderID, catalogItemID uint) (*models.OrderItem, error)
	ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	Subtotal(ctx context.Context, orderID uint) (decimal.Decimal, error)

	// -------- Requests --------
	CreateRequest(ctx context.Context, req *models.Request) error
	GetRequest(ctx context.Context, orderID, requestID uint) (*models.Request, error)
	UpdateRequest(ctx context.Context, req *models.Request) error
	DeleteRequest(ctx context.Context, requestID uint) error
	ListRequests(ctx context.Context, orderID uint) ([]models.Request, error)
	CountOutstandingPartRequests(ctx context.Context, orderID uint) (int64, error)

	// -------- Checklist --------
	CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error
	GetChecklistItem(ctx context.Context, orderID, itemID uint) (*models.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item *models.ChecklistItem) error
	DeleteChecklistItem(ctx context.Context, itemID uint) error
	ListChecklist(ctx context.Context, orderID uint) ([]models.ChecklistItem, error)
}
