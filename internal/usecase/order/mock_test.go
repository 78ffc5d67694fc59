package order

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
)

// mockRepo implementa domain.Repository para os testes. InTx executa a
// função direto sobre o próprio mock: as expectativas valem dentro e
// fora da "transação".
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

// -------- Lookups --------

func (m *mockRepo) GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Establishment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetUser(ctx context.Context, establishmentID, userID uint) (*models.User, error) {
	args := m.Called(ctx, establishmentID, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetClient(ctx context.Context, establishmentID, clientID uint) (*models.Client, error) {
	args := m.Called(ctx, establishmentID, clientID)
	if v := args.Get(0); v != nil {
		return v.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetVehicle(ctx context.Context, establishmentID, vehicleID uint) (*models.Vehicle, error) {
	args := m.Called(ctx, establishmentID, vehicleID)
	if v := args.Get(0); v != nil {
		return v.(*models.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetCatalogItem(ctx context.Context, establishmentID, itemID uint) (*models.CatalogItem, error) {
	args := m.Called(ctx, establishmentID, itemID)
	if v := args.Get(0); v != nil {
		return v.(*models.CatalogItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// -------- Service Order --------

func (m *mockRepo) CreateOrder(ctx context.Context, o *models.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockRepo) GetOrder(ctx context.Context, establishmentID, orderID uint) (*models.ServiceOrder, error) {
	args := m.Called(ctx, establishmentID, orderID)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetOrderForUpdate(ctx context.Context, establishmentID, orderID uint) (*models.ServiceOrder, error) {
	args := m.Called(ctx, establishmentID, orderID)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateOrder(ctx context.Context, o *models.ServiceOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockRepo) DeleteOrderCascade(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *mockRepo) ListOrders(ctx context.Context, establishmentID uint, status string) ([]models.ServiceOrder, error) {
	args := m.Called(ctx, establishmentID, status)
	if v := args.Get(0); v != nil {
		return v.([]models.ServiceOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

// -------- Items --------

func (m *mockRepo) CreateItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockRepo) UpdateItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockRepo) DeleteItem(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *mockRepo) GetItem(ctx context.Context, orderID, lineID uint) (*models.OrderItem, error) {
	args := m.Called(ctx, orderID, lineID)
	if v := args.Get(0); v != nil {
		return v.(*models.OrderItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetItemByCatalog(ctx context.Context, orderID, catalogItemID uint) (*models.OrderItem, error) {
	args := m.Called(ctx, orderID, catalogItemID)
	if v := args.Get(0); v != nil {
		return v.(*models.OrderItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]models.OrderItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Subtotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// -------- Requests --------

func (m *mockRepo) CreateRequest(ctx context.Context, req *models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRepo) GetRequest(ctx context.Context, orderID, requestID uint) (*models.Request, error) {
	args := m.Called(ctx, orderID, requestID)
	if v := args.Get(0); v != nil {
		return v.(*models.Request), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateRequest(ctx context.Context, req *models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRepo) DeleteRequest(ctx context.Context, requestID uint) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *mockRepo) ListRequests(ctx context.Context, orderID uint) ([]models.Request, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]models.Request), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CountOutstandingPartRequests(ctx context.Context, orderID uint) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

// -------- Checklist --------

func (m *mockRepo) CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockRepo) GetChecklistItem(ctx context.Context, orderID, itemID uint) (*models.ChecklistItem, error) {
	args := m.Called(ctx, orderID, itemID)
	if v := args.Get(0); v != nil {
		return v.(*models.ChecklistItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockRepo) DeleteChecklistItem(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *mockRepo) ListChecklist(ctx context.Context, orderID uint) ([]models.ChecklistItem, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]models.ChecklistItem), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ domain.Repository = (*mockRepo)(nil)

// Dispatchers de valor zero: fila nula faz todo Dispatch cair no
// default e descartar o evento. Suficiente para os testes de caso de uso.
func noopNotifier() *notification.Dispatcher {
	return &notification.Dispatcher{}
}

func noopAudit() *audit.Dispatcher {
	return &audit.Dispatcher{}
}
