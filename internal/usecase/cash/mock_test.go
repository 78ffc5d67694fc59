package cash

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/oficinaflow/oficina-api/internal/audit"
	domain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	ordomain "github.com/oficinaflow/oficina-api/internal/domain/order"
	"github.com/oficinaflow/oficina-api/internal/models"
	"github.com/oficinaflow/oficina-api/internal/notification"
	"github.com/oficinaflow/oficina-api/internal/payments"
)

// mockCashRepo implementa o Repository do caixa. InTx roda a função
// direto sobre o mock.
type mockCashRepo struct {
	mock.Mock
}

func (m *mockCashRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *mockCashRepo) CreateSession(ctx context.Context, s *models.CashSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockCashRepo) GetSession(ctx context.Context, establishmentID, sessionID uint) (*models.CashSession, error) {
	args := m.Called(ctx, establishmentID, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.CashSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) GetSessionForUpdate(ctx context.Context, establishmentID, sessionID uint) (*models.CashSession, error) {
	args := m.Called(ctx, establishmentID, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*models.CashSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) GetOpenSession(ctx context.Context, establishmentID uint) (*models.CashSession, error) {
	args := m.Called(ctx, establishmentID)
	if v := args.Get(0); v != nil {
		return v.(*models.CashSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) GetOpenSessionForUpdate(ctx context.Context, establishmentID uint) (*models.CashSession, error) {
	args := m.Called(ctx, establishmentID)
	if v := args.Get(0); v != nil {
		return v.(*models.CashSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) UpdateSession(ctx context.Context, s *models.CashSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockCashRepo) ListSessions(ctx context.Context, establishmentID uint) ([]models.CashSession, error) {
	args := m.Called(ctx, establishmentID)
	if v := args.Get(0); v != nil {
		return v.([]models.CashSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) CreateMovement(ctx context.Context, mov *models.Movement) error {
	args := m.Called(ctx, mov)
	return args.Error(0)
}

func (m *mockCashRepo) ListMovements(ctx context.Context, sessionID uint) ([]models.Movement, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.([]models.Movement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCashRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockCashRepo) ListPayments(ctx context.Context, sessionID uint) ([]models.Payment, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.([]models.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ domain.Repository = (*mockCashRepo)(nil)

// mockOrderReader cobre só o que o registro de pagamento usa da OS.
// Os demais métodos do Repository de OS não são exercitados aqui.
type mockOrderReader struct {
	ordomain.Repository
	mock.Mock
}

func (m *mockOrderReader) GetOrder(ctx context.Context, establishmentID, orderID uint) (*models.ServiceOrder, error) {
	args := m.Called(ctx, establishmentID, orderID)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockGateway simula o provedor de pagamento.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePayment(ctx context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.String(1), nil, args.Error(2)
}

var _ payments.Gateway = (*mockGateway)(nil)

func noopNotifier() *notification.Dispatcher {
	return &notification.Dispatcher{}
}

func noopAudit() *audit.Dispatcher {
	return &audit.Dispatcher{}
}
