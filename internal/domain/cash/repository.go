package cash

import (
	"context"

	"github.com/oficinaflow/oficina-api/internal/models"
)

// Repository do caixa. GetSessionForUpdate trava a linha da sessão;
// toda mutação de totais roda dentro de InTx.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	CreateSession(ctx context.Context, s *models.CashSession) error
	GetSession(ctx context.Context, establishmentID, sessionID uint) (*models.CashSession, error)
	GetSessionForUpdate(ctx context.Context, establishmentID, sessionID uint) (*models.CashSession, error)
	GetOpenSession(ctx context.Context, establishmentID uint) (*models.CashSession, error)
	GetOpenSessionForUpdate(ctx context.Context, establishmentID uint) (*models.CashSession, error)
	UpdateSession(ctx context.Context, s *models.CashSession) error
	ListSessions(ctx context.Context, establishmentID uint) ([]models.CashSession, error)

	CreateMovement(ctx context.Context, m *models.Movement) error
	ListMovements(ctx context.Context, sessionID uint) ([]models.Movement, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, sessionID uint) ([]models.Payment, error)
}
