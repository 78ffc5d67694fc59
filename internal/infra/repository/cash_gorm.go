package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/oficinaflow/oficina-api/internal/domain/cash"
	"github.com/oficinaflow/oficina-api/internal/models"
)

type CashGormRepository struct {
	db *gorm.DB
}

func NewCashGormRepository(db *gorm.DB) *CashGormRepository {
	return &CashGormRepository{db: db}
}

func (r *CashGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CashGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *CashGormRepository) CreateSession(
	ctx context.Context,
	s *models.CashSession,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CashGormRepository) GetSession(
	ctx context.Context,
	establishmentID uint,
	sessionID uint,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", sessionID, establishmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSessionForUpdate trava a linha da sessão para que movimentações e
// fechamento concorrentes não intercalem sobre os mesmos totais.
func (r *CashGormRepository) GetSessionForUpdate(
	ctx context.Context,
	establishmentID uint,
	sessionID uint,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND establishment_id = ?", sessionID, establishmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CashGormRepository) GetOpenSession(
	ctx context.Context,
	establishmentID uint,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND closed_at IS NULL", establishmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CashGormRepository) GetOpenSessionForUpdate(
	ctx context.Context,
	establishmentID uint,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("establishment_id = ? AND closed_at IS NULL", establishmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CashGormRepository) UpdateSession(
	ctx context.Context,
	s *models.CashSession,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *CashGormRepository) ListSessions(
	ctx context.Context,
	establishmentID uint,
) ([]models.CashSession, error) {

	var sessions []models.CashSession
	if err := r.db.WithContext(ctx).
		Where("establishment_id = ?", establishmentID).
		Order("opened_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// --------------------------------------------------
// Movements
// --------------------------------------------------

func (r *CashGormRepository) CreateMovement(
	ctx context.Context,
	m *models.Movement,
) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *CashGormRepository) ListMovements(
	ctx context.Context,
	sessionID uint,
) ([]models.Movement, error) {

	var movements []models.Movement
	if err := r.db.WithContext(ctx).
		Where("cash_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *CashGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CashGormRepository) ListPayments(
	ctx context.Context,
	sessionID uint,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("cash_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Compile-time check
var _ domain.Repository = (*CashGormRepository)(nil)
