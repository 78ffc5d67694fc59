package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caixa: um ciclo de abertura/fechamento do caixa do estabelecimento.
// No máximo uma sessão aberta por estabelecimento (índice parcial no banco).
type CashSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	OpenedByID uint  `json:"opened_by_id"`
	ClosedByID *uint `json:"closed_by_id"`

	OpeningValue decimal.Decimal  `gorm:"type:numeric(12,2)" json:"opening_value"`
	ClosingValue *decimal.Decimal `gorm:"type:numeric(12,2)" json:"closing_value"`

	EntriesTotal decimal.Decimal `gorm:"type:numeric(12,2)" json:"entries_total"`
	ExitsTotal   decimal.Decimal `gorm:"type:numeric(12,2)" json:"exits_total"`
	RevenueTotal decimal.Decimal `gorm:"type:numeric(12,2)" json:"revenue_total"`

	BalanceTotal *decimal.Decimal `gorm:"type:numeric(12,2)" json:"balance_total"`
	Difference   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"difference"`

	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`

	Movements []Movement `gorm:"constraint:OnDelete:CASCADE;" json:"movements,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CashSession) IsOpen() bool {
	return s.ClosedAt == nil
}
