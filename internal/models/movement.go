package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

// Movimentação manual do caixa. Imutável: correção é um novo lançamento
// no sentido oposto, nunca edição.
type Movement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CashSessionID uint `gorm:"index" json:"cash_session_id"`

	Type        string          `gorm:"size:10;not null" json:"type"`
	Description string          `gorm:"size:255" json:"description"`
	Value       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`

	UserID uint `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}
