package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodPix      = "pix"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Pagamento confirmado de uma OS, capturado com o caixa aberto.
// Alimenta o revenue_total da sessão (distinto das entradas manuais).
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOrderID uint `gorm:"index" json:"service_order_id"`
	CashSessionID  uint `gorm:"index" json:"cash_session_id"`

	Method string          `gorm:"size:20;not null" json:"method"`
	Value  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`

	ProviderPaymentID string `gorm:"size:64" json:"provider_payment_id"`
	ProviderStatus    string `gorm:"size:30" json:"provider_status"`

	ReceivedByID uint      `json:"received_by_id"`
	ConfirmedAt  time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
}
