package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Linha da OS. Preço é um snapshot do catálogo no momento da inclusão.
type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOrderID uint `gorm:"index" json:"service_order_id"`

	CatalogItemID uint        `json:"catalog_item_id"`
	CatalogItem   CatalogItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"catalog_item"`

	Kind      string          `gorm:"size:10;not null" json:"kind"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
