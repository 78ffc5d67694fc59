package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CatalogKindProduct = "product"
	CatalogKindService = "service"
)

// Item de catálogo: peça/produto ou serviço de mão de obra
type CatalogItem struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `json:"establishment_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Kind        string          `gorm:"size:10;not null" json:"kind"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
