package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceOrder struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:20;uniqueIndex;not null" json:"code"`

	EstablishmentID uint          `json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	Description  string `gorm:"size:500" json:"description"`
	Observations string `gorm:"size:500" json:"observations"`

	ResponsibleID *uint `json:"responsible_id"`
	Responsible   *User `gorm:"foreignKey:ResponsibleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"responsible,omitempty"`

	Status string `gorm:"size:30;default:'pending';index" json:"status"`

	OpenedByID uint  `json:"opened_by_id"`
	ClosedByID *uint `json:"closed_by_id"`

	OpenedAt     time.Time  `json:"opened_at"`
	ForecastExit *time.Time `json:"forecast_exit"`
	ClosedAt     *time.Time `json:"closed_at"`

	Discount  decimal.Decimal `gorm:"type:numeric(12,2)" json:"discount"`
	Surcharge decimal.Decimal `gorm:"type:numeric(12,2)" json:"surcharge"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
