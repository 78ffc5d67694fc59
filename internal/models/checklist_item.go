package models

import "time"

const (
	ChecklistPending = "pending"
	ChecklistDone    = "done"
)

type ChecklistItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOrderID uint `gorm:"index" json:"service_order_id"`

	Description string `gorm:"size:255;not null" json:"description"`
	Priority    string `gorm:"size:10;default:'medium'" json:"priority"`
	Status      string `gorm:"size:10;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
