package models

import "time"

const (
	RequestTypePart     = "part"
	RequestTypeApproval = "approval"
	RequestTypePayment  = "payment"
	RequestTypeInfo     = "info"
	RequestTypeOther    = "other"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Solicitação interna entre funcionários, vinculada a uma OS
type Request struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOrderID uint `gorm:"index" json:"service_order_id"`

	SenderID uint `json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender"`

	RecipientID uint `json:"recipient_id"`
	Recipient   User `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"recipient"`

	Subject     string `gorm:"size:100;not null" json:"subject"`
	Type        string `gorm:"size:20;not null" json:"type"`
	Description string `gorm:"size:500" json:"description"`
	Priority    string `gorm:"size:10;default:'medium'" json:"priority"`

	// vazio é tratado como pending
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// quem executou a última transição
	ResponsibleID *uint `json:"responsible_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
