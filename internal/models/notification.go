package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecipientID uint `gorm:"index" json:"recipient_id"`

	Type     string `gorm:"size:50;not null" json:"type"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Message  string `gorm:"size:500" json:"message"`
	Metadata string `gorm:"type:text" json:"metadata"`

	Read bool `gorm:"default:false;index" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
