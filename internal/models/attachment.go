package models

import "time"

// Foto de entrada do veículo, convertida para webp e enviada ao S3
type Attachment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOrderID uint `gorm:"index" json:"service_order_id"`

	Key         string `gorm:"size:255;not null" json:"key"`
	ContentType string `gorm:"size:50" json:"content_type"`
	URL         string `gorm:"size:500" json:"url"`

	UploadedByID uint `json:"uploaded_by_id"`

	CreatedAt time.Time `json:"created_at"`
}
