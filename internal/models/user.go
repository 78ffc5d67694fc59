package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleManager   = "gerente"
	RoleAttendant = "atendente"
	RoleMechanic  = "mecanico"
)

type User struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	EstablishmentID uint          `json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"establishment"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'atendente'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanBeResponsible informa se o usuário pode ser responsável por uma OS.
func (u *User) CanBeResponsible() bool {
	return u.Role == RoleMechanic || u.Role == RoleManager
}
