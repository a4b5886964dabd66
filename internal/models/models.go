package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCategory = "Uncategorized"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"        json:"id"`
	Description string    `gorm:"not null"          json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Category    string    `gorm:"not null;index"    json:"category"`
	ImagePath   string    `gorm:"not null"          json:"image_path"`
	CreatedAt   time.Time `gorm:"index"             json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

type User struct {
	UID          string    `gorm:"primaryKey"            json:"uid"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	Name         string    `gorm:"not null"              json:"name"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         Role      `gorm:"not null"              json:"role"`
	Status       Status    `gorm:"not null;index"        json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleClient
	}
	if u.Status == "" {
		u.Status = StatusPending
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
