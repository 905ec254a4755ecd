package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/enums"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"size:128;not null"`
	Mobile       string         `gorm:"size:16;not null;uniqueIndex"`
	Email        string         `gorm:"size:256"`
	PasswordHash string         `gorm:"size:512;not null"`
	Role         enums.UserRole `gorm:"size:16;not null;default:customer"`
	Addresses    []Address      `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"size:64"`
	Street    string    `gorm:"size:256;not null"`
	Area      string    `gorm:"size:128"`
	City      string    `gorm:"size:128;not null"`
	State     string    `gorm:"size:128;not null"`
	Pincode   string    `gorm:"size:16;not null"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Address) TableName() string { return "addresses" }
