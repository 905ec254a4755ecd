package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID string     `gorm:"size:64;not null;index"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	UserName  string     `gorm:"size:128;not null"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"size:1024"`
	CreatedAt time.Time
}

func (Review) TableName() string { return "reviews" }
