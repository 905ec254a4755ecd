package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/enums"
)

type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Kind      enums.NotificationKind `gorm:"size:32;not null"`
	Title     string                 `gorm:"size:256;not null"`
	Body      string                 `gorm:"size:1024"`
	OrderID   *uuid.UUID             `gorm:"type:uuid;index"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
