package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/pkg/enums"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

// Order captures a checkout. Money is stored two ways: the estimated
// range quoted at order time and the settled amount filled in after
// weighing at delivery (zero until then).
type Order struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status          enums.OrderStatus     `gorm:"size:16;not null;index"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID"`
	SubtotalMin     decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
	SubtotalMax     decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
	DeliveryFee     decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
	Total           decimal.Decimal       `gorm:"type:numeric(10,2);not null"`
	ActualTotal     *decimal.Decimal      `gorm:"type:numeric(10,2)"`
	ContactMobile   string                `gorm:"size:16"`
	DeliveryAddress types.AddressSnapshot `gorm:"type:jsonb"`
	DeliveryDate    time.Time             `gorm:"not null"`
	DeliverySlot    string                `gorm:"size:64"`
	PlacedAt        time.Time             `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    string          `gorm:"size:64;not null"`
	Name         string          `gorm:"size:128;not null"`
	HindiName    string          `gorm:"size:128"`
	ImageURL     string          `gorm:"size:512"`
	Unit         string          `gorm:"size:32;not null"`
	Quantity     decimal.Decimal `gorm:"type:numeric(8,3);not null"`
	EstimatedMin decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	EstimatedMax decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt    time.Time
}

func (OrderItem) TableName() string { return "order_items" }

func (i OrderItem) EstimatedRange() types.PriceRange {
	return types.PriceRange{Min: i.EstimatedMin, Max: i.EstimatedMax}
}
