package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/pkg/enums"
)

// Product is a catalog vegetable. Prices are quoted as an estimated
// rupee range per unit because mandi rates move daily; the exact price
// is settled at delivery time.
type Product struct {
	ID           string             `gorm:"primaryKey;size:64"`
	Name         string             `gorm:"size:128;not null;index"`
	HindiName    string             `gorm:"size:128;index"`
	CategoryID   string             `gorm:"size:64;not null;index"`
	Category     *Category          `gorm:"foreignKey:CategoryID"`
	Description  string             `gorm:"size:1024"`
	LongDesc     string             `gorm:"column:long_description;size:2048"`
	MinPrice     decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	MaxPrice     decimal.Decimal    `gorm:"type:numeric(10,2);not null"`
	Unit         string             `gorm:"size:32;not null"`
	QuantityType enums.QuantityType `gorm:"size:16;not null"`
	StepSize     decimal.Decimal    `gorm:"type:numeric(6,3);not null"`
	MinQuantity  decimal.Decimal    `gorm:"type:numeric(6,3);not null"`
	MaxQuantity  decimal.Decimal    `gorm:"type:numeric(6,3);not null"`
	ImageURL     string             `gorm:"size:512"`
	Benefits     pq.StringArray     `gorm:"type:text[]"`
	Vitamins     pq.StringArray     `gorm:"type:text[]"`
	Tags         pq.StringArray     `gorm:"type:text[]"`
	Calories     int                `gorm:"not null;default:0"`
	Protein      decimal.Decimal    `gorm:"type:numeric(6,2);not null;default:0"`
	Carbs        decimal.Decimal    `gorm:"type:numeric(6,2);not null;default:0"`
	Fiber        decimal.Decimal    `gorm:"type:numeric(6,2);not null;default:0"`
	StockQty     decimal.Decimal    `gorm:"column:stock_quantity;type:numeric(8,3);not null;default:0"`
	InStock      bool               `gorm:"not null;default:true"`
	Position     int                `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Product) TableName() string { return "products" }
