package models

import "time"

// Category is a storefront grouping such as leafy greens or root
// vegetables. The ID doubles as the URL slug.
type Category struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:128;not null"`
	HindiName   string `gorm:"size:128"`
	Description string `gorm:"size:512"`
	ImageURL    string `gorm:"size:512"`
	Position    int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
