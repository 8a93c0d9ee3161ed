package models

import "gorm.io/gorm"

// Category groups products on the storefront (e.g. "Pain Relief",
// "Vitamins", "First Aid").
type Category struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text"                     json:"description"`
	Image       string    `gorm:"size:500"                      json:"image"`
	Products    []Product `gorm:"foreignKey:CategoryID"         json:"products,omitempty"`
}
