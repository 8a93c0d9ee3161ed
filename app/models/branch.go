package models

import "gorm.io/gorm"

// Branch is a physical pharmacy location available for order pickup.
// Branches are seeded, not managed through the API.
type Branch struct {
	gorm.Model
	Slug         string `gorm:"size:50;uniqueIndex;not null" json:"id"`
	Name         string `gorm:"size:255;not null"            json:"name"`
	Address      string `gorm:"size:500"                     json:"address"`
	OpeningHours string `gorm:"size:255"                     json:"openingHours"`
	Phone        string `gorm:"size:30"                      json:"phone"`
}
