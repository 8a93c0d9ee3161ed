package models

import "gorm.io/gorm"

// Product is a catalogue item.
type Product struct {
	gorm.Model
	Name        string         `gorm:"size:255;not null;index" json:"name"`
	Brand       string         `gorm:"size:255"                json:"brand"`
	CategoryID  uint           `gorm:"not null;index"          json:"categoryId"`
	Category    *Category      `gorm:"foreignKey:CategoryID"   json:"category,omitempty"`
	Stock       int            `gorm:"not null;default:0"      json:"stock"`
	Price       float64        `gorm:"not null;default:0"      json:"price"`
	Discount    float64        `gorm:"not null;default:0"      json:"discount"`
	Description string         `gorm:"type:text"               json:"description"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// ProductImage is one image URL attached to a product. The first image is
// flattened into list responses as the product thumbnail.
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index" json:"productId"`
	URL       string `gorm:"size:500;not null" json:"url"`
}

// FirstImage returns the thumbnail URL, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// EffectivePrice returns the price after discount.
func (p *Product) EffectivePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price - p.Discount
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool { return p.Stock > 0 }
