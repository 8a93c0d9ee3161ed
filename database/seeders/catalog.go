package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog inserts a starter set of categories and products so a fresh
// install has something on the shelf. Skipped entirely when any category
// already exists.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Pain Relief", Description: "Analgesics and anti-inflammatories"},
		{Name: "Vitamins & Supplements", Description: "Daily vitamins, minerals and supplements"},
		{Name: "First Aid", Description: "Bandages, antiseptics and wound care"},
		{Name: "Cold & Flu", Description: "Cough, cold and flu remedies"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Paracetamol 500mg (20 tablets)", Brand: "Panadol", CategoryID: categories[0].ID, Stock: 200, Price: 180},
		{Name: "Ibuprofen 200mg (24 tablets)", Brand: "Advil", CategoryID: categories[0].ID, Stock: 120, Price: 350, Discount: 30},
		{Name: "Vitamin C 1000mg (30 tablets)", Brand: "Redoxon", CategoryID: categories[1].ID, Stock: 80, Price: 950},
		{Name: "Multivitamin Daily (60 capsules)", Brand: "Centrum", CategoryID: categories[1].ID, Stock: 60, Price: 2400, Discount: 200},
		{Name: "Adhesive Bandages (40 pack)", Brand: "Band-Aid", CategoryID: categories[2].ID, Stock: 150, Price: 420},
		{Name: "Antiseptic Solution 100ml", Brand: "Dettol", CategoryID: categories[2].ID, Stock: 90, Price: 310},
		{Name: "Cough Syrup 100ml", Brand: "Benadryl", CategoryID: categories[3].ID, Stock: 70, Price: 560},
	}
	return db.Create(&products).Error
}
