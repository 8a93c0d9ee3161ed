package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/app/models"
)

func init() {
	Register("branches", SeedBranches)
}

// SeedBranches inserts the pickup locations. Branches are keyed by slug so
// re-running the seeder is a no-op.
func SeedBranches(db *gorm.DB) error {
	branches := []models.Branch{
		{
			Slug:         "main",
			Name:         "Main Branch - Polpithigama",
			Address:      "123 Main St, Polpithigama",
			OpeningHours: "Mon-Sat 8:00-20:00, Sun 9:00-13:00",
			Phone:        "0372222111",
		},
		{
			Slug:         "kurunegala",
			Name:         "City Branch - Kurunegala",
			Address:      "45 Negombo Rd, Kurunegala",
			OpeningHours: "Mon-Sat 8:00-21:00",
			Phone:        "0372233444",
		},
	}

	for _, branch := range branches {
		var count int64
		if err := db.Model(&models.Branch{}).Where("slug = ?", branch.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&branch).Error; err != nil {
			return err
		}
	}
	return nil
}
