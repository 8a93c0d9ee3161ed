package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser creates the initial admin account if it does not exist.
// The password must be rotated after first login.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@example.com",
		Username:  "admin",
		Password:  hashed,
		Role:      auth.RoleAdmin,
		Status:    models.UserStatusActive,
	}
	return db.Create(&admin).Error
}
