package main

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/routes"
	"github.com/shashiranjanraj/aushadhi/pkg/app"

	// Register migrations, seeders and queued jobs via their init funcs.
	_ "github.com/shashiranjanraj/aushadhi/app/jobs"
	_ "github.com/shashiranjanraj/aushadhi/database/migrations"
	_ "github.com/shashiranjanraj/aushadhi/database/seeders"
)

func main() {
	app.New().
		Routes(routes.RegisterAPI).
		AutoMigrate(
			&models.User{},
			&models.Category{},
			&models.Product{},
			&models.ProductImage{},
			&models.Branch{},
			&models.Order{},
			&models.OrderItem{},
			&models.ContactMessage{},
		).
		Run()
}
