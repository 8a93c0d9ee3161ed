package app

// Helpers behind the CLI sub-commands dispatched by Run().

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/database"
	"github.com/shashiranjanraj/aushadhi/pkg/migration"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

// withDB loads config, connects to the database, then runs fn.
func withDB(fn func() error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return err
	}
	return fn()
}

func migrator() *migration.Runner {
	return migration.New(database.DB)
}

func runSeeders(seeders []SeederFunc) error {
	if len(seeders) == 0 {
		fmt.Println("No seeders registered. Use app.RegisterSeeder() or .Seeders() on Application.")
		return nil
	}
	for _, fn := range seeders {
		fn()
	}
	fmt.Printf("Seeding complete (%d seeders ran)\n", len(seeders))
	return nil
}

// printRoutes builds the route table without starting the server and
// prints it.
func printRoutes(a *Application) error {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}

	routes := r.Routes()
	if len(routes) == 0 {
		fmt.Println("No routes registered.")
		return nil
	}

	fmt.Printf("%-8s  %-50s  %s\n", "METHOD", "PATH", "NAME")
	fmt.Println(strings.Repeat("-", 80))
	for _, ri := range routes {
		fmt.Printf("%-8s  %-50s  %s\n", ri.Method, ri.Path, ri.Name)
	}
	return nil
}
