// Package seeders registers the seed data for a fresh install: the admin
// account, branch list, and a starter catalog.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("users", SeedUsers)
//	}
//
// Then run via CLI: aushadhi seed
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/pkg/app"
	"github.com/shashiranjanraj/aushadhi/pkg/database"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

func init() {
	// Bridge into the app runner so `<binary> seed` picks these up.
	app.RegisterSeeder("database", func() {
		if database.DB == nil {
			logger.Error("seed: database not connected")
			return
		}
		if err := RunAll(database.DB); err != nil {
			logger.Error("seed", "error", err)
		}
	})
}

// SeederFunc inserts one group of seed rows.
type SeederFunc func(db *gorm.DB) error

var (
	mu    sync.Mutex
	names []string
	fns   = map[string]SeederFunc{}
)

// Register adds a seeder under a unique name. Registration order is the
// execution order.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := fns[name]; !dup {
		names = append(names, name)
	}
	fns[name] = fn
}

// RunAll executes every registered seeder and stops on the first error.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	order := append([]string(nil), names...)
	mu.Unlock()

	if len(order) == 0 {
		logger.Info("seed: nothing registered")
		return nil
	}

	for _, name := range order {
		logger.Info("seeding", "seeder", name)
		if err := fns[name](db); err != nil {
			return fmt.Errorf("seeder %q: %w", name, err)
		}
	}
	logger.Info("seed complete", "seeders", len(order))
	return nil
}
