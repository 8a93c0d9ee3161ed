// Package app provides the application runner: a builder that collects
// routes, models, and seeders, and a dispatcher that turns os.Args into
// serve/migrate/seed commands.
//
// Minimal usage:
//
//	func main() {
//	    app.New().
//	        Routes(routes.Register).
//	        AutoMigrate(&models.User{}, &models.Product{}).
//	        Run()
//	}
package app

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

// SeederFunc seeds the database.
type SeederFunc func()

var globalSeeders []SeederFunc

// RegisterSeeder registers a seeder to be run by the seed command.
// Call it from an init() in your seeder files.
func RegisterSeeder(name string, fn SeederFunc) {
	globalSeeders = append(globalSeeders, fn)
}

// Application collects everything the server needs before boot. Build one
// with New(), attach routes and models, then call Run().
type Application struct {
	routesFns []func(*router.Router)
	models    []interface{}
	seeders   []SeederFunc
}

func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback, called when the HTTP
// handler is built. Callbacks run in registration order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// AutoMigrate adds GORM models to auto-migrate on server start. Pass
// pointers: app.New().AutoMigrate(&User{}, &Product{})
func (a *Application) AutoMigrate(models ...interface{}) *Application {
	a.models = append(a.models, models...)
	return a
}

// Seeders registers seeders inline, alongside any init()-registered ones.
func (a *Application) Seeders(fns ...SeederFunc) *Application {
	a.seeders = append(a.seeders, fns...)
	return a
}

// Run reads os.Args and dispatches to the matching command. The zero
// argument case serves.
func (a *Application) Run() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	commands := map[string]func() error{
		"serve": func() error { return Serve(a) },
		"migrate": func() error {
			return withDB(func() error { return migrator().Run() })
		},
		"migrate:rollback": func() error {
			return withDB(func() error { return migrator().Rollback() })
		},
		"migrate:status": func() error {
			return withDB(func() error { return migrator().Status() })
		},
		"seed": func() error {
			return withDB(func() error {
				return runSeeders(append(a.seeders, globalSeeders...))
			})
		},
		"route:list": func() error { return printRoutes(a) },
	}
	for alias, canonical := range map[string]string{
		"start": "serve", "run": "serve", "s": "serve",
		"migrate:down": "migrate:rollback",
		"routes":       "route:list",
	} {
		commands[alias] = commands[canonical]
	}

	switch {
	case cmd == "help" || cmd == "--help" || cmd == "-h":
		printHelp()
	case commands[cmd] != nil:
		if err := commands[cmd](); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n\nRun with --help for usage.\n", cmd)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`Aushadhi Pharmacy API

Usage:
  <program> <command>

Commands:
  serve            Start the HTTP + gRPC server  (aliases: start, run)
  migrate          Run all pending database migrations
  migrate:rollback Rollback the last batch of migrations
  migrate:status   Show migration status
  seed             Run all registered database seeders
  route:list       List registered API routes

`)
}
