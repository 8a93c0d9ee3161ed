// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported by the CLI entry points so every
// migration is registered at startup.
package migrations
