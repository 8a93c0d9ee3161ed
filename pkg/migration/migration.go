// Package migration tracks schema migrations in a migrations table and
// applies them in name order, so timestamp-prefixed names run
// chronologically.
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// The CLI drives the runner: migrate, migrate:rollback, migrate:status.
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/pkg/logger"
)

// Migration applies or reverses one schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "migrations" }

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration under a timestamp-prefixed name. Each
// migration file registers itself from init.
func Register(name string, m Migration) {
	registry = append(registry, registered{name: name, m: m})
}

// Runner applies registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table when missing.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

// Pending lists registered migrations that have not run, sorted by name.
func (r *Runner) Pending() ([]registered, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(ran))
	for _, rec := range ran {
		done[rec.Name] = true
	}

	var pending []registered
	for _, reg := range registry {
		if !done[reg.name] {
			pending = append(pending, reg)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].name < pending[j].name
	})
	return pending, nil
}

// Run applies every pending migration as one batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	pending, err := r.Pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.nextBatch()
	for _, reg := range pending {
		logger.Info("migration: running", "name", reg.name)
		fmt.Printf("Migrating: %s\n", reg.name)

		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		record := migrationRecord{Name: reg.name, Batch: batch}
		if err := r.db.Create(&record).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		fmt.Printf("Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	last := r.lastBatch()
	if last == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", last).
		Order("id desc").
		Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		fmt.Printf("Rolling back: %s\n", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
		fmt.Printf("Rolled back:  %s\n", rec.Name)
	}
	return nil
}

// Status prints each registered migration with its run state.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return err
	}
	byName := make(map[string]migrationRecord, len(ran))
	for _, rec := range ran {
		byName[rec.Name] = rec
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 80))
	for _, reg := range registry {
		if rec, ok := byName[reg.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", reg.name, "Ran", rec.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", reg.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) lastBatch() int {
	var result struct{ Max int }
	r.db.Model(&migrationRecord{}).Select("MAX(batch) as max").Scan(&result)
	return result.Max
}

func (r *Runner) nextBatch() int { return r.lastBatch() + 1 }
