// Package orm is a thin chainable wrapper over the shared GORM handle with
// pagination and an optional read-through cache hook.
package orm

import (
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cacher is the read-through cache used by Query.Cache. Wired at boot by
// pkg/app so that orm and the cache package do not import each other.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is nil until the kernel installs a backend; Cache degrades to
// a plain query in that case.
var CacheStore Cacher

// Pagination carries page metadata for list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the shared connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// With wraps an existing gorm handle (used by transactions).
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Preload(association string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(association, args...)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row; gorm.ErrRecordNotFound when absent.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Save persists all fields of v, inserting when the key is zero.
func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Updates applies a partial update to the chained model.
func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

// Delete removes v (soft delete when the model embeds gorm.DeletedAt).
func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	return q.db.Delete(v, conds...).Error
}

// Transaction runs fn atomically.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(With(tx))
	})
}

// GetWithPagination loads one page of results and returns page metadata.
// page and limit are normalised to sane values (page ≥ 1, 1 ≤ limit ≤ 100).
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache loads dest from the cache under key, falling back to the query and
// populating the cache on a miss. Without a CacheStore it is a plain Find.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}

// Expr passes a raw SQL expression through to GORM, for in-place updates
// like stock decrements.
func Expr(expr string, args ...interface{}) clause.Expr {
	return gorm.Expr(expr, args...)
}
