package app

// kernel.go builds the http.Handler from the Application config. Pure
// framework code: global middleware, auto-migration, then the caller's
// route callbacks.

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/cache"
	"github.com/shashiranjanraj/aushadhi/pkg/database"
	"github.com/shashiranjanraj/aushadhi/pkg/metrics"
	"github.com/shashiranjanraj/aushadhi/pkg/middleware"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
	"github.com/shashiranjanraj/aushadhi/pkg/reqid"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

// BuildHandler constructs the HTTP handler from the Application config.
func BuildHandler(a *Application) http.Handler {
	// Wire cache into ORM without either importing the other.
	orm.CacheStore = &ormCache{}

	if database.DB != nil && len(a.models) > 0 {
		database.DB.AutoMigrate(a.models...)
	}

	r := router.New()

	// Global middleware stack (outermost first):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Recovery, catches panics before they kill the connection
	//  3. Request ID, injected before anything logs
	//  4. Logger, tags every line with the request ID
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recover)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus scrape endpoint, outside the named-route table.
	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}

// ormCache bridges pkg/cache to the orm.Cacher interface.
type ormCache struct{}

func (c *ormCache) Get(key string, dest interface{}) bool {
	return cache.Get(key, dest)
}

func (c *ormCache) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
