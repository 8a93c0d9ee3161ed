// Package tasks registers the recurring maintenance jobs picked up by
// `aushadhi schedule:run`.
package tasks

import (
	"time"

	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
	"github.com/shashiranjanraj/aushadhi/pkg/queue"
	"github.com/shashiranjanraj/aushadhi/pkg/schedule"
)

// Register declares every scheduled task. Called once before the
// scheduler starts.
func Register() {
	// Keep the hot catalogue cache warm so the first storefront hit
	// after expiry never pays the full query cost.
	schedule.Every(5).Minutes().Name("catalog-warmup").WithoutOverlapping().Run(func() {
		catalog := services.NewCatalogService()
		if _, err := catalog.Categories(); err != nil {
			logger.Warn("catalog warmup", "error", err)
		}
		if _, _, err := catalog.Products(services.ProductFilter{Page: 1, Limit: 20}); err != nil {
			logger.Warn("catalog warmup", "error", err)
		}
	})

	// Failed jobs older than 30 days are noise; drop them.
	schedule.Daily().Name("failed-jobs-purge").Run(func() {
		cutoff := time.Now().AddDate(0, 0, -30)
		if err := orm.DB().Model(&queue.FailedJobRecord{}).
			Where("failed_at < ?", cutoff).
			Delete(&queue.FailedJobRecord{}); err != nil {
			logger.Warn("failed jobs purge", "error", err)
		}
	})
}
