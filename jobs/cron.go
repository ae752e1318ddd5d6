package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"roomrent/services/logger"
)

// CacheWarmer recomputes the shared listing views.
type CacheWarmer interface {
	WarmUp(ctx context.Context) error
}

// InitCronJobs schedules the cache warm-up on spec and starts the scheduler.
// The first run happens immediately.
func InitCronJobs(c *cron.Cron, spec string, warmer CacheWarmer, log logger.Logger, timeout time.Duration) error {
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := warmer.WarmUp(ctx); err != nil {
			log.Error("cache warm-up failed: %v", err)
			return
		}
		log.Info("cache warm-up done in %s", time.Since(start))
	}

	if _, err := c.AddFunc(spec, run); err != nil {
		return err
	}
	go run()

	c.Start()
	log.Info("cron jobs initialized, cache warm-up %q", spec)
	return nil
}
