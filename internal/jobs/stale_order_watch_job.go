package jobs

import (
	"context"
	"time"

	"orders/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleOrderWatchJob reports orders stuck waiting for a deliverer.
// Runs every minute and logs every unassigned order older than the
// threshold so operators can intervene.
type StaleOrderWatchJob struct {
	reader    ports.OrderRepository
	threshold time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
	now       func() time.Time
}

// NewStaleOrderWatchJob creates the watch job over the order repository.
func NewStaleOrderWatchJob(
	reader ports.OrderRepository,
	threshold time.Duration,
	logger *zap.Logger,
) *StaleOrderWatchJob {
	return &StaleOrderWatchJob{
		reader:    reader,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "stale_order_watch_job")),
		now:       time.Now,
	}
}

// Start begins the watch job to run every minute.
func (j *StaleOrderWatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		staleCount, err := j.run(ctx)
		if err != nil {
			j.logger.Error("stale order watch failed", zap.Error(err))
			return
		}
		if staleCount > 0 {
			j.logger.Warn("orders awaiting a deliverer past threshold",
				zap.Int("count", staleCount),
				zap.Duration("threshold", j.threshold))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stale order watch job started (running every minute)")
	return nil
}

// Stop stops the watch job.
func (j *StaleOrderWatchJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stale order watch job stopped")
}

func (j *StaleOrderWatchJob) run(ctx context.Context) (int, error) {
	awaiting, err := j.reader.ListAwaitingPickup(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := j.now().Add(-j.threshold)
	staleCount := 0
	for _, candidate := range awaiting {
		if candidate.CreatedAt().After(cutoff) {
			continue
		}
		staleCount++
		j.logger.Warn("order still awaiting a deliverer",
			zap.Int64("orderId", candidate.ID()),
			zap.Duration("age", j.now().Sub(candidate.CreatedAt())))
	}

	return staleCount, nil
}
