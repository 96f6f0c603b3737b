package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// BackgroundTicker is the scheduler-facing entry point of the sync
// controller: called every second, it decides internally whether a silent
// refresh is due.
type BackgroundTicker interface {
	TickBackground(ctx context.Context)
}

// RefreshJob drives the background polling loop. The cron fires every second;
// the controller applies the effective period (backoff-aware, never below a
// minute) and the busy flag, so an overdue tick is never reentrant.
type RefreshJob struct {
	ticker BackgroundTicker
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRefreshJob creates the background refresh job.
func NewRefreshJob(ticker BackgroundTicker, logger *slog.Logger) *RefreshJob {
	return &RefreshJob{
		ticker: ticker,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "refresh_job"),
	}
}

// Start begins ticking the controller every second.
func (j *RefreshJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.ticker.TickBackground(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Background refresh job started")
	return nil
}

// Stop stops the job.
func (j *RefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Background refresh job stopped")
}
