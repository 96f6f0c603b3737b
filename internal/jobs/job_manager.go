// Package jobs schedules the background work of the dispatch service.
package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs.
type JobManager struct {
	refreshJob *RefreshJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(ticker BackgroundTicker, logger *slog.Logger) *JobManager {
	return &JobManager{
		refreshJob: NewRefreshJob(ticker, logger),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.refreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start refresh job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job.
func (jm *JobManager) StopAll() {
	jm.refreshJob.Stop()
}
