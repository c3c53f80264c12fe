package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Retention prunes old archived reports on a cron schedule.
type Retention struct {
	store    *Store
	maxAge   time.Duration
	schedule string
	onPrune  func(removed int64)

	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewRetention creates a retention job. onPrune may be nil; when set it
// receives the number of removed records after each run (used to feed
// metrics).
func NewRetention(store *Store, schedule string, maxAge time.Duration, logger *slog.Logger, onPrune func(int64)) *Retention {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retention{
		store:    store,
		maxAge:   maxAge,
		schedule: schedule,
		onPrune:  onPrune,
		cron:     cron.New(),
		logger:   logger.With("component", "archive.retention"),
	}
}

// Start begins scheduled pruning. An empty schedule disables the job.
// The job stops when ctx is canceled.
func (r *Retention) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("retention schedule not configured, skipping")
		return nil
	}
	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, func() { r.run(ctx) }); err != nil {
		return fmt.Errorf("scheduling retention: %w", err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("retention started", "schedule", r.schedule, "max_age", r.maxAge)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// run executes one pruning cycle.
func (r *Retention) run(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-r.maxAge)
	removed, err := r.store.Prune(ctx, cutoff)
	if err != nil {
		r.logger.Error("retention run failed", "error", err)
		return
	}
	if r.onPrune != nil {
		r.onPrune(removed)
	}
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Retention) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		<-r.cron.Stop().Done()
		r.running = false
		r.logger.Info("retention stopped")
	}
}
