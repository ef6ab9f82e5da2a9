package metrics

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// TierSnapshot is one tier's utilization at a point in time.
type TierSnapshot struct {
	Tier      string
	Percent   float64
	Remaining float64
}

// SnapshotFunc produces the current budget utilization per tier. It is
// called on the snapshot schedule and on demand after commits.
type SnapshotFunc func() []TierSnapshot

// Snapshotter refreshes the budget gauges on a cron schedule. Gauges are
// point-in-time values that drift between commits as the hourly and daily
// tiers roll over, so a periodic refresh keeps scrapes honest even when
// no calls arrive.
type Snapshotter struct {
	schedule  string
	fn        SnapshotFunc
	collector *Collector
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSnapshotter creates a snapshotter. The schedule uses standard cron
// syntax ("* * * * *" refreshes every minute).
func NewSnapshotter(schedule string, fn SnapshotFunc, collector *Collector, logger *slog.Logger) *Snapshotter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshotter{
		schedule:  schedule,
		fn:        fn,
		collector: collector,
		cron:      cron.New(),
		logger:    logger.With("component", "metrics.snapshotter"),
	}
}

// Start validates the schedule and begins periodic refreshes. An empty
// schedule disables the snapshotter.
func (s *Snapshotter) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured, skipping")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.Refresh); err != nil {
		return fmt.Errorf("failed to schedule snapshot: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("snapshotter started", "schedule", s.schedule)

	// Populate gauges immediately rather than waiting for the first tick.
	s.Refresh()
	return nil
}

// Refresh updates the budget gauges from the snapshot function.
func (s *Snapshotter) Refresh() {
	for _, tier := range s.fn() {
		s.collector.UpdateBudget(tier.Tier, tier.Percent, tier.Remaining)
	}
}

// Stop halts the periodic refreshes and waits for a running refresh to
// complete.
func (s *Snapshotter) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("snapshotter stopped")
}
