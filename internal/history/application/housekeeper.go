package application

import (
	"context"
	"sync"
	"time"

	catalogdomain "zbxstats/internal/catalog/domain"
	"zbxstats/internal/history/domain"
	"zbxstats/internal/infrastructure/telemetry"
	"zbxstats/internal/shared/logger"
	statsdomain "zbxstats/internal/stats/domain"
)

const secondsPerHour = 60 * 60

// Report summarizes one housekeeping pass
type Report struct {
	Rolled int64
	Purged int64
}

// Housekeeper periodically rolls completed hours of history into trends and
// drops history older than each item's retention
type Housekeeper struct {
	logger   logger.Logger
	items    catalogdomain.Repository
	repo     domain.Repository
	interval time.Duration
	now      func() time.Time

	mu sync.Mutex
	// rolledUpTo is the first hour not yet aggregated by this process
	rolledUpTo int64

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewHousekeeper(logger logger.Logger, items catalogdomain.Repository, repo domain.Repository, interval time.Duration) *Housekeeper {
	return &Housekeeper{
		logger:   logger,
		items:    items,
		repo:     repo,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs a pass immediately and then on every tick until Stop
func (h *Housekeeper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.tick(ctx)

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.tick(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for the running pass
func (h *Housekeeper) Stop(ctx context.Context) error {
	if h.cancel != nil {
		h.cancel()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (h *Housekeeper) tick(ctx context.Context) {
	report, err := h.RunOnce(ctx, h.now())
	if err != nil {
		if ctx.Err() == nil {
			h.logger.Warn("Housekeeping pass failed", "err", err)
		}
		return
	}
	h.logger.Debug("Housekeeping pass done", "rolled", report.Rolled, "purged", report.Purged)
}

// RunOnce aggregates every completed hour before now, then purges expired
// history. Rows of the current hour are never purged before they are rolled up.
func (h *Housekeeper) RunOnce(ctx context.Context, now time.Time) (report Report, err error) {
	defer func() {
		telemetry.HousekeepingRunsTotal.WithLabelValues(telemetry.Status(err)).Inc()
	}()

	h.mu.Lock()
	defer h.mu.Unlock()

	hour := now.Unix() / secondsPerHour * secondsPerHour
	for _, kind := range []statsdomain.MetricKind{statsdomain.KindFloat, statsdomain.KindInteger} {
		n, err := h.repo.RollupTrends(ctx, kind, h.rolledUpTo, hour)
		if err != nil {
			return report, err
		}
		report.Rolled += n
	}
	h.rolledUpTo = hour
	telemetry.HousekeepingRowsTotal.WithLabelValues("rollup").Add(float64(report.Rolled))

	items, err := h.items.ListItems(ctx, "")
	if err != nil {
		return report, err
	}
	for _, item := range items {
		if !item.Kind().Numeric() {
			continue
		}
		days, err := item.HistoryDays()
		if err != nil {
			h.logger.Warn("Skipping history purge", "host", item.Host, "item", item.Key, "err", err)
			continue
		}
		before := min(now.Unix()-int64(days)*24*secondsPerHour, hour)
		n, err := h.repo.PurgeHistory(ctx, item.Kind(), item.ID, before)
		if err != nil {
			return report, err
		}
		report.Purged += n
	}
	telemetry.HousekeepingRowsTotal.WithLabelValues("purge").Add(float64(report.Purged))

	return report, nil
}
