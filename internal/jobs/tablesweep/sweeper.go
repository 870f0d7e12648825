// Package tablesweep periodically compares table statuses with the dine-in
// orders seated at them and reports drift. It never changes a table.
package tablesweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
)

const runTimeout = time.Minute

// Checker reports tables whose status disagrees with their orders.
type Checker interface {
	CheckOccupancy(ctx context.Context) ([]*table.Mismatch, error)
}

type Sweeper struct {
	checker Checker
	log     *slog.Logger
}

func New(checker Checker, log *slog.Logger) *Sweeper {
	return &Sweeper{checker: checker, log: log}
}

// Run performs one sweep and returns the number of mismatched tables.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	mismatches, err := s.checker.CheckOccupancy(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "table sweep failed", "action", "table_sweep", "error", err)
		return 0, err
	}
	for _, m := range mismatches {
		s.log.WarnContext(ctx, "table status disagrees with orders",
			"action", "table_sweep",
			"table_id", m.TableID,
			"label", m.Label,
			"status", m.Status,
			"active_orders", m.ActiveOrders)
	}
	s.log.DebugContext(ctx, "table sweep done", "action", "table_sweep", "mismatches", len(mismatches))
	return len(mismatches), nil
}

// Start schedules Run on a cron spec. The caller stops the returned cron.
func (s *Sweeper) Start(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule table sweep %q: %w", spec, err)
	}
	c.Start()
	s.log.Info("table sweep scheduled", "action", "table_sweep", "schedule", spec)
	return c, nil
}
