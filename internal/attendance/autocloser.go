package attendance

import (
	"context"
	"time"

	"github.com/nidhidattani13/ems/internal/shared/clock"

	"go.uber.org/zap"
)

// DayCloser is the slice of the attendance service the auto-closer
// drives.
type DayCloser interface {
	CloseDay(ctx context.Context) (int64, error)
}

// AutoCloser closes open attendance records at 18:00 from the server
// side. It arms a one-shot timer for the remaining time until 18:00
// and keeps a per-minute ticker as a backup; both fire the same
// idempotent bulk close, so double firing is harmless. Runs until the
// context is cancelled.
type AutoCloser struct {
	closer   DayCloser
	clk      clock.Clock
	interval time.Duration
	logger   *zap.Logger
}

func NewAutoCloser(closer DayCloser, clk clock.Clock, logger ...*zap.Logger) *AutoCloser {
	l := zap.L().Named("attendance.autocloser")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.autocloser")
	}
	return &AutoCloser{closer: closer, clk: clk, interval: time.Minute, logger: l}
}

func (a *AutoCloser) Run(ctx context.Context) error {
	now := a.clk.Now()
	cutoff := clock.WorkdayEnd(now)

	// Past 18:00 already: close immediately instead of arming a timer
	// for a moment that will not come today.
	var timerC <-chan time.Time
	if now.Before(cutoff) {
		timer := time.NewTimer(cutoff.Sub(now))
		defer timer.Stop()
		timerC = timer.C
		a.logger.Info("auto-close timer armed", zap.Time("fires_at", cutoff))
	} else {
		a.close(ctx)
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("auto-closer stopped")
			return ctx.Err()
		case <-timerC:
			a.close(ctx)
		case <-ticker.C:
			if !a.clk.Now().Before(clock.WorkdayEnd(a.clk.Now())) {
				a.close(ctx)
			}
		}
	}
}

func (a *AutoCloser) close(ctx context.Context) {
	if _, err := a.closer.CloseDay(ctx); err != nil {
		a.logger.Error("auto-close failed", zap.Error(err))
	}
}
