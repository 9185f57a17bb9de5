package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// IntervalPacer enforces a fixed delay after every call.
type IntervalPacer struct {
	interval time.Duration
}

// NewIntervalPacer returns a pacer that sleeps for interval on each Wait.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	return &IntervalPacer{interval: interval}
}

// Interval returns the configured delay.
func (p *IntervalPacer) Interval() time.Duration {
	return p.interval
}

func (p *IntervalPacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RatePacer spaces calls evenly to stay within a requests-per-minute budget.
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer returns a pacer allowing perMinute calls per minute.
// The first slot is consumed on construction so that the Wait following the
// first call already blocks for one full interval.
func NewRatePacer(perMinute int) *RatePacer {
	if perMinute <= 0 {
		perMinute = 1
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	limiter.Allow()
	return &RatePacer{limiter: limiter}
}

func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noPacer struct{}

func (noPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

// NoPacer never delays. Intended for tests and local providers.
var NoPacer Pacer = noPacer{}

// NewPacer picks a pacer for cfg. A positive RequestsPerMinute wins over
// PaceInterval; when both are zero calls are not paced at all.
func NewPacer(cfg *Config) Pacer {
	switch {
	case cfg.RequestsPerMinute > 0:
		return NewRatePacer(cfg.RequestsPerMinute)
	case cfg.PaceInterval > 0:
		return NewIntervalPacer(cfg.PaceInterval)
	default:
		return NoPacer
	}
}
