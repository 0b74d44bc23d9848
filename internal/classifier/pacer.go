package classifier

import (
	"context"
	"sync"
	"time"

	"github.com/brandlens/brandlens/internal/logger"
)

// pacer throttles AI calls independently of batch pacing: a minimum
// delay between consecutive calls, a longer cooldown every N calls,
// and a slowly growing base delay on long runs.
type pacer struct {
	mu            sync.Mutex
	minInterval   time.Duration
	cooldownEvery int
	cooldown      time.Duration
	lastCall      time.Time
	calls         int

	sleep func(context.Context, time.Duration) error
}

const (
	pacerGrowthFactor = 1.2
	pacerMaxInterval  = 3 * time.Second
	pacerGrowthEvery  = 100
)

func newPacer(minInterval time.Duration, cooldownEvery int, cooldown time.Duration) *pacer {
	return &pacer{
		minInterval:   minInterval,
		cooldownEvery: cooldownEvery,
		cooldown:      cooldown,
		sleep:         sleepCtx,
	}
}

// Wait blocks until the next AI call is allowed.
func (p *pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := time.Since(p.lastCall); since < p.minInterval {
		if err := p.sleep(ctx, p.minInterval-since); err != nil {
			return err
		}
	}

	p.calls++
	p.lastCall = time.Now()

	if p.cooldownEvery > 0 && p.calls%p.cooldownEvery == 0 {
		logger.Info("Made %d AI calls, cooling down for %v", p.calls, p.cooldown)
		if err := p.sleep(ctx, p.cooldown); err != nil {
			return err
		}
		p.lastCall = time.Now()
	}

	// Long runs slow down gradually to stay under abuse thresholds.
	if p.calls%pacerGrowthEvery == 0 {
		grown := time.Duration(float64(p.minInterval) * pacerGrowthFactor)
		if grown > pacerMaxInterval {
			grown = pacerMaxInterval
		}
		p.minInterval = grown
		logger.Info("Adjusted AI call interval to %v", p.minInterval)
	}

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
