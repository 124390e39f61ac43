package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/address"
)

const (
	// DefaultTimeout is the default discovery deadline
	DefaultTimeout = 15 * time.Second

	// DefaultPollInterval is the pause between empty listings
	DefaultPollInterval = 1 * time.Second
)

// ErrNoTargets is returned by callers when discovery ends with nothing found.
var ErrNoTargets = errors.New("no wireless adb services found")

// Clock abstracts time for the poll loop.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d or until ctx is done.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type pollState int

const (
	statePolling pollState = iota
	stateDone
)

// Poller repeats discovery until targets appear or a deadline passes.
type Poller struct {
	// Source produces the raw listings
	Source Source

	// Interval is the fixed pause between empty listings
	Interval time.Duration

	// Clock provides Now and Sleep
	Clock Clock

	logger *zap.Logger
}

// NewPoller creates a Poller with the default interval and wall clock.
func NewPoller(source Source, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		Source:   source,
		Interval: DefaultPollInterval,
		Clock:    SystemClock{},
		logger:   logger,
	}
}

// Poll runs discovery until the decoded list is non-empty or timeout has
// elapsed since the first call. The source is always called at least once.
// On timeout the decode of the last listing is returned, which may be
// empty; an empty result is not an error.
func (p *Poller) Poll(ctx context.Context, timeout time.Duration) ([]address.Address, error) {
	start := p.Clock.Now()

	var (
		targets  []address.Address
		attempts int
	)

	for state := statePolling; state != stateDone; {
		text, err := p.Source.Services(ctx)
		if err != nil {
			return nil, fmt.Errorf("discovery failed: %w", err)
		}
		attempts++

		targets = Decode(text)
		elapsed := p.Clock.Now().Sub(start)

		p.logger.Debug("discovery attempt",
			zap.Int("attempt", attempts),
			zap.Int("targets", len(targets)),
			zap.Duration("elapsed", elapsed),
		)

		switch {
		case len(targets) > 0:
			state = stateDone
		case elapsed >= timeout:
			p.logger.Info("discovery deadline reached",
				zap.Int("attempts", attempts),
				zap.Duration("timeout", timeout),
			)
			state = stateDone
		default:
			if err := p.Clock.Sleep(ctx, p.Interval); err != nil {
				return nil, err
			}
		}
	}

	return targets, nil
}
