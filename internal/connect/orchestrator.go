package connect

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/adb"
	"github.com/muurk/adb-autoconnect/internal/address"
)

// ErrNoTargetConnected is returned by ConnectFirst when every target failed.
var ErrNoTargetConnected = errors.New("failed to connect to any discovered target")

// Connector issues the connect call.
type Connector interface {
	Connect(ctx context.Context, target address.Address) (adb.ConnectResult, error)
}

// Sessions answers session-state questions; *session.Manager implements it.
type Sessions interface {
	IsAlreadyConnected(ctx context.Context, target address.Address) (bool, error)
	Verify(ctx context.Context, target address.Address) (bool, error)
}

// Observer is notified as targets are processed.
type Observer interface {
	// Connecting is called right before adb connect is issued
	Connecting(target address.Address)
	// Finished is called once per visited target
	Finished(outcome Outcome)
}

type nopObserver struct{}

func (nopObserver) Connecting(address.Address) {}
func (nopObserver) Finished(Outcome)           {}

// Orchestrator runs the connect policies.
type Orchestrator struct {
	connector Connector
	sessions  Sessions
	observer  Observer
	logger    *zap.Logger
}

// NewOrchestrator creates an Orchestrator. observer may be nil.
func NewOrchestrator(connector Connector, sessions Sessions, observer Observer, logger *zap.Logger) *Orchestrator {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		connector: connector,
		sessions:  sessions,
		observer:  observer,
		logger:    logger,
	}
}

// ConnectAll visits every target in order and returns one Outcome per
// target. Only a failure to run adb aborts the walk.
func (o *Orchestrator) ConnectAll(ctx context.Context, targets []address.Address) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(targets))

	for _, target := range targets {
		outcome, err := o.attempt(ctx, target)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// ConnectFirst tries targets in order and stops at the first one that is
// already connected or connects and verifies. It returns that Outcome and
// every Outcome visited. When nothing succeeds the error wraps
// ErrNoTargetConnected.
func (o *Orchestrator) ConnectFirst(ctx context.Context, targets []address.Address) (Outcome, []Outcome, error) {
	outcomes := make([]Outcome, 0, len(targets))

	for _, target := range targets {
		outcome, err := o.attempt(ctx, target)
		if err != nil {
			return Outcome{}, outcomes, err
		}
		outcomes = append(outcomes, outcome)

		if outcome.Succeeded() {
			return outcome, outcomes, nil
		}

		o.logger.Info("target failed, trying next",
			zap.String("target", target.String()),
			zap.Stringer("kind", outcome.Kind),
			zap.String("message", outcome.Message),
		)
	}

	return Outcome{}, outcomes, fmt.Errorf("all targets (%d tried): %w", len(outcomes), ErrNoTargetConnected)
}

// attempt processes a single target.
func (o *Orchestrator) attempt(ctx context.Context, target address.Address) (Outcome, error) {
	already, err := o.sessions.IsAlreadyConnected(ctx, target)
	if err != nil {
		return Outcome{}, err
	}
	if already {
		outcome := Outcome{
			Target:  target,
			Kind:    KindAlreadyConnected,
			Message: fmt.Sprintf("already connected to %s", target),
		}
		o.observer.Finished(outcome)
		return outcome, nil
	}

	o.observer.Connecting(target)

	res, err := o.connector.Connect(ctx, target)
	var timeoutErr *adb.TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		// A hung connect only rules out this target.
		o.logger.Warn("connect timed out",
			zap.String("target", target.String()),
			zap.String("timeout", timeoutErr.Timeout),
		)
		res = adb.ConnectResult{Target: target, Message: timeoutErr.Error()}
	case err != nil:
		return Outcome{}, err
	}

	outcome := Outcome{Target: target, Message: res.Message}

	switch {
	case !res.Success:
		outcome.Kind = KindConnectFailed
		if outcome.Message == "" {
			outcome.Message = fmt.Sprintf("Failed to connect to %s", target)
		}
	default:
		verified, err := o.sessions.Verify(ctx, target)
		if err != nil && !errors.As(err, &timeoutErr) {
			return Outcome{}, err
		}
		if verified {
			outcome.Kind = KindConnected
		} else {
			outcome.Kind = KindUnverified
			outcome.Message = UnverifiedMessage
		}
	}

	o.logger.Debug("target processed",
		zap.String("target", target.String()),
		zap.Stringer("kind", outcome.Kind),
	)

	o.observer.Finished(outcome)
	return outcome, nil
}
