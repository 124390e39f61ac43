package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/adb"
	"github.com/muurk/adb-autoconnect/internal/address"
)

// Bridge is the subset of the adb client the Manager needs.
type Bridge interface {
	Devices(ctx context.Context) (string, error)
	Disconnect(ctx context.Context, target address.Address) (bool, error)
}

// Manager answers session questions from a fresh "adb devices" listing.
type Manager struct {
	bridge Bridge
	logger *zap.Logger
}

// NewManager creates a Manager on top of bridge.
func NewManager(bridge Bridge, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		bridge: bridge,
		logger: logger,
	}
}

// Statuses lists the current wireless sessions.
func (m *Manager) Statuses(ctx context.Context) ([]Record, error) {
	text, err := m.bridge.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session status: %w", err)
	}
	return ParseStatus(text), nil
}

// ListStale returns sessions that are offline or unauthorized.
func (m *Manager) ListStale(ctx context.Context) ([]Record, error) {
	records, err := m.Statuses(ctx)
	if err != nil {
		return nil, err
	}

	var stale []Record
	for _, r := range records {
		if r.State.Stale() {
			stale = append(stale, r)
		}
	}
	return stale, nil
}

// CleanupStale disconnects every stale session and returns the ones adb
// reported as disconnected. A failed disconnect is logged and left out of
// the result; it never aborts the cleanup.
func (m *Manager) CleanupStale(ctx context.Context) ([]Record, error) {
	stale, err := m.ListStale(ctx)
	if err != nil {
		return nil, err
	}

	var cleaned []Record
	for _, r := range stale {
		m.logger.Info("disconnecting stale session",
			zap.String("address", r.Address.String()),
			zap.Stringer("state", r.State),
		)

		ok, err := m.bridge.Disconnect(ctx, r.Address)
		var timeoutErr *adb.TimeoutError
		if errors.As(err, &timeoutErr) {
			m.logger.Warn("stale session disconnect timed out",
				zap.String("address", r.Address.String()),
				zap.String("timeout", timeoutErr.Timeout),
			)
			continue
		}
		if err != nil {
			return cleaned, err
		}
		if !ok {
			m.logger.Warn("stale session disconnect failed",
				zap.String("address", r.Address.String()),
			)
			continue
		}
		cleaned = append(cleaned, r)
	}

	return cleaned, nil
}

// IsAlreadyConnected reports whether target has a session in the
// connected state.
func (m *Manager) IsAlreadyConnected(ctx context.Context, target address.Address) (bool, error) {
	records, err := m.Statuses(ctx)
	if err != nil {
		return false, err
	}
	r, ok := Find(records, target)
	return ok && r.State == StateConnected, nil
}

// Verify re-checks target after a connect call. adb can exit zero for a
// connect that left the session offline, so only a fresh listing counts.
func (m *Manager) Verify(ctx context.Context, target address.Address) (bool, error) {
	connected, err := m.IsAlreadyConnected(ctx, target)
	if err != nil {
		return false, err
	}
	m.logger.Debug("verified session",
		zap.String("address", target.String()),
		zap.Bool("connected", connected),
	)
	return connected, nil
}
