package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/muurk/adb-autoconnect/internal/address"
	"github.com/muurk/adb-autoconnect/internal/connect"
	"github.com/muurk/adb-autoconnect/internal/logging"
	"github.com/muurk/adb-autoconnect/internal/session"
)

func newTestReporter(level logging.Level) (*Reporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewReporter(&out, &errOut, level), &out, &errOut
}

func TestReporter_LevelGating(t *testing.T) {
	tests := []struct {
		level       logging.Level
		wantDefault bool
		wantInfo    bool
		wantVerbose bool
		wantError   bool
	}{
		{logging.LevelSilent, false, false, false, false},
		{logging.LevelDefault, true, false, false, true},
		{logging.LevelInfo, true, true, false, true},
		{logging.LevelVerbose, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			r, out, errOut := newTestReporter(tt.level)

			r.Default("default-line")
			r.Info("info-line")
			r.Verbose("verbose-line")
			r.Error("error-line")

			assert.Equal(t, tt.wantDefault, bytes.Contains(out.Bytes(), []byte("default-line")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("info-line")))
			assert.Equal(t, tt.wantVerbose, bytes.Contains(out.Bytes(), []byte("verbose-line")))
			assert.Equal(t, tt.wantError, bytes.Contains(errOut.Bytes(), []byte("error-line")))
			assert.NotContains(t, out.String(), "error-line")
		})
	}
}

func TestReporter_DiscoveryMessages(t *testing.T) {
	r, out, _ := newTestReporter(logging.LevelInfo)

	r.DiscoveryStarted(15 * time.Second)
	r.TargetsFound([]address.Address{
		address.MustParse("192.168.1.10:5555"),
		address.MustParse("10.0.0.2:40000"),
	})

	assert.Contains(t, out.String(), "timeout 15000 ms")
	assert.Contains(t, out.String(), "Found 2 target(s):")
	assert.Contains(t, out.String(), "192.168.1.10:5555")
	assert.Contains(t, out.String(), "10.0.0.2:40000")
}

func TestReporter_ListTargetsAtDefaultLevel(t *testing.T) {
	r, out, _ := newTestReporter(logging.LevelDefault)

	r.TargetsFound([]address.Address{address.MustParse("192.168.1.10:5555")})
	assert.Empty(t, out.String(), "targets found is info-only")

	r.ListTargets([]address.Address{
		address.MustParse("192.168.1.10:5555"),
		address.MustParse("10.0.0.2:40000"),
	})
	assert.Equal(t, "192.168.1.10:5555\n10.0.0.2:40000\n", out.String())
}

func TestReporter_NoTargets(t *testing.T) {
	r, out, errOut := newTestReporter(logging.LevelDefault)

	r.NoTargets(15 * time.Second)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "No wireless ADB services found")
	assert.Contains(t, errOut.String(), "Troubleshooting:")
	assert.Contains(t, errOut.String(), "15000 ms")

	r, _, errOut = newTestReporter(logging.LevelSilent)
	r.NoTargets(15 * time.Second)
	assert.Empty(t, errOut.String())
}

func TestReporter_AllObserver(t *testing.T) {
	target := address.MustParse("192.168.1.10:5555")

	tests := []struct {
		name    string
		level   logging.Level
		outcome connect.Outcome
		wantOut string
		wantErr string
	}{
		{
			name:    "connected prints at default",
			level:   logging.LevelDefault,
			outcome: connect.Outcome{Target: target, Kind: connect.KindConnected},
			wantOut: "connected to 192.168.1.10:5555",
		},
		{
			name:    "already connected is info only",
			level:   logging.LevelDefault,
			outcome: connect.Outcome{Target: target, Kind: connect.KindAlreadyConnected},
		},
		{
			name:    "already connected at info",
			level:   logging.LevelInfo,
			outcome: connect.Outcome{Target: target, Kind: connect.KindAlreadyConnected},
			wantOut: "Already connected to 192.168.1.10:5555",
		},
		{
			name:    "connect failure is an error",
			level:   logging.LevelDefault,
			outcome: connect.Outcome{Target: target, Kind: connect.KindConnectFailed, Message: "failed to connect to 192.168.1.10:5555"},
			wantErr: "failed to connect to 192.168.1.10:5555",
		},
		{
			name:    "unverified is an error",
			level:   logging.LevelDefault,
			outcome: connect.Outcome{Target: target, Kind: connect.KindUnverified, Message: connect.UnverifiedMessage},
			wantErr: connect.UnverifiedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out, errOut := newTestReporter(tt.level)

			r.AllObserver().Finished(tt.outcome)

			if tt.wantOut == "" {
				assert.Empty(t, out.String())
			} else {
				assert.Contains(t, out.String(), tt.wantOut)
			}
			if tt.wantErr == "" {
				assert.Empty(t, errOut.String())
			} else {
				assert.Contains(t, errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestReporter_FirstObserver(t *testing.T) {
	target := address.MustParse("192.168.1.10:5555")

	r, out, errOut := newTestReporter(logging.LevelInfo)
	obs := r.FirstObserver()

	obs.Connecting(target)
	obs.Finished(connect.Outcome{Target: target, Kind: connect.KindConnectFailed, Message: "refused"})
	obs.Finished(connect.Outcome{Target: target, Kind: connect.KindUnverified, Message: connect.UnverifiedMessage})
	obs.Finished(connect.Outcome{Target: target, Kind: connect.KindConnected})

	assert.Contains(t, out.String(), "Connecting to 192.168.1.10:5555")
	assert.Contains(t, out.String(), "Failed to connect to 192.168.1.10:5555, trying next target...")
	assert.Contains(t, out.String(), "succeeded but device is not responsive, trying next target...")
	assert.Contains(t, out.String(), "connected to 192.168.1.10:5555")
	assert.Empty(t, errOut.String(), "per-target failures are not errors in first-success mode")

	r.AllTargetsFailed()
	assert.Contains(t, errOut.String(), "Failed to connect to any discovered target")
}

func TestReporter_FirstObserverDefaultLevel(t *testing.T) {
	target := address.MustParse("192.168.1.10:5555")

	r, out, _ := newTestReporter(logging.LevelDefault)
	obs := r.FirstObserver()

	obs.Connecting(target)
	obs.Finished(connect.Outcome{Target: target, Kind: connect.KindConnectFailed})
	assert.Empty(t, out.String())

	obs.Finished(connect.Outcome{Target: target, Kind: connect.KindConnected})
	assert.Equal(t, "connected to 192.168.1.10:5555\n", out.String())
}

func TestReporter_StaleCleaned(t *testing.T) {
	r, out, _ := newTestReporter(logging.LevelInfo)

	r.StaleCleaned([]session.Record{
		{Address: address.MustParse("192.168.1.10:5555"), State: session.StateOffline},
	})

	assert.Contains(t, out.String(), "192.168.1.10:5555")
	assert.Contains(t, out.String(), "offline")
}

func TestReporter_StaleCleanedVerboseBox(t *testing.T) {
	records := []session.Record{
		{Address: address.MustParse("192.168.1.10:5555"), State: session.StateOffline},
		{Address: address.MustParse("192.168.1.11:5555"), State: session.StateUnauthorized},
	}

	r, out, _ := newTestReporter(logging.LevelInfo)
	r.StaleCleaned(records)
	assert.NotContains(t, out.String(), "WARNING")

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.StaleCleaned(records)
	assert.Contains(t, out.String(), "WARNING")
	assert.Contains(t, out.String(), "Stale sessions disconnected")
	assert.Contains(t, out.String(), "192.168.1.11:5555")
	assert.Contains(t, out.String(), "unauthorized")

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.StaleCleaned(nil)
	assert.Empty(t, out.String())
}

func TestReporter_ConnectedVerboseBox(t *testing.T) {
	target := address.MustParse("192.168.1.10:5555")
	outcome := connect.Outcome{Target: target, Kind: connect.KindConnected, Message: "connected to 192.168.1.10:5555"}

	r, out, _ := newTestReporter(logging.LevelInfo)
	r.FirstObserver().Finished(outcome)
	assert.Equal(t, "connected to 192.168.1.10:5555\n", out.String())

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.AllObserver().Finished(outcome)
	assert.Contains(t, out.String(), "SUCCESS")
	assert.Contains(t, out.String(), "Wireless ADB connected")
	assert.Contains(t, out.String(), "device responded to adb devices")

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.AllObserver().Finished(connect.Outcome{Target: target, Kind: connect.KindAlreadyConnected})
	assert.NotContains(t, out.String(), "SUCCESS")
}

func TestReporter_DevicesVerboseOnly(t *testing.T) {
	listing := "List of devices attached\n192.168.1.10:5555\tdevice\n"

	r, out, _ := newTestReporter(logging.LevelInfo)
	r.Devices(listing)
	assert.Empty(t, out.String())

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.Devices(listing)
	assert.Contains(t, out.String(), "ADB devices")
	assert.Contains(t, out.String(), "192.168.1.10:5555")
}

func TestReporter_SessionTable(t *testing.T) {
	r, out, _ := newTestReporter(logging.LevelDefault)
	r.SessionTable(nil)
	assert.Equal(t, "no wireless sessions\n", out.String())

	r, out, _ = newTestReporter(logging.LevelDefault)
	r.SessionTable([]session.Record{
		{Address: address.MustParse("192.168.1.10:5555"), State: session.StateConnected},
		{Address: address.MustParse("192.168.1.11:5555"), State: session.StateUnauthorized},
	})
	assert.Contains(t, out.String(), "192.168.1.10:5555")
	assert.Contains(t, out.String(), "device")
	assert.Contains(t, out.String(), "unauthorized")
}

func TestReporter_RunHeader(t *testing.T) {
	r, out, _ := newTestReporter(logging.LevelInfo)
	r.RunHeader("adb-autoconnect --all", Detail{Key: "Timeout", Value: "15000 ms"})
	assert.Empty(t, out.String())

	r, out, _ = newTestReporter(logging.LevelVerbose)
	r.RunHeader("adb-autoconnect --all", Detail{Key: "Timeout", Value: "15000 ms"})
	assert.Contains(t, out.String(), "ADB AUTOCONNECT")
	assert.Contains(t, out.String(), "15000 ms")
}
