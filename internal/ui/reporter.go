package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muurk/adb-autoconnect/internal/address"
	"github.com/muurk/adb-autoconnect/internal/connect"
	"github.com/muurk/adb-autoconnect/internal/logging"
	"github.com/muurk/adb-autoconnect/internal/session"
	"github.com/muurk/adb-autoconnect/internal/urls"
)

// NoTargetsTips are printed when discovery finds nothing.
var NoTargetsTips = []string{
	"Ensure Wireless debugging is ON (Developer options → Wireless debugging)",
	"Phone and computer must be on the same network",
	"First-time pairing (Android 11+): `adb pair <ip>:<pairing-port> <code>`",
	"Guide: " + urls.WirelessDebugging,
}

// Reporter writes level-gated user-facing messages. Regular output goes to
// out and errors to errOut; nothing is written at LevelSilent.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	level  logging.Level
	width  int
}

// NewReporter creates a Reporter. nil writers default to os.Stdout and
// os.Stderr.
func NewReporter(out, errOut io.Writer, level logging.Level) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Reporter{
		out:    out,
		errOut: errOut,
		level:  level,
		width:  GetTerminalWidth(),
	}
}

// Level returns the output level
func (r *Reporter) Level() logging.Level {
	return r.level
}

// Default prints essential output, hidden only when silent.
func (r *Reporter) Default(format string, args ...any) {
	r.printf(r.out, logging.LevelDefault, format, args...)
}

// Info prints progress details.
func (r *Reporter) Info(format string, args ...any) {
	r.printf(r.out, logging.LevelInfo, format, args...)
}

// Verbose prints everything else.
func (r *Reporter) Verbose(format string, args ...any) {
	r.printf(r.out, logging.LevelVerbose, format, args...)
}

// Error prints to the error stream unless silent.
func (r *Reporter) Error(format string, args ...any) {
	r.printf(r.errOut, logging.LevelDefault, format, args...)
}

func (r *Reporter) printf(w io.Writer, min logging.Level, format string, args ...any) {
	if !r.level.Enabled(min) {
		return
	}
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

// RunHeader prints the run parameters banner in verbose mode.
func (r *Reporter) RunHeader(command string, params ...Detail) {
	if !r.level.Enabled(logging.LevelVerbose) {
		return
	}
	r.Verbose("%s", NewHeader("ADB Autoconnect", command, params...).SetWidth(r.width).Render())
}

// DiscoveryStarted announces the discovery loop.
func (r *Reporter) DiscoveryStarted(timeout time.Duration) {
	r.Info("🔎 Discovering wireless ADB targets (timeout %d ms)…", timeout.Milliseconds())
}

// TargetsFound lists the ranked targets at info level.
func (r *Reporter) TargetsFound(targets []address.Address) {
	r.Info("Found %d target(s):", len(targets))
	for _, t := range targets {
		r.Info("  %s %s", BulletStyle.Render(Bullet), t)
	}
}

// ListTargets prints one target per line. This is the whole output of
// list-only mode, so it is shown at the default level.
func (r *Reporter) ListTargets(targets []address.Address) {
	for _, t := range targets {
		r.Default("%s", t)
	}
}

// NoTargets prints the discovery failure box with troubleshooting tips.
func (r *Reporter) NoTargets(timeout time.Duration) {
	if !r.level.Enabled(logging.LevelDefault) {
		return
	}
	box := NewFailureResult("No wireless ADB services found", nil, NoTargetsTips).
		SetWidth(r.width).
		AddDetail("Waited", fmt.Sprintf("%d ms", timeout.Milliseconds()))
	r.Error("%s", box.Render())
}

// StaleCleaned reports the sessions removed before discovery. Verbose mode
// adds a warning box listing them.
func (r *Reporter) StaleCleaned(records []session.Record) {
	for _, rec := range records {
		r.Info("🧹 Disconnected stale session %s (%s)", rec.Address, rec.State)
	}
	if len(records) == 0 || !r.level.Enabled(logging.LevelVerbose) {
		return
	}
	box := NewWarningResult("Stale sessions disconnected").SetWidth(r.width)
	for _, rec := range records {
		box.AddDetail(rec.Address.String(), rec.State.String())
	}
	r.Verbose("%s", box.Render())
}

// AllTargetsFailed reports first-success exhaustion.
func (r *Reporter) AllTargetsFailed() {
	r.Error("%s", connect.ErrNoTargetConnected.Error())
}

// Devices prints the raw "adb devices" listing in verbose mode.
func (r *Reporter) Devices(listing string) {
	if !r.level.Enabled(logging.LevelVerbose) {
		return
	}
	r.Verbose("\n%s", NewOutputBox("📱 ADB devices", listing).SetWidth(r.width).Render())
}

// SessionTable prints parsed session records, one per line.
func (r *Reporter) SessionTable(records []session.Record) {
	if len(records) == 0 {
		r.Default("no wireless sessions")
		return
	}
	for _, rec := range records {
		marker := SuccessTitleStyle.Render(SuccessMarker)
		if rec.State != session.StateConnected {
			marker = WarningTitleStyle.Render(WarningMarker)
		}
		r.Default("%s %-21s %s", marker, rec.Address, rec.State)
	}
}

// AllObserver returns the connect.Observer used in all-targets mode.
// Every failure is printed as an error.
func (r *Reporter) AllObserver() connect.Observer {
	return allObserver{r}
}

// FirstObserver returns the connect.Observer used in first-success mode.
// Failures only mean "try the next target" and are printed at info level.
func (r *Reporter) FirstObserver() connect.Observer {
	return firstObserver{r}
}

type allObserver struct{ r *Reporter }

func (o allObserver) Connecting(target address.Address) { o.r.connecting(target) }

func (o allObserver) Finished(outcome connect.Outcome) {
	switch outcome.Kind {
	case connect.KindConnectFailed, connect.KindUnverified:
		o.r.Error("%s", outcome.Message)
	default:
		o.r.succeeded(outcome)
	}
}

type firstObserver struct{ r *Reporter }

func (o firstObserver) Connecting(target address.Address) { o.r.connecting(target) }

func (o firstObserver) Finished(outcome connect.Outcome) {
	switch outcome.Kind {
	case connect.KindConnectFailed:
		o.r.Info("Failed to connect to %s, trying next target...", outcome.Target)
	case connect.KindUnverified:
		o.r.Info("Connection to %s succeeded but device is not responsive, trying next target...", outcome.Target)
	default:
		o.r.succeeded(outcome)
	}
}

func (r *Reporter) connecting(target address.Address) {
	r.Info("🔗 Connecting to %s…", target)
}

func (r *Reporter) succeeded(outcome connect.Outcome) {
	if outcome.Kind == connect.KindAlreadyConnected {
		r.Info("%s Already connected to %s", SuccessTitleStyle.Render(SuccessMarker), outcome.Target)
		return
	}
	r.Default("connected to %s", outcome.Target)
	if !r.level.Enabled(logging.LevelVerbose) {
		return
	}
	box := NewSuccessResult("Wireless ADB connected").
		SetWidth(r.width).
		AddDetail("Target", outcome.Target.String()).
		AddDetail("Verified", "device responded to adb devices")
	if outcome.Message != "" {
		box.AddDetail("adb", outcome.Message)
	}
	r.Verbose("%s", box.Render())
}
