package adb

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OpenScreenEnvVar switches adb to its bundled Open Screen mDNS backend.
const OpenScreenEnvVar = "ADB_MDNS_OPENSCREEN"

// waitDelay bounds how long Run waits for output pipes after adb is
// killed. An adb that forked its server can leave a child holding them.
const waitDelay = 500 * time.Millisecond

// Result is the captured outcome of one adb invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the process exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Runner runs a single adb command and captures its output.
// The returned error is non-nil only when the command could not be run.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// Config holds the configuration for adb execution.
type Config struct {
	// ADBPath is the path to the adb binary.
	// Default: "adb" (searches PATH)
	ADBPath string

	// Timeout bounds a single invocation. Zero means no limit, which leaves
	// slow connects to adb's own behaviour.
	// Default: 0
	Timeout time.Duration

	// OpenScreen sets ADB_MDNS_OPENSCREEN=1 for every invocation.
	// Default: true
	OpenScreen bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ADBPath:    "adb",
		OpenScreen: true,
	}
}

// ExecRunner executes adb via os/exec.
type ExecRunner struct {
	config Config
	logger *zap.Logger
}

// NewExecRunner creates a new runner with the given configuration.
func NewExecRunner(config Config, logger *zap.Logger) *ExecRunner {
	if config.ADBPath == "" {
		config.ADBPath = DefaultConfig().ADBPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{
		config: config,
		logger: logger,
	}
}

// Run executes adb with args and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (Result, error) {
	startTime := time.Now()

	runCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.config.ADBPath, args...)
	cmd.Env = r.environ()
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	result := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	r.logger.Debug("adb command finished",
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("stdout_size", len(result.Stdout)),
		zap.Int("stderr_size", len(result.Stderr)),
		zap.Error(err),
	)

	if r.config.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, &TimeoutError{
			Args:    args,
			Timeout: r.config.Timeout.String(),
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			r.logger.Debug("adb exited with non-zero status",
				zap.Strings("args", args),
				zap.Int("exit_code", result.ExitCode),
				zap.String("stderr", strings.TrimSpace(result.Stderr)),
			)
			return result, nil
		}

		result.ExitCode = -1
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return result, &ExecutionError{
			Args:     args,
			ExitCode: -1,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	return result, nil
}

// environ returns the process environment with the adb overrides applied.
func (r *ExecRunner) environ() []string {
	env := os.Environ()
	if !r.config.OpenScreen {
		return env
	}

	filtered := env[:0:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, OpenScreenEnvVar+"=") {
			filtered = append(filtered, kv)
		}
	}
	return append(filtered, OpenScreenEnvVar+"=1")
}
