package adb

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/address"
)

// ConnectResult is the outcome of one "adb connect" call.
type ConnectResult struct {
	// Target is the address that was connected to
	Target address.Address
	// Success is true when adb exited with status zero
	Success bool
	// Message is adb's trimmed stderr, falling back to stdout
	Message string
}

// Client issues adb commands through a Runner.
type Client struct {
	runner Runner
	logger *zap.Logger
}

// NewClient creates a client on top of runner.
func NewClient(runner Runner, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		runner: runner,
		logger: logger,
	}
}

// MDNSServices returns the raw output of "adb mdns services".
// The exit code is ignored; an empty or partial listing is routine.
func (c *Client) MDNSServices(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, "mdns", "services")
	if err != nil {
		return "", fmt.Errorf("failed to list mdns services: %w", err)
	}
	if !res.OK() {
		c.logger.Debug("mdns services exited with non-zero status",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)),
		)
	}
	return res.Stdout, nil
}

// Devices returns the raw output of "adb devices".
func (c *Client) Devices(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, "devices")
	if err != nil {
		return "", fmt.Errorf("failed to list devices: %w", err)
	}
	if !res.OK() {
		c.logger.Debug("devices exited with non-zero status",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)),
		)
	}
	return res.Stdout, nil
}

// Connect runs "adb connect <target>".
func (c *Client) Connect(ctx context.Context, target address.Address) (ConnectResult, error) {
	res, err := c.runner.Run(ctx, "connect", target.String())
	if err != nil {
		return ConnectResult{Target: target}, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	message := strings.TrimSpace(res.Stderr)
	if message == "" {
		message = strings.TrimSpace(res.Stdout)
	}

	c.logger.Debug("connect finished",
		zap.String("target", target.String()),
		zap.Int("exit_code", res.ExitCode),
		zap.String("message", message),
	)

	return ConnectResult{
		Target:  target,
		Success: res.OK(),
		Message: message,
	}, nil
}

// Disconnect runs "adb disconnect <target>" and reports whether adb
// exited with status zero.
func (c *Client) Disconnect(ctx context.Context, target address.Address) (bool, error) {
	res, err := c.runner.Run(ctx, "disconnect", target.String())
	if err != nil {
		return false, fmt.Errorf("failed to disconnect from %s: %w", target, err)
	}
	if !res.OK() {
		c.logger.Debug("disconnect exited with non-zero status",
			zap.String("target", target.String()),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)),
		)
	}
	return res.OK(), nil
}

// Version returns the first line of "adb version".
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, "version")
	if err != nil {
		return "", fmt.Errorf("failed to query adb version: %w", err)
	}
	if !res.OK() {
		return "", fmt.Errorf("adb version exited with status %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	line, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
	return strings.TrimSpace(line), nil
}
