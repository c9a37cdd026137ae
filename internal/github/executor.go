// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package github

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/llbbl/gitstory/internal/logging"
)

// DefaultTimeout is the default timeout for command execution.
const DefaultTimeout = 60 * time.Second

// CommandExecutor is an interface for running shell commands.
// This abstraction enables mocking in tests without hitting real external commands.
type CommandExecutor interface {
	Execute(name string, args ...string) ([]byte, error)
}

// RealExecutor implements CommandExecutor using os/exec.
type RealExecutor struct {
	Timeout time.Duration
}

// Execute runs the command with a timeout and returns its stdout.
// When the command exits non-zero, its stderr is folded into the error so
// callers can classify gh failures from the error text alone.
func (r *RealExecutor) Execute(name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	started := time.Now()
	output, err := exec.CommandContext(ctx, name, args...).Output()
	logging.WithComponent("github").Debug("command finished",
		"command", name+" "+strings.Join(args, " "),
		"duration", time.Since(started),
		"error", err,
	)

	if ctx.Err() != nil {
		return output, fmt.Errorf("%s timed out after %s: %w", name, timeout, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return output, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return output, err
}
