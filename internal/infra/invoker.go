// Package infra implements infrastructure concerns (process execution,
// privilege detection, host facts, downloads).
package infra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/eliteGoblin/hostmaint/internal/domain"
)

// ExecToolInvoker implements domain.ToolInvoker using os/exec.
// One invocation = one result; no state is kept between calls.
type ExecToolInvoker struct{}

// NewToolInvoker creates a new tool invoker.
func NewToolInvoker() domain.ToolInvoker {
	return &ExecToolInvoker{}
}

// Run executes the tool and blocks until it exits. Stdout and stderr are
// captured into one ordered line sequence. A non-zero exit status is returned
// as data; Run errors only when the process cannot be started at all.
func (i *ExecToolInvoker) Run(ctx context.Context, path string, args ...string) (*domain.ToolInvocationResult, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	cmd.Stdin = nil

	err := cmd.Run()
	status := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to launch %s: %w", path, err)
		}
		status = exitErr.ExitCode()
	}

	return &domain.ToolInvocationResult{
		OutputLines: splitOutputLines(buf.String()),
		ExitStatus:  status,
	}, nil
}

// splitOutputLines splits captured output into lines, dropping a single
// trailing empty line from the final newline.
func splitOutputLines(out string) []string {
	if out == "" {
		return nil
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	lines := strings.Split(out, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// Ensure ExecToolInvoker implements domain.ToolInvoker.
var _ domain.ToolInvoker = (*ExecToolInvoker)(nil)
