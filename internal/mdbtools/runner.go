package mdbtools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// run executes one external tool invocation as an isolated, synchronous,
// cancellable unit of work with captured stdout and stderr.
//
// The legacy tools signal failure through their error stream rather than
// their exit code, so any stderr output fails the invocation even when the
// process exits zero. A deadline expiry is mapped to ErrExtraction as well.
func run(ctx context.Context, timeout time.Duration, binary string, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctxErr := runCtx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s timed out after %v", ErrExtraction, binary, timeout)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrExtraction, binary, msg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: running %s: %w", ErrExtraction, binary, err)
	}

	return stdout.Bytes(), nil
}
