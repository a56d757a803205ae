// Package executor defines the interface for running snippet code in an
// isolated environment. The docker subpackage is the only implementation.
package executor

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedLanguage is returned when no sandbox exists for the
// requested language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ExecutionRequest identifies what to run and with which toolchain.
type ExecutionRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ExecutionResult carries the output and status of a sandbox run.
type ExecutionResult struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
}

// Executor runs code in an isolated environment.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
