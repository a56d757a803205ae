package docker

import (
	"time"
)

// LanguageSpec describes how one language runs inside its sandbox image.
// Cmd is the argv prefix; the snippet code is appended as the final
// argument.
type LanguageSpec struct {
	Image string
	Cmd   []string
}

// Config holds the sandbox execution settings.
type Config struct {
	// Languages maps snippet language names to their sandbox toolchains.
	Languages map[string]LanguageSpec
	// MemoryLimit is the per-container memory cap in bytes.
	MemoryLimit int64
	// CPULimit is the number of CPUs a container can use.
	CPULimit float64
	// Timeout is the maximum wall-clock time for one execution.
	Timeout time.Duration
	// PoolSize is the number of pre-warmed containers kept per language.
	PoolSize int
}

// DefaultConfig sandboxes the two languages snippets default to.
func DefaultConfig() Config {
	return Config{
		Languages: map[string]LanguageSpec{
			"python": {
				Image: "python:3.12-alpine",
				Cmd:   []string{"python", "-c"},
			},
			"javascript": {
				Image: "node:22-alpine",
				Cmd:   []string{"node", "-e"},
			},
		},
		// 128 MB memory limit
		MemoryLimit: 128 * 1024 * 1024,
		// 0.5 CPU shares
		CPULimit: 0.5,
		// 5 second default timeout
		Timeout:  5 * time.Second,
		PoolSize: 2,
	}
}
