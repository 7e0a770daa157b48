package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-nmd/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing nmd.yaml.
type envConfig struct {
	ConfigPath string // NMD_CONFIG: dossier file path
	Output     string // NMD_OUTPUT: output HTML path
	CodeStyle  string // NMD_CODE_STYLE: chroma style
	Workers    int    // NMD_WORKERS: parallel workers
	FastDraft  bool   // NMD_FAST_DRAFT: skip highlighting and image loading
}

// knownEnvVars lists valid NMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NMD_CONFIG":     true,
	"NMD_OUTPUT":     true,
	"NMD_CODE_STYLE": true,
	"NMD_WORKERS":    true,
	"NMD_FAST_DRAFT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("NMD_CONFIG"),
		Output:     os.Getenv("NMD_OUTPUT"),
		CodeStyle:  os.Getenv("NMD_CODE_STYLE"),
	}

	if workers := os.Getenv("NMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if draft := os.Getenv("NMD_FAST_DRAFT"); draft != "" {
		if b, err := strconv.ParseBool(draft); err == nil {
			cfg.FastDraft = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized NMD_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "NMD_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values the config leaves empty, so the priority is:
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" && cfg.Output.Path == "" {
		cfg.Output.Path = env.Output
	}
	if env.CodeStyle != "" && cfg.Compilation.CodeStyle == "" {
		cfg.Compilation.CodeStyle = env.CodeStyle
	}
	if env.Workers > 0 && cfg.Compilation.Workers == 0 {
		cfg.Compilation.Workers = env.Workers
	}
	if env.FastDraft {
		cfg.Compilation.FastDraft = true
	}
}
