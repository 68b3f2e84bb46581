package testsupport

import (
	"testing"

	"eccdeploy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// WithEnv replaces the environment snapshot. workingDir defaults to a temp dir.
func WithEnv(values map[string]string, workingDir string) ConfigOption {
	return func(cfg *config.Config) {
		if workingDir == "" {
			workingDir = cfg.Env.WorkingDir
		}
		cfg.Env = config.NewEnvironment(config.MapLookup(values), workingDir)
	}
}

// NewConfig produces a validated default config whose working directory is a
// fresh temp dir and whose environment is empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Env = config.NewEnvironment(nil, t.TempDir())
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
