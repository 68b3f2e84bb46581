package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"eccdeploy/internal/config"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	env := config.NewEnvironment(config.MapLookup(nil), dir)

	cfg, resolved, exists, err := config.Load("", env)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != filepath.Join(dir, "eccdeploy.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Deploy.Endpoint != config.Default().Deploy.Endpoint {
		t.Fatalf("unexpected endpoint %q", cfg.Deploy.Endpoint)
	}
	if cfg.Deploy.ArchiveName != "packages.zip" {
		t.Fatalf("unexpected archive name %q", cfg.Deploy.ArchiveName)
	}
	if cfg.UploadTimeout() != 0 {
		t.Fatalf("expected no upload timeout by default, got %s", cfg.UploadTimeout())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[deploy]
endpoint = "https://staging.example.com/deploy"
archive_name = "bundle.zip"
timeout_seconds = 30

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(filepath.Join(dir, "eccdeploy.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load("", config.NewEnvironment(nil, dir))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if cfg.Deploy.Endpoint != "https://staging.example.com/deploy" {
		t.Fatalf("unexpected endpoint %q", cfg.Deploy.Endpoint)
	}
	if cfg.Deploy.ArchiveName != "bundle.zip" {
		t.Fatalf("unexpected archive name %q", cfg.Deploy.ArchiveName)
	}
	if cfg.UploadTimeout().Seconds() != 30 {
		t.Fatalf("unexpected timeout %s", cfg.UploadTimeout())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	env := config.NewEnvironment(config.MapLookup(map[string]string{
		"ECCDEPLOY_ENDPOINT": "http://127.0.0.1:9999/deploy",
		"RUNNER_DEBUG":       "1",
	}), t.TempDir())

	cfg, _, _, err := config.Load("", env)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Deploy.Endpoint != "http://127.0.0.1:9999/deploy" {
		t.Fatalf("expected endpoint override, got %q", cfg.Deploy.Endpoint)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected RUNNER_DEBUG to force debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, _, _, err := config.Load(missing, config.NewEnvironment(nil, t.TempDir())); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[deploy]\nendpont = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := config.Load(path, config.NewEnvironment(nil, dir))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"relative endpoint", func(c *config.Config) { c.Deploy.Endpoint = "/deploy" }, "deploy.endpoint"},
		{"ftp endpoint", func(c *config.Config) { c.Deploy.Endpoint = "ftp://example.com" }, "deploy.endpoint"},
		{"archive path", func(c *config.Config) { c.Deploy.ArchiveName = "out/packages.zip" }, "deploy.archive_name"},
		{"negative timeout", func(c *config.Config) { c.Deploy.TimeoutSeconds = -1 }, "deploy.timeout_seconds"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"ntfy topic", func(c *config.Config) { c.Notifications.NtfyTopic = "topic" }, "notifications.ntfy_topic"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "eccdeploy.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid toml: %v", err)
	}
	if decoded.Deploy.ArchiveName != "packages.zip" {
		t.Fatalf("unexpected sample archive name %q", decoded.Deploy.ArchiveName)
	}
	if _, _, _, err := config.Load(path, config.NewEnvironment(nil, dir)); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestEnvironmentChainPreservesOrder(t *testing.T) {
	env := config.NewEnvironment(config.MapLookup(map[string]string{
		"GITHUB_WORKSPACE":  "/github",
		"CODEBUILD_SRC_DIR": "/codebuild",
		"UNRELATED":         "ignored",
	}), "/cwd")

	got := env.Chain(config.WorkspaceDirVars)
	want := []string{"", "/github", "", "/codebuild"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chain[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, ok := env.Lookup("UNRELATED"); ok {
		t.Fatal("expected unrelated keys to stay out of the snapshot")
	}
	if env.WorkingDir != "/cwd" {
		t.Fatalf("unexpected working dir %q", env.WorkingDir)
	}
}

func TestEnvironmentFlags(t *testing.T) {
	env := config.NewEnvironment(config.MapLookup(map[string]string{
		"GITHUB_ACTIONS": "true",
		"RUNNER_DEBUG":   "1",
		"INPUT_TAGS":     "v1",
	}), "", "INPUT_TAGS")
	if !env.GitHubActions() {
		t.Fatal("expected GitHub Actions to be detected")
	}
	if !env.RunnerDebug() {
		t.Fatal("expected runner debug to be detected")
	}
	if env.Get("INPUT_TAGS") != "v1" {
		t.Fatalf("expected extra key captured, got %q", env.Get("INPUT_TAGS"))
	}
}
