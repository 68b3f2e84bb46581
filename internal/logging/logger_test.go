package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"eccdeploy/internal/config"
	"eccdeploy/internal/logging"
	"eccdeploy/internal/stage"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerTimestamps(t *testing.T) {
	for _, stamped := range []bool{false, true} {
		var buf bytes.Buffer
		logger, err := logging.New(logging.Options{Format: "console", Writer: &buf, Timestamps: stamped})
		if err != nil {
			t.Fatal(err)
		}
		logger.Info("hello")
		line := buf.String()
		if got := strings.HasPrefix(line, "INFO"); got == stamped {
			t.Fatalf("timestamps=%v produced %q", stamped, line)
		}
	}
}

func TestNewFromConfigOmitsTimestampsOnGitHubActions(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.NewEnvironment(config.MapLookup(map[string]string{"GITHUB_ACTIONS": "true"}), "")
	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("stamped by the runner")
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Fatalf("expected unstamped line, got %q", buf.String())
	}
}

func TestConsoleLoggerPrefixesGroupedFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.WithGroup("archive").With(logging.Int("files", 3)).Info("zipped", logging.String("path", "dir with space/packages.zip"))
	line := buf.String()
	for _, fragment := range []string{"archive.files=3", `archive.path="dir with space/packages.zip"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRendersComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := stage.WithStage(stage.WithRunID(context.Background(), "run-42"), stage.Upload)
	log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "deploy"))
	log.Info("upload finished", logging.Int("status", 201))

	line := buf.String()
	for _, fragment := range []string{"INFO", "deploy: upload finished", "run_id=run-42", "stage=upload", "status=201"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("careful", logging.Secret("token", "abcdefgh"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "warn" || record["msg"] != "careful" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
	if record["token"] != "abcd****" {
		t.Fatalf("expected masked token, got %v", record["token"])
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "***",
		"abcd":       "****",
		"abcdefghij": "abcd****",
		"  padded  ": "padd****",
	}
	for in, want := range tests {
		if got := logging.MaskSecret(in); got != want {
			t.Fatalf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithContextWithoutFieldsReturnsSameLogger(t *testing.T) {
	base := logging.NewNop()
	if logging.WithContext(context.Background(), base) != base {
		t.Fatal("expected logger to be returned unchanged")
	}
}
