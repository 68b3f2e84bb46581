package main

import (
	"bytes"
	"strings"
	"testing"

	"eccdeploy/internal/config"
)

type cliTestEnv struct {
	workingDir string
	values     map[string]string
}

func newCLITestEnv(t *testing.T, values map[string]string) *cliTestEnv {
	t.Helper()
	if values == nil {
		values = map[string]string{}
	}
	return &cliTestEnv{workingDir: t.TempDir(), values: values}
}

func (e *cliTestEnv) environment(extraKeys ...string) config.Environment {
	return config.NewEnvironment(config.MapLookup(e.values), e.workingDir, extraKeys...)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWithEnvironment(env.environment)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
