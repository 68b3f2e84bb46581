package config

import (
	"os"
	"strings"
)

// LookupFunc mirrors os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Workspace directory variables in vendor priority order: Bitbucket Pipelines,
// GitHub Actions, GitLab CI, AWS CodeBuild.
var WorkspaceDirVars = []string{
	"BITBUCKET_CLONE_DIR",
	"GITHUB_WORKSPACE",
	"CI_BUILDS_DIR",
	"CODEBUILD_SRC_DIR",
}

// Release tag variables in the same vendor priority order.
var TagVars = []string{
	"BITBUCKET_TAG",
	"GITHUB_REF_NAME",
	"CI_COMMIT_REF_NAME",
	"CODEBUILD_SOURCE_VERSION",
}

const (
	envEndpoint      = "ECCDEPLOY_ENDPOINT"
	envLogLevel      = "ECCDEPLOY_LOG_LEVEL"
	envRunnerDebug   = "RUNNER_DEBUG"
	envGitHubActions = "GITHUB_ACTIONS"
)

// Environment is an immutable snapshot of the process environment values the
// tool consults. Only keys read through Lookup at construction time or listed
// in the vendor tables are retained.
type Environment struct {
	WorkingDir string
	values     map[string]string
}

// NewEnvironment captures the vendor fallback variables, tool overrides and
// any extra keys through lookup. A nil lookup yields an empty snapshot.
func NewEnvironment(lookup LookupFunc, workingDir string, extraKeys ...string) Environment {
	env := Environment{WorkingDir: workingDir, values: map[string]string{}}
	if lookup == nil {
		return env
	}
	keys := make([]string, 0, len(WorkspaceDirVars)+len(TagVars)+4+len(extraKeys))
	keys = append(keys, WorkspaceDirVars...)
	keys = append(keys, TagVars...)
	keys = append(keys, envEndpoint, envLogLevel, envRunnerDebug, envGitHubActions)
	keys = append(keys, extraKeys...)
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			env.values[key] = value
		}
	}
	return env
}

// EnvironmentFromOS snapshots the real process environment.
func EnvironmentFromOS(extraKeys ...string) Environment {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return NewEnvironment(os.LookupEnv, wd, extraKeys...)
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// Lookup returns a captured value.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Get returns a captured value or the empty string.
func (e Environment) Get(key string) string {
	return e.values[key]
}

// Chain returns the captured values of keys in order, empty for unset keys.
func (e Environment) Chain(keys []string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = e.values[key]
	}
	return out
}

// GitHubActions reports whether the run executes inside a GitHub Actions job.
func (e Environment) GitHubActions() bool {
	return strings.EqualFold(strings.TrimSpace(e.values[envGitHubActions]), "true")
}

// RunnerDebug reports whether step debug logging was requested by the runner.
func (e Environment) RunnerDebug() bool {
	return strings.TrimSpace(e.values[envRunnerDebug]) == "1"
}
