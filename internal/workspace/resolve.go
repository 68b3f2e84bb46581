// Package workspace derives the effective base directory and release tag of a
// run from explicit inputs and CI vendor environment variables.
package workspace

import (
	"eccdeploy/internal/config"
	"eccdeploy/internal/inputs"
)

// ResolvedContext is the base directory and tag a run operates on.
type ResolvedContext struct {
	BaseDir string
	Tag     string
}

// Resolve returns explicit when it is set and differs from sentinel, else the
// first non-empty entry of chain, else def.
//
// An explicit value equal to the sentinel cannot be told apart from an unset
// one; it is treated as unset.
func Resolve(explicit, sentinel string, chain []string, def string) string {
	if explicit != "" && explicit != sentinel {
		return explicit
	}
	for _, candidate := range chain {
		if candidate != "" {
			return candidate
		}
	}
	return def
}

// ResolveBaseDir picks the base directory. The working directory is both the
// sentinel and the final default; only an exact match counts as the sentinel,
// so "." or "/work/" are explicit values.
func ResolveBaseDir(explicit string, env config.Environment) string {
	wd := env.WorkingDir
	return Resolve(explicit, wd, env.Chain(config.WorkspaceDirVars), wd)
}

// ResolveTag picks the release tag; "latest" is both sentinel and default.
func ResolveTag(explicit string, env config.Environment) string {
	return Resolve(explicit, inputs.DefaultTag, env.Chain(config.TagVars), inputs.DefaultTag)
}

// ResolveContext resolves both values from the step inputs.
func ResolveContext(in inputs.Inputs, env config.Environment) ResolvedContext {
	return ResolvedContext{
		BaseDir: ResolveBaseDir(in.BaseDir, env),
		Tag:     ResolveTag(in.Tags, env),
	}
}
