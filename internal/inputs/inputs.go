// Package inputs reads the step inputs handed to eccdeploy by the CI host.
//
// GitHub Actions exposes step inputs as INPUT_<NAME> environment variables;
// other vendors pass the same names through the command line. Flags win over
// environment values.
package inputs

import (
	"fmt"
	"strings"

	"eccdeploy/internal/stage"
)

// Input names as declared by the step.
const (
	AccessToken  = "access_token"
	BaseDir      = "base_dir"
	PackageDir   = "package_dir"
	InstanceName = "instance_name"
	Tags         = "tags"
	Description  = "description"
)

// Names lists every input in declaration order.
var Names = []string{AccessToken, BaseDir, PackageDir, InstanceName, Tags, Description}

// Required lists inputs that must be non-empty.
var Required = []string{AccessToken, InstanceName, PackageDir}

// DefaultTag is the tag value used when none is provided.
const DefaultTag = "latest"

// Inputs holds the raw step inputs.
type Inputs struct {
	AccessToken  string
	BaseDir      string
	PackageDir   string
	InstanceName string
	Tags         string
	Description  string
}

// LookupFunc mirrors os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvKey returns the environment variable that carries input name, following
// the runner convention of upper-casing and replacing spaces with underscores.
func EnvKey(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// EnvKeys returns every environment key FromLookup may consult, including
// the hyphenated spellings.
func EnvKeys() []string {
	keys := make([]string, 0, len(Names)*2)
	for _, name := range Names {
		keys = append(keys, EnvKey(name))
		if hyphenated := strings.ReplaceAll(name, "_", "-"); hyphenated != name {
			keys = append(keys, EnvKey(hyphenated))
		}
	}
	return keys
}

// FromLookup reads every input through lookup. Values are trimmed; tags
// defaults to DefaultTag when unset.
func FromLookup(lookup LookupFunc) Inputs {
	get := func(name string) string {
		if lookup == nil {
			return ""
		}
		if v, ok := lookup(EnvKey(name)); ok {
			return strings.TrimSpace(v)
		}
		// Runners that keep the hyphenated form of the input name.
		if v, ok := lookup(EnvKey(strings.ReplaceAll(name, "_", "-"))); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	in := Inputs{
		AccessToken:  get(AccessToken),
		BaseDir:      get(BaseDir),
		PackageDir:   get(PackageDir),
		InstanceName: get(InstanceName),
		Tags:         get(Tags),
		Description:  get(Description),
	}
	if in.Tags == "" {
		in.Tags = DefaultTag
	}
	return in
}

// Override returns a copy of in with every non-empty value from overrides
// applied on top.
func (in Inputs) Override(overrides map[string]string) Inputs {
	out := in
	for name, value := range overrides {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch name {
		case AccessToken:
			out.AccessToken = value
		case BaseDir:
			out.BaseDir = value
		case PackageDir:
			out.PackageDir = value
		case InstanceName:
			out.InstanceName = value
		case Tags:
			out.Tags = value
		case Description:
			out.Description = value
		}
	}
	return out
}

// Get returns the value of a named input.
func (in Inputs) Get(name string) string {
	switch name {
	case AccessToken:
		return in.AccessToken
	case BaseDir:
		return in.BaseDir
	case PackageDir:
		return in.PackageDir
	case InstanceName:
		return in.InstanceName
	case Tags:
		return in.Tags
	case Description:
		return in.Description
	default:
		return ""
	}
}

// MissingError names every required input that was left empty.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	noun := "input"
	if len(e.Names) > 1 {
		noun = "inputs"
	}
	return fmt.Sprintf("missing required %s: %s", noun, strings.Join(e.Names, ", "))
}

func (e *MissingError) Unwrap() error { return stage.ErrValidation }

// Validate fails with a *MissingError when a required input is empty.
func (in Inputs) Validate() error {
	var missing []string
	for _, name := range Required {
		if strings.TrimSpace(in.Get(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingError{Names: missing}
}
