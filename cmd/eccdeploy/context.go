package main

import (
	"errors"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"eccdeploy/internal/config"
	"eccdeploy/internal/inputs"
)

// errReported marks a failure that was already reported through the sink.
var errReported = errors.New("deployment failed")

// environmentFunc snapshots the process environment.
type environmentFunc func(extraKeys ...string) config.Environment

type commandContext struct {
	configFlag  *string
	environment environmentFunc

	envOnce sync.Once
	env     config.Environment

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, environment environmentFunc) *commandContext {
	if environment == nil {
		environment = config.EnvironmentFromOS
	}
	return &commandContext{
		configFlag:  configFlag,
		environment: environment,
	}
}

func (c *commandContext) environmentSnapshot() config.Environment {
	c.envOnce.Do(func() {
		c.env = c.environment(inputs.EnvKeys()...)
	})
	return c.env
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path, c.environmentSnapshot())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// stepInputs reads INPUT_* values from the snapshot.
func (c *commandContext) stepInputs() inputs.Inputs {
	return inputs.FromLookup(c.environmentSnapshot().Lookup)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
