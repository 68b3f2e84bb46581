package config

import "strings"

func (c *Config) normalize() {
	c.normalizeDeploy()
	c.normalizeLogging()
	c.normalizeNotifications()
}

func (c *Config) normalizeDeploy() {
	if override := strings.TrimSpace(c.Env.Get(envEndpoint)); override != "" {
		c.Deploy.Endpoint = override
	}
	c.Deploy.Endpoint = strings.TrimSpace(c.Deploy.Endpoint)
	if c.Deploy.Endpoint == "" {
		c.Deploy.Endpoint = defaultEndpoint
	}
	c.Deploy.ArchiveName = strings.TrimSpace(c.Deploy.ArchiveName)
	if c.Deploy.ArchiveName == "" {
		c.Deploy.ArchiveName = defaultArchiveName
	}
}

func (c *Config) normalizeLogging() {
	if override := strings.TrimSpace(c.Env.Get(envLogLevel)); override != "" {
		c.Logging.Level = override
	}
	if c.Env.RunnerDebug() {
		c.Logging.Level = "debug"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
}
