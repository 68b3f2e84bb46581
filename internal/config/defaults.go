package config

const (
	defaultEndpoint          = "https://console.lonti.com/api/v2/managed-hosting/deploy"
	defaultArchiveName       = "packages.zip"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultNotifyTimeout     = 10
	defaultConfigFileName    = "eccdeploy.toml"
	defaultUploadTimeoutSecs = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Deploy: Deploy{
			Endpoint:       defaultEndpoint,
			ArchiveName:    defaultArchiveName,
			TimeoutSeconds: defaultUploadTimeoutSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
	}
}
