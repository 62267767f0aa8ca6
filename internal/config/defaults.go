package config

const (
	defaultLogDir                 = "~/.local/share/appxify/logs"
	defaultPackagingTool          = "makeappx"
	defaultPackagingTimeoutSecond = 300
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults. OutputDir is
// intentionally empty: when unset, descriptors are written beside the source
// manifest.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Packaging: Packaging{
			Tool:           defaultPackagingTool,
			TimeoutSeconds: defaultPackagingTimeoutSecond,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
