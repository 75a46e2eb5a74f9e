package config

const (
	defaultOutputDir = "~/.local/share/pagesync/output"
	defaultLogDir    = "~/.local/share/pagesync/logs"
	defaultThreshold = 20
	defaultHashSize  = 8
	defaultSideA     = "en"
	defaultSideB     = "es"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Align: Align{
			Threshold: defaultThreshold,
			HashSize:  defaultHashSize,
		},
		Sides: Sides{
			A: defaultSideA,
			B: defaultSideB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
