package config

const (
	defaultInputDir  = "."
	defaultOutputDir = "output"
	defaultExtension = ".sub"
	defaultChunkSize = 4096
	maxChunkSize     = 1 << 20
	defaultLogFormat = "console"
	defaultLogLevel  = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Scan: Scan{
			Extensions:  []string{defaultExtension},
			ExcludeDirs: []string{defaultOutputDir},
		},
		Hash: Hash{
			ChunkSize: defaultChunkSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
