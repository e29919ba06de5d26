package config

const (
	defaultConfigPath  = "~/.config/voxnote/config.toml"
	defaultStateDir    = "~/.local/share/voxnote"
	defaultLogDir      = "~/.local/share/voxnote/logs"
	defaultCacheDir    = "~/.cache/voxnote"
	defaultModel       = "small"
	defaultLanguage    = "auto"
	defaultDevice      = "cpu"
	defaultRunner      = "uvx"
	defaultBatchSize   = 4
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultHistoryOpen = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
		},
		Transcription: Transcription{
			Model:     defaultModel,
			Language:  defaultLanguage,
			Device:    defaultDevice,
			Runner:    defaultRunner,
			BatchSize: defaultBatchSize,
		},
		History: History{
			Enabled: defaultHistoryOpen,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
