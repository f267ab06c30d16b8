package config

const (
	defaultDataDir        = "~/.local/share/paperdesk"
	defaultLogDir         = "~/.local/share/paperdesk/logs"
	defaultCandidateLimit = 50
	maxCandidateLimit     = 500
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultConfigPath     = "~/.config/paperdesk/config.toml"
	projectConfigName     = "paperdesk.toml"
	databaseFileName      = "papers.db"
	filesDirName          = "files"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Duplicates: Duplicates{
			CandidateLimit: defaultCandidateLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
