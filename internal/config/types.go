package config

// LogLevel selects the verbosity of the zap logger.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level docsite configuration, corresponding to .docsite.yml.
type Config struct {
	SiteName       string       `yaml:"site_name" koanf:"site_name"`
	ContentDir     string       `yaml:"content_dir" koanf:"content_dir"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`
	NavigationFile string       `yaml:"navigation_file" koanf:"navigation_file"`
	HomePath       string       `yaml:"home_path" koanf:"home_path"`
	DatabasePath   string       `yaml:"database_path" koanf:"database_path"`
	Include        []string     `yaml:"include" koanf:"include"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	Highlight      string       `yaml:"highlight_style" koanf:"highlight_style"`
	Repository     string       `yaml:"repository_url" koanf:"repository_url"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
	LogLevel       LogLevel     `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	TimeoutSeconds  int  `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}
