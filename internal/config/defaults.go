package config

// DefaultExcludes are glob patterns excluded from the content walk by default.
var DefaultExcludes = []string{
	"**/_*.md",
	"**/drafts/**",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName:     "Rubicon Docs",
		ContentDir:   "content",
		OutputDir:    "public",
		HomePath:     "/docs/introduction/overview",
		DatabasePath: ".docsite/pages.db",
		Include:      []string{"**/*.md"},
		Exclude:      DefaultExcludes,
		Highlight:    "github",
		Server: ServerConfig{
			Port:           8080,
			TimeoutSeconds: 60,
		},
		LogLevel: LogInfo,
	}
}
