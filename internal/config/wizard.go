package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directories commonly used for markdown content,
// in order of preference.
var contentDirCandidates = []string{"content", "docs", "pages", "src/pages"}

// detectContentDir returns the first existing candidate content directory.
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docsite! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	siteName, err := (&promptui.Prompt{Label: "Site name", Default: cfg.SiteName}).Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = siteName

	contentDir, err := (&promptui.Prompt{Label: "Markdown content directory", Default: detectContentDir()}).Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	outputDir, err := (&promptui.Prompt{Label: "Output directory for the static site", Default: cfg.OutputDir}).Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	homePath, err := (&promptui.Prompt{
		Label:   "Page to redirect / to",
		Default: cfg.HomePath,
		Validate: func(s string) error {
			if !strings.HasPrefix(s, "/") {
				return fmt.Errorf("must start with /")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("home path: %w", err)
	}
	cfg.HomePath = homePath

	navPrompt := promptui.Select{
		Label: "Navigation",
		Items: []string{
			"built-in: the navigation shipped with docsite",
			"file: load navigation.yml from the project",
		},
	}
	navIdx, _, err := navPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("navigation selection: %w", err)
	}
	if navIdx == 1 {
		cfg.NavigationFile = "navigation.yml"
	}

	excludeStr, err := (&promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(append([]string(nil), DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
