package config

import (
	"os"
	"path/filepath"

	"github.com/tacogips/pfegen/internal/element"
)

// ConfigBaseName is the base name of project configuration files.
const ConfigBaseName = "project.config"

// EnvPrefix prefixes environment overrides, e.g. PFEGEN_AUTHOR.
const EnvPrefix = "PFEGEN"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PrefixTokens: append([]string(nil), element.DefaultPrefixTokens...),
		Install: InstallConfig{
			Command: "npm install",
			Build:   "npm run build",
		},
	}
}

// ConfigExtensions returns the recognized configuration file types in
// lookup order.
func ConfigExtensions() []string {
	return []string{"json", "yaml", "yml"}
}

// SearchDirs returns the directories searched for a project configuration
// file: baseDir and its parent.
func SearchDirs(baseDir string) []string {
	if baseDir == "" {
		baseDir = "."
	}
	return []string{baseDir, filepath.Join(baseDir, "..")}
}

// FindConfigFile returns the first project configuration file in the
// search directories, or "" if there is none.
func FindConfigFile(baseDir string) string {
	for _, dir := range SearchDirs(baseDir) {
		for _, ext := range ConfigExtensions() {
			path := filepath.Join(dir, ConfigBaseName+"."+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}
