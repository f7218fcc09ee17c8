package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
)

// Loader defines the interface for loading configuration.
type Loader interface {
	// Load loads configuration from path. An empty path searches the
	// base directory and its parent for project.config.{json,yaml,yml}
	// and falls back to defaults when none exists. Environment variables
	// override file values.
	Load(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements Loader with viper.
type FileLoader struct {
	baseDir string
}

// NewLoader creates a FileLoader searching baseDir and its parent.
func NewLoader(baseDir string) Loader {
	return &FileLoader{baseDir: baseDir}
}

// Load loads configuration from path, or from the discovered project file.
func (l *FileLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = FindConfigFile(l.baseDir)
		debug.Debug("[config] Discovered configuration file: %q", path)
	} else {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "cannot resolve path", err)
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
			}
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "cannot access configuration file", err)
		}
		path = expanded
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
		}
	}

	cfg := fromViper(v)
	cfg.File = path
	debug.DebugJSON("[config] Loaded configuration", cfg)
	return cfg, nil
}

// fromViper merges the values present in v over the defaults.
func fromViper(v *viper.Viper) *Config {
	cfg := DefaultConfig()

	if v.IsSet("author") {
		cfg.Author = strings.TrimSpace(v.GetString("author"))
	}
	if v.IsSet("useSass") {
		useSass := v.GetBool("useSass")
		cfg.UseSass = &useSass
	}
	if v.IsSet("sassLibrary.pkg") || v.IsSet("sassLibrary.path") {
		cfg.SassLibrary = &element.SassLibrary{
			Pkg:  v.GetString("sassLibrary.pkg"),
			Path: v.GetString("sassLibrary.path"),
		}
	}
	if v.IsSet("prefixTokens") {
		cfg.PrefixTokens = tokenList(v.GetStringSlice("prefixTokens"))
	}
	if v.IsSet("install.command") {
		cfg.Install.Command = v.GetString("install.command")
	}
	if v.IsSet("install.build") {
		cfg.Install.Build = v.GetString("install.build")
	}
	if v.IsSet("install.skip") {
		cfg.Install.Skip = v.GetBool("install.skip")
	}
	return cfg
}

// tokenList accepts both a list and a single comma separated value.
func tokenList(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, element.SplitList(item)...)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return Validate(config)
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			path = filepath.Join(homeDir, path[2:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}
