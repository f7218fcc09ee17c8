package config

import (
	"fmt"
	"regexp"
	"strings"
)

var prefixTokenPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// Validate validates a configuration.
func Validate(config *Config) error {
	if config == nil {
		return NewConfigError(ConfigValidationFailed, "", "configuration cannot be nil")
	}

	for i, token := range config.PrefixTokens {
		if !prefixTokenPattern.MatchString(token) {
			return NewConfigErrorWithField(ConfigValidationFailed, config.File,
				fmt.Sprintf("prefixTokens[%d]", i),
				fmt.Sprintf("prefix token %q must be lowercase letters and digits", token))
		}
	}

	if config.SassLibrary != nil {
		if strings.TrimSpace(config.SassLibrary.Pkg) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, config.File,
				"sassLibrary.pkg", "package is required when a Sass library is configured")
		}
		if strings.Contains(config.SassLibrary.Path, "..") {
			return NewConfigErrorWithField(ConfigValidationFailed, config.File,
				"sassLibrary.path", "path cannot contain '..'")
		}
	}

	if !config.Install.Skip {
		if strings.TrimSpace(config.Install.Command) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, config.File,
				"install.command", "install command cannot be empty unless install.skip is set")
		}
	}

	return nil
}
