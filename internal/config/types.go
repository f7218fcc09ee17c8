package config

import "github.com/tacogips/pfegen/internal/element"

// Config holds project level defaults for element generation. Values
// set here are not asked for by the prompts.
type Config struct {
	// Author is the default author. Empty means ask.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	// UseSass is the default style choice. Nil means ask.
	UseSass *bool `json:"useSass,omitempty" yaml:"useSass,omitempty"`
	// SassLibrary is the shared Sass library. Nil means ask when UseSass.
	SassLibrary *element.SassLibrary `json:"sassLibrary,omitempty" yaml:"sassLibrary,omitempty"`
	// PrefixTokens are stripped from element names to form labels.
	PrefixTokens []string `json:"prefixTokens" yaml:"prefixTokens"`
	// Install configures post-generation commands.
	Install InstallConfig `json:"install" yaml:"install"`

	// File is the configuration file the values were read from, if any.
	File string `json:"-" yaml:"-"`
}

// InstallConfig represents post-generation settings.
type InstallConfig struct {
	// Command installs dependencies in the new element directory.
	Command string `json:"command" yaml:"command"`
	// Build builds the new element after installation.
	Build string `json:"build" yaml:"build"`
	// Skip disables both commands.
	Skip bool `json:"skip" yaml:"skip"`
}
