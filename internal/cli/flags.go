package cli

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tacogips/pfegen/internal/app"
	"github.com/tacogips/pfegen/internal/element"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagType        = "type"
	FlagAnswers     = "answers"
	FlagDir         = "dir"
	FlagTemplates   = "templates"
	FlagConfig      = "config"
	FlagForce       = "force"
	FlagDryRun      = "dry-run"
	FlagSkipInstall = "skip-install"
	FlagVerbose     = "verbose"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDebug       = "debug"

	// Flag descriptions
	DescType        = "Element family: standalone or pfelement"
	DescAnswers     = "YAML or JSON answers file (skips the prompts)"
	DescDir         = "Parent directory of the new element"
	DescTemplates   = "Template directory (default: built-in templates)"
	DescConfig      = "Path to config file"
	DescForce       = "Generate into a non-empty element directory, overwriting files"
	DescDryRun      = "Show files without writing them"
	DescSkipInstall = "Do not run the install and build commands"
	DescVerbose     = "Verbose output"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress output"
	DescDebug       = "Enable debug logging"
)

// ValidateTypeFlag parses the --type flag. An invalid value is a
// configuration error, reported before any prompt is shown.
func ValidateTypeFlag(value string) (element.FamilyType, error) {
	if strings.TrimSpace(value) == "" {
		return element.DefaultFamilyType, nil
	}
	family, err := element.ParseFamilyType(value)
	if err != nil {
		return "", app.NewConfigurationError("invalid --"+FlagType+" flag", err)
	}
	return family, nil
}

// ValidateDirFlag validates the --dir flag.
func ValidateDirFlag(dir string) error {
	if dir == "" {
		return nil
	}
	if err := app.ValidateBaseDir(dir); err != nil {
		return app.NewConfigurationError("invalid --"+FlagDir+" flag", err)
	}
	return nil
}

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
