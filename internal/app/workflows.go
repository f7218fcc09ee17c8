package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/pfegen/internal/element"
)

// ValidateBaseDir validates that the base directory path is usable.
func ValidateBaseDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("base directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot access base directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base directory is not a directory: %s", path)
	}
	return nil
}

// ensureOutputDir checks that the element directory is absent or empty.
// A non-empty directory is only accepted with force.
func ensureOutputDir(path string, force bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewValidationError("cannot access output directory", err)
	}

	if !info.IsDir() {
		return NewValidationError(
			fmt.Sprintf("output path exists and is not a directory: %s", path), nil)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return NewValidationError("failed to read output directory", err)
	}
	if len(entries) > 0 && !force {
		return NewValidationError(
			fmt.Sprintf("output directory is not empty: %s (use --force to overwrite)", path), nil)
	}
	return nil
}

// absDir resolves dir against the working directory.
func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// variantName describes a variant in messages, e.g. "standalone+sass".
func variantName(v element.VariantConfig) string {
	style := "css"
	if v.UseSass {
		style = "sass"
	}
	return string(v.FamilyType) + "+" + style
}
