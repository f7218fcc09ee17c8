package planner

import (
	"fmt"
	"path"
	"strings"

	"github.com/tacogips/pfegen/internal/template/catalog"
)

// Destination expands a catalog destination for the element id and
// prefixes it with the element directory. The result is a slash
// separated path relative to the base directory, e.g. "pfe-card/src/pfe-card.js".
// Returns an error if:
// - The id is not a single path component
// - The resulting path contains path traversal (..)
// - The resulting path is absolute
// - The resulting path has empty components
func Destination(id, dest string) (string, error) {
	if err := validateComponent(id, id); err != nil {
		return "", err
	}

	expanded := strings.ReplaceAll(dest, catalog.IDPlaceholder, id)
	if strings.HasPrefix(expanded, "/") {
		return "", fmt.Errorf("invalid destination: %q is an absolute path (original: %q)", expanded, dest)
	}

	for _, component := range strings.Split(expanded, "/") {
		if err := validateComponent(component, dest); err != nil {
			return "", err
		}
	}

	result := id + "/" + expanded
	if err := validatePath(result, dest); err != nil {
		return "", err
	}
	return result, nil
}

// validateComponent validates a single expanded path component.
func validateComponent(component, original string) error {
	if strings.TrimSpace(component) == "" {
		return fmt.Errorf("invalid destination: empty path component (original: %q)", original)
	}

	if component == "." || strings.Contains(component, "..") {
		return fmt.Errorf("invalid destination: %q contains path traversal (original: %q)", component, original)
	}

	if strings.Contains(component, "/") || strings.Contains(component, "\\") {
		return fmt.Errorf("invalid destination: %q contains a path separator (original: %q)", component, original)
	}

	return nil
}

// validatePath validates the complete destination.
func validatePath(p, original string) error {
	cleaned := path.Clean(p)
	if cleaned != p {
		return fmt.Errorf("invalid destination: %q is not a clean path (original: %q)", p, original)
	}
	if strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("invalid destination: %q attempts path traversal (original: %q)", p, original)
	}
	return nil
}
