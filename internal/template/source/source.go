// Package source provides read access to template files by catalog key.
//
// A key is a slash separated path relative to the template root, such as
// "src/element.js" or "demo/index.standalone.html".
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tacogips/pfegen/internal/debug"
)

// Source abstracts where template files come from (embedded, local directory).
type Source interface {
	// Name returns the source name (e.g., "builtin", "local").
	Name() string

	// Exists reports whether a template file exists for key.
	Exists(key string) bool

	// Read returns the raw template bytes for key.
	Read(key string) ([]byte, error)

	// Stat returns file info for key. Mode bits are used to preserve
	// the executable bit of copied files.
	Stat(key string) (fs.FileInfo, error)
}

// fsSource implements Source over an fs.FS rooted at the template root.
type fsSource struct {
	name string
	fsys fs.FS
}

// Name returns the source name.
func (s *fsSource) Name() string {
	return s.name
}

// Exists reports whether key names a regular file.
func (s *fsSource) Exists(key string) bool {
	info, err := s.Stat(key)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Read returns the content of key.
func (s *fsSource) Read(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, NewInvalidKeyError(s.name, key, err)
	}

	data, err := fs.ReadFile(s.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			debug.Debug("[%s] Template not found: %s", s.name, key)
			return nil, NewKeyNotFoundError(s.name, key, err)
		}
		return nil, NewReadError(s.name, key, err)
	}

	debug.Debug("[%s] Read %s (%d bytes)", s.name, key, len(data))
	return data, nil
}

// Stat returns file info for key.
func (s *fsSource) Stat(key string) (fs.FileInfo, error) {
	if err := ValidateKey(key); err != nil {
		return nil, NewInvalidKeyError(s.name, key, err)
	}

	info, err := fs.Stat(s.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewKeyNotFoundError(s.name, key, err)
		}
		return nil, NewReadError(s.name, key, err)
	}
	return info, nil
}

// ValidateKey validates a template key for security.
// Returns an error if:
//   - Key is empty
//   - Key is absolute or uses backslashes
//   - Key contains ".." or empty components
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("absolute keys are not allowed: %s", key)
	}

	if strings.Contains(key, `\`) {
		return fmt.Errorf("keys must use forward slashes: %s", key)
	}

	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return fmt.Errorf("key contains '..' which is not allowed for security: %s", key)
		}
	}

	if !fs.ValidPath(key) {
		return fmt.Errorf("key is not a clean relative path: %s", key)
	}

	return nil
}
