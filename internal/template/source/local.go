package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/pfegen/internal/debug"
)

// LocalName is the name of directory backed sources.
const LocalName = "local"

// NewLocalSource opens a template directory. A relative dir is resolved
// against baseDir, or the working directory when baseDir is empty.
func NewLocalSource(dir, baseDir string) (Source, error) {
	debug.Debug("[local] Resolving template directory: %s", dir)

	if strings.TrimSpace(dir) == "" {
		return nil, NewSourceError(SourceInvalid, LocalName, dir, "template directory cannot be empty", nil)
	}

	absPath, err := resolvePath(dir, baseDir)
	if err != nil {
		debug.Debug("[local] Path resolution failed: %v", err)
		return nil, NewSourceError(SourceInvalid, LocalName, dir, "cannot resolve template directory", err)
	}
	debug.Debug("[local] Absolute path: %s", absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Debug("[local] Path does not exist: %s", absPath)
			return nil, NewNotFoundError(LocalName, dir, err)
		}
		return nil, NewSourceError(SourceInvalid, LocalName, dir, "cannot access template directory", err)
	}

	if !info.IsDir() {
		debug.Debug("[local] Path is not a directory")
		return nil, NewSourceError(SourceInvalid, LocalName, dir, "path must be a directory", nil)
	}

	debug.Debug("[local] Template source ready: %s", absPath)
	return &fsSource{
		name: LocalName,
		fsys: os.DirFS(absPath),
	}, nil
}

// resolvePath resolves a path to an absolute path.
// If the path is already absolute, it returns it directly.
// If the path is relative, it resolves it relative to baseDir or current working directory.
func resolvePath(path, baseDir string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}

	absPath, err := filepath.Abs(filepath.Join(baseDir, path))
	if err != nil {
		return "", err
	}
	return absPath, nil
}

// NewSource returns the local source for dir, or the built-in templates
// when dir is empty.
func NewSource(dir, baseDir string) (Source, error) {
	if dir == "" {
		debug.Debug("[source] Using built-in templates")
		return NewBuiltinSource(), nil
	}
	return NewLocalSource(dir, baseDir)
}
