package generator

import (
	"os"
	"path/filepath"

	"github.com/tacogips/pfegen/internal/debug"
)

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to path, creating parent directories.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct {
	preserveExecutable bool
}

// NewFileWriter creates a new FileWriter.
// If preserveExecutable is true, executable bits of the given mode are kept.
// Files are otherwise created 0644.
func NewFileWriter(preserveExecutable bool) Writer {
	return &FileWriter{
		preserveExecutable: preserveExecutable,
	}
}

// perm returns the permission bits for a file written from mode.
func (w *FileWriter) perm(mode os.FileMode) os.FileMode {
	perm := os.FileMode(0644)
	if w.preserveExecutable && mode&0111 != 0 {
		perm |= 0111
	}
	return perm
}

// WriteFile writes content to path. The content goes to a temporary file
// in the same directory which is then renamed over path.
func (w *FileWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	perm := w.perm(mode)
	debug.Debug("[generator] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), perm)

	dir := filepath.Dir(path)
	if err := w.CreateDir(dir); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create parent directory", path, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create temporary file", path, err)
	}
	tempFile := f.Name()

	_, err = f.Write(content)
	closeErr := f.Close()
	if err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to close file", path, closeErr)
	}

	if err := os.Chmod(tempFile, perm); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to set file mode", path, err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return newGeneratorError(GeneratorWriteFailed, "failed to rename temporary file", path, err)
	}

	debug.Debug("[generator] File written successfully: %s", path)
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
