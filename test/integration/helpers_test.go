package integration

import (
	"os"
	"path/filepath"
	"testing"
)

// copyFixtureToTemp copies a fixture template directory to a temp directory
// and returns the path to the copied templates relative to tempDir.
func copyFixtureToTemp(t *testing.T, fixtureName, tempDir string) string {
	t.Helper()

	fixtureDir, err := filepath.Abs(filepath.Join("../fixtures/templates", fixtureName))
	if err != nil {
		t.Fatalf("failed to get fixture path: %v", err)
	}

	destDir := filepath.Join(tempDir, fixtureName)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatalf("failed to create destination directory: %v", err)
	}

	err = filepath.Walk(fixtureDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixtureDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, data, info.Mode())
	})
	if err != nil {
		t.Fatalf("failed to copy fixture: %v", err)
	}

	return "./" + fixtureName
}

// chdir changes the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

// readFile returns the content of a generated file.
func readFile(t *testing.T, path ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(path...))
	if err != nil {
		t.Fatalf("failed to read %s: %v", filepath.Join(path...), err)
	}
	return string(data)
}

// writeFile creates a file and its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
