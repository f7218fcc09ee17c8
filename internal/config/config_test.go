package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tacogips/pfegen/internal/element"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Author != "" {
		t.Errorf("Author = %q, want empty", cfg.Author)
	}
	if cfg.UseSass != nil {
		t.Errorf("UseSass = %v, want nil", *cfg.UseSass)
	}
	if cfg.SassLibrary != nil {
		t.Errorf("SassLibrary = %+v, want nil", cfg.SassLibrary)
	}
	if !reflect.DeepEqual(cfg.PrefixTokens, []string{"pfe", "rh"}) {
		t.Errorf("PrefixTokens = %v", cfg.PrefixTokens)
	}
	if cfg.Install.Command != "npm install" || cfg.Install.Build != "npm run build" {
		t.Errorf("Install = %+v", cfg.Install)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(DefaultConfig()) error = %v", err)
	}
}

func TestLoad_DiscoversParentFile(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "elements")
	writeFile(t, filepath.Join(root, "project.config.json"), `{
  "author": "Jane Doe",
  "useSass": false,
  "install": {"command": "yarn", "build": ""}
}`)
	if err := os.MkdirAll(base, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(base).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Author != "Jane Doe" {
		t.Errorf("Author = %q, want %q", cfg.Author, "Jane Doe")
	}
	if cfg.UseSass == nil || *cfg.UseSass {
		t.Errorf("UseSass = %v, want false", cfg.UseSass)
	}
	if cfg.Install.Command != "yarn" || cfg.Install.Build != "" {
		t.Errorf("Install = %+v", cfg.Install)
	}
	if filepath.Base(cfg.File) != "project.config.json" {
		t.Errorf("File = %q", cfg.File)
	}
}

func TestLoad_BaseDirWinsOverParent(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "elements")
	writeFile(t, filepath.Join(root, "project.config.json"), `{"author": "Parent"}`)
	writeFile(t, filepath.Join(base, "project.config.yaml"), "author: Local\n")

	cfg, err := NewLoader(base).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Author != "Local" {
		t.Errorf("Author = %q, want Local", cfg.Author)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b")
	if err := os.MkdirAll(base, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(base).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
sassLibrary:
  pkg: "@patternfly/pfe-sass"
  path: pfe-sass/pfe-sass
prefixTokens: "pfe, rh, cp"
install:
  skip: true
`)

	cfg, err := NewLoader("").Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SassLibrary == nil || cfg.SassLibrary.Pkg != "@patternfly/pfe-sass" || cfg.SassLibrary.Path != "pfe-sass/pfe-sass" {
		t.Errorf("SassLibrary = %+v", cfg.SassLibrary)
	}
	if !reflect.DeepEqual(cfg.PrefixTokens, []string{"pfe", "rh", "cp"}) {
		t.Errorf("PrefixTokens = %v", cfg.PrefixTokens)
	}
	if !cfg.Install.Skip {
		t.Error("Install.Skip = false, want true")
	}
	if cfg.UseSass != nil {
		t.Errorf("UseSass = %v, want nil", *cfg.UseSass)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "project.config.json")
	writeFile(t, invalid, `{"author": `)

	tests := []struct {
		name    string
		path    string
		errType ConfigErrorType
	}{
		{"missing explicit file", filepath.Join(dir, "nope.json"), ConfigNotFound},
		{"invalid syntax", invalid, ConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(dir).Load(tt.path)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Load() error = %v, want ConfigError", err)
			}
			if cfgErr.Type != tt.errType {
				t.Errorf("Type = %v, want %v", cfgErr.Type, tt.errType)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "project.config.json"), `{"author": "File", "useSass": false}`)

	t.Setenv("PFEGEN_AUTHOR", "Env Author")
	t.Setenv("PFEGEN_USESASS", "true")
	t.Setenv("PFEGEN_INSTALL_COMMAND", "pnpm install")

	cfg, err := NewLoader(dir).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Author != "Env Author" {
		t.Errorf("Author = %q, want Env Author", cfg.Author)
	}
	if cfg.UseSass == nil || !*cfg.UseSass {
		t.Errorf("UseSass = %v, want true", cfg.UseSass)
	}
	if cfg.Install.Command != "pnpm install" {
		t.Errorf("Install.Command = %q", cfg.Install.Command)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(*Config) {}, "", false},
		{"uppercase token", func(c *Config) { c.PrefixTokens = []string{"PFE"} }, "prefixTokens[0]", true},
		{"token with dash", func(c *Config) { c.PrefixTokens = []string{"pfe", "r-h"} }, "prefixTokens[1]", true},
		{"no tokens", func(c *Config) { c.PrefixTokens = nil }, "", false},
		{"library without pkg", func(c *Config) { c.SassLibrary = &element.SassLibrary{Path: "x"} }, "sassLibrary.pkg", true},
		{"library path traversal", func(c *Config) { c.SassLibrary = &element.SassLibrary{Pkg: "p", Path: "../x"} }, "sassLibrary.path", true},
		{"empty install command", func(c *Config) { c.Install.Command = " " }, "install.command", true},
		{"empty install command skipped", func(c *Config) { c.Install.Command = ""; c.Install.Skip = true }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := NewLoader("").Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Validate() error = %v, want field %s", err, tt.field)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) expected error")
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", false},
		{"absolute path", "/tmp/test", false},
		{"relative path", "./test", false},
		{"home directory", "~", false},
		{"home subdirectory", "~/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expanded, err := ExpandPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExpandPath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.path != "" && !filepath.IsAbs(expanded) {
				t.Errorf("ExpandPath(%q) = %q, want absolute path", tt.path, expanded)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	t.Run("error without file", func(t *testing.T) {
		err := NewConfigError(ConfigValidationFailed, "", "bad value")
		if err.Error() != "configuration error: bad value" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("error with field", func(t *testing.T) {
		err := NewConfigErrorWithField(ConfigValidationFailed, "project.config.json", "author", "bad")
		want := "configuration error in project.config.json [field: author]: bad"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewConfigErrorWithCause(ConfigInvalid, "x.json", "failed", cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is() should find the cause")
		}
	})
}
