package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tacogips/pfegen/internal/app"
	"github.com/tacogips/pfegen/internal/element"
)

func init() {
	globalQuiet = true
}

type fakeRunner struct {
	commands []string
}

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	r.commands = append(r.commands, strings.Join(append([]string{name}, args...), " "))
	return nil
}

func writeAnswers(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "answers.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateTypeFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    element.FamilyType
		wantErr bool
	}{
		{"", element.FamilyStandalone, false},
		{"standalone", element.FamilyStandalone, false},
		{"pfelement", element.FamilyPFElement, false},
		{"core", "", true},
		{"Standalone", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ValidateTypeFlag(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTypeFlag(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				var appErr *app.AppError
				if !errors.As(err, &appErr) || appErr.Type != app.ConfigurationFailed {
					t.Errorf("error = %v, want ConfigurationFailed", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ValidateTypeFlag(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestGenerate_AnswersFile(t *testing.T) {
	dir := t.TempDir()
	answers := writeAnswers(t, t.TempDir(), `
templateType: combo
name: pfe-tabs
author: Jane Doe
useSass: true
description: Tabs
attributes: [vertical]
slots: tab, panel
`)
	runner := &fakeRunner{}

	result, err := generate(context.Background(), generateRequest{
		Type:        "pfelement",
		AnswersFile: answers,
		Dir:         dir,
	}, nil, runner)
	if err != nil {
		t.Fatalf("generate() error = %v", err)
	}

	if result.Model.Variant.FamilyType != element.FamilyPFElement {
		t.Errorf("family = %q, want pfelement", result.Model.Variant.FamilyType)
	}
	if _, err := os.Stat(filepath.Join(dir, "pfe-tabs", "src", "pfe-tabs.scss")); err != nil {
		t.Errorf("scss not generated: %v", err)
	}
	want := []string{"npm install", "npm run build"}
	if strings.Join(runner.commands, ";") != strings.Join(want, ";") {
		t.Errorf("commands = %v, want %v", runner.commands, want)
	}
}

func TestGenerate_SkipInstallAndDryRun(t *testing.T) {
	answers := writeAnswers(t, t.TempDir(), "name: pfe-card\n")

	t.Run("skip install", func(t *testing.T) {
		dir := t.TempDir()
		runner := &fakeRunner{}
		if _, err := generate(context.Background(), generateRequest{AnswersFile: answers, Dir: dir, SkipInstall: true}, nil, runner); err != nil {
			t.Fatalf("generate() error = %v", err)
		}
		if len(runner.commands) != 0 {
			t.Errorf("commands ran: %v", runner.commands)
		}
		if _, err := os.Stat(filepath.Join(dir, "pfe-card", "package.json")); err != nil {
			t.Errorf("package.json not generated: %v", err)
		}
	})

	t.Run("dry run", func(t *testing.T) {
		dir := t.TempDir()
		runner := &fakeRunner{}
		result, err := generate(context.Background(), generateRequest{AnswersFile: answers, Dir: dir, DryRun: true}, nil, runner)
		if err != nil {
			t.Fatalf("generate() error = %v", err)
		}
		if len(result.DryRunFiles) == 0 {
			t.Error("no dry run files")
		}
		if len(runner.commands) != 0 {
			t.Errorf("commands ran in dry run: %v", runner.commands)
		}
		if _, err := os.Stat(filepath.Join(dir, "pfe-card")); !os.IsNotExist(err) {
			t.Error("dry run wrote the element directory")
		}
	})
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "project.config.yaml")
	if err := os.WriteFile(cfgPath, []byte("author: Config Author\ninstall:\n  skip: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	answers := writeAnswers(t, t.TempDir(), "name: pfe-card\n")
	runner := &fakeRunner{}

	result, err := generate(context.Background(), generateRequest{AnswersFile: answers, Dir: dir}, nil, runner)
	if err != nil {
		t.Fatalf("generate() error = %v", err)
	}
	if result.Model.Author != "Config Author" {
		t.Errorf("Author = %q, want the configured author", result.Model.Author)
	}
	if len(runner.commands) != 0 {
		t.Errorf("install not skipped: %v", runner.commands)
	}
}

func TestGenerate_Errors(t *testing.T) {
	answers := writeAnswers(t, t.TempDir(), "name: pfe-card\n")
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	tests := []struct {
		name    string
		req     generateRequest
		errType app.AppErrorType
	}{
		{"invalid type", generateRequest{Type: "core", AnswersFile: answers, Dir: t.TempDir()}, app.ConfigurationFailed},
		{"missing dir", generateRequest{AnswersFile: answers, Dir: filepath.Join(t.TempDir(), "nope")}, app.ConfigurationFailed},
		{"missing config", generateRequest{AnswersFile: answers, Dir: t.TempDir(), ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}, app.ConfigurationFailed},
		{"missing answers file", generateRequest{AnswersFile: filepath.Join(t.TempDir(), "nope.yaml"), Dir: t.TempDir()}, app.AnswersLoadFailed},
		{"no terminal", generateRequest{Dir: t.TempDir()}, app.ValidationFailed},
		{"missing templates", generateRequest{AnswersFile: answers, Dir: t.TempDir(), Templates: filepath.Join(t.TempDir(), "nope")}, app.ConfigurationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(context.Background(), tt.req, nil, &fakeRunner{})
			var appErr *app.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("generate() error = %v, want AppError", err)
			}
			if appErr.Type != tt.errType {
				t.Errorf("Type = %v, want %v (%v)", appErr.Type, tt.errType, err)
			}
		})
	}
}

func TestReportCheck(t *testing.T) {
	ok := &app.CheckResult{Source: "builtin", VariantsChecked: 4}
	if err := reportCheck(ok); err != nil {
		t.Errorf("reportCheck(ok) error = %v", err)
	}

	bad := &app.CheckResult{
		Source:          "local",
		VariantsChecked: 4,
		Missing:         []string{"LICENSE.txt"},
		Errors:          []app.CheckError{{Variant: "standalone+css", Key: "package.json", Line: 3, Message: "unknown placeholder: x"}},
	}
	err := reportCheck(bad)
	var appErr *app.AppError
	if !errors.As(err, &appErr) || appErr.Type != app.TemplateRenderFailed {
		t.Errorf("reportCheck(bad) error = %v, want TemplateRenderFailed", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() {
		versionCmd.SetOut(nil)
		versionJSON = false
	})

	versionJSON = true
	if err := runVersion(versionCmd, nil); err != nil {
		t.Fatalf("runVersion() error = %v", err)
	}

	var info VersionInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if info.Version == "" || info.GoVersion == "" {
		t.Errorf("VersionInfo = %+v", info)
	}
}
