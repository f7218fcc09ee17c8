package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tacogips/pfegen/internal/element"
)

func cardAnswers() element.RawAnswers {
	return element.RawAnswers{
		TemplateType: element.TemplateComponent,
		Name:         "pfe-card",
		Author:       "Jane Doe",
		Description:  "A card",
		Attributes:   []string{"color"},
		Slots:        []string{"header"},
		FamilyType:   element.FamilyStandalone,
	}
}

func TestGenerate_Standalone(t *testing.T) {
	baseDir := t.TempDir()

	result, err := Generate(context.Background(), GenerateOptions{
		Answers:          cardAnswers(),
		BaseDir:          baseDir,
		GeneratorVersion: "1.0.0",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Root != filepath.Join(baseDir, "pfe-card") {
		t.Errorf("Root = %q", result.Root)
	}
	if result.FilesCreated != len(result.Plan.Planned()) {
		t.Errorf("FilesCreated = %d, want %d", result.FilesCreated, len(result.Plan.Planned()))
	}
	if len(result.Missing) != 0 {
		t.Errorf("Missing = %v, want none", result.Missing)
	}

	for _, rel := range []string{"package.json", "src/pfe-card.js", "src/pfe-card.css", "README.md", ".babelrc"} {
		if _, err := os.Stat(filepath.Join(result.Root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s to be generated: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(result.Root, "src", "pfe-card.scss")); !os.IsNotExist(err) {
		t.Error("scss generated without useSass")
	}

	pkg, err := os.ReadFile(filepath.Join(result.Root, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pkg), `"name": "pfe-card"`) {
		t.Errorf("package.json missing name:\n%s", pkg)
	}
	if !strings.Contains(string(pkg), `"generatorVersion": "1.0.0"`) {
		t.Errorf("package.json missing generator version:\n%s", pkg)
	}
}

func TestGenerate_QuotedAnswersKeepPackageJSONValid(t *testing.T) {
	baseDir := t.TempDir()
	answers := cardAnswers()
	answers.Description = "A \"fancy\" <card>\nwith two lines & more"
	answers.Author = `Jane "JD" Doe`

	result, err := Generate(context.Background(), GenerateOptions{Answers: answers, BaseDir: baseDir})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(result.Root, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	var pkg struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		Contributors []struct {
			Name string `json:"name"`
		} `json:"contributors"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("package.json is not valid JSON: %v\n%s", err, data)
	}
	if pkg.Description != answers.Description {
		t.Errorf("description = %q, want %q", pkg.Description, answers.Description)
	}
	if len(pkg.Contributors) != 1 || pkg.Contributors[0].Name != answers.Author {
		t.Errorf("contributors = %+v", pkg.Contributors)
	}

	readme, err := os.ReadFile(filepath.Join(result.Root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "A &#34;fancy&#34; &lt;card&gt;") {
		t.Errorf("README does not escape the description:\n%s", readme)
	}
}

func TestGenerate_SiblingVersions(t *testing.T) {
	baseDir := t.TempDir()
	sibling := filepath.Join(baseDir, element.SiblingPFElement)
	if err := os.MkdirAll(sibling, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sibling, "package.json"), []byte(`{"version": "1.9.0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(baseDir, element.SiblingPFESass), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(baseDir, element.SiblingPFESass, "package.json"), []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Generate(context.Background(), GenerateOptions{Answers: cardAnswers(), BaseDir: baseDir})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Model.PFElementVersion != "1.9.0" {
		t.Errorf("PFElementVersion = %q, want 1.9.0", result.Model.PFElementVersion)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one for the unreadable pfe-sass package", result.Warnings)
	}

	pkg, _ := os.ReadFile(filepath.Join(result.Root, "package.json"))
	if !strings.Contains(string(pkg), `"version": "1.9.0"`) {
		t.Errorf("package.json does not carry the sibling version:\n%s", pkg)
	}
}

func TestGenerate_DryRun(t *testing.T) {
	baseDir := t.TempDir()
	answers := cardAnswers()
	answers.UseSass = true

	result, err := Generate(context.Background(), GenerateOptions{Answers: answers, BaseDir: baseDir, DryRun: true})
	if err != nil {
		t.Fatalf("DryRun error = %v", err)
	}
	if len(result.DryRunFiles) != len(result.Plan.Planned()) {
		t.Errorf("DryRunFiles = %d, want %d", len(result.DryRunFiles), len(result.Plan.Planned()))
	}
	found := false
	for _, f := range result.DryRunFiles {
		if strings.HasSuffix(f.Path, filepath.Join("src", "pfe-card.scss")) {
			found = true
		}
	}
	if !found {
		t.Error("dry run does not list the scss file")
	}
	if _, err := os.Stat(filepath.Join(baseDir, "pfe-card")); !os.IsNotExist(err) {
		t.Error("dry run created the element directory")
	}
}

func TestGenerate_OutputDirectory(t *testing.T) {
	baseDir := t.TempDir()
	root := filepath.Join(baseDir, "pfe-card")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("empty directory is accepted", func(t *testing.T) {
		if _, err := Generate(context.Background(), GenerateOptions{Answers: cardAnswers(), BaseDir: baseDir}); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	})

	t.Run("non-empty directory is rejected", func(t *testing.T) {
		_, err := Generate(context.Background(), GenerateOptions{Answers: cardAnswers(), BaseDir: baseDir})
		var appErr *AppError
		if !errors.As(err, &appErr) || appErr.Type != ValidationFailed {
			t.Fatalf("Generate() error = %v, want ValidationFailed", err)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		result, err := Generate(context.Background(), GenerateOptions{Answers: cardAnswers(), BaseDir: baseDir, Force: true})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if result.FilesOverwritten == 0 || result.FilesCreated != 0 {
			t.Errorf("created=%d overwritten=%d, want only overwrites", result.FilesCreated, result.FilesOverwritten)
		}
	})
}

func TestGenerate_TemplateRenderErrorWritesNothing(t *testing.T) {
	baseDir := t.TempDir()
	templates := t.TempDir()
	if err := os.WriteFile(filepath.Join(templates, "package.json"), []byte(`{"name": "<%= elementNam %>"}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(context.Background(), GenerateOptions{
		Answers:      cardAnswers(),
		BaseDir:      baseDir,
		TemplatesDir: templates,
	})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != TemplateRenderFailed {
		t.Fatalf("Generate() error = %v, want TemplateRenderFailed", err)
	}
	if !strings.Contains(err.Error(), "package.json") || !strings.Contains(err.Error(), "elementNam") {
		t.Errorf("error %q should name the template and the placeholder", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "pfe-card")); !os.IsNotExist(err) {
		t.Error("element directory created despite the render error")
	}
}

func TestGenerate_MissingTemplatesSkipped(t *testing.T) {
	baseDir := t.TempDir()
	templates := t.TempDir()
	if err := os.WriteFile(filepath.Join(templates, "package.json"), []byte(`{"name": "<%= packageName %>"}`), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Generate(context.Background(), GenerateOptions{
		Answers:      cardAnswers(),
		BaseDir:      baseDir,
		TemplatesDir: templates,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.FilesCreated != 1 {
		t.Errorf("FilesCreated = %d, want 1", result.FilesCreated)
	}
	if len(result.Missing) == 0 {
		t.Error("Missing should list the absent templates")
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	badName := cardAnswers()
	badName.Name = "card"
	badFamily := cardAnswers()
	badFamily.FamilyType = "core"

	tests := []struct {
		name    string
		opts    GenerateOptions
		errType AppErrorType
	}{
		{"single word name", GenerateOptions{Answers: badName, BaseDir: t.TempDir()}, ValidationFailed},
		{"unknown family", GenerateOptions{Answers: badFamily, BaseDir: t.TempDir()}, ValidationFailed},
		{"missing base dir", GenerateOptions{Answers: cardAnswers(), BaseDir: filepath.Join(t.TempDir(), "nope")}, ValidationFailed},
		{"missing templates dir", GenerateOptions{Answers: cardAnswers(), BaseDir: t.TempDir(), TemplatesDir: filepath.Join(t.TempDir(), "nope")}, ConfigurationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(context.Background(), tt.opts)
			var appErr *AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Generate() error = %v, want AppError", err)
			}
			if appErr.Type != tt.errType {
				t.Errorf("Type = %v, want %v", appErr.Type, tt.errType)
			}
		})
	}
}
