package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/tacogips/pfegen/internal/config"
	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
)

// FilePrefix marks an answer whose value is read from a file next to the
// answers file, e.g. description: "@file:description.md".
const FilePrefix = "@file:"

// answersFile is the on-disk answers format. JSON files are read as YAML.
type answersFile struct {
	TemplateType string            `yaml:"templateType"`
	Name         string            `yaml:"name"`
	Author       *string           `yaml:"author"`
	UseSass      *bool             `yaml:"useSass"`
	SassLibrary  sassLibraryAnswer `yaml:"sassLibrary"`
	Description  string            `yaml:"description"`
	Attributes   listAnswer        `yaml:"attributes"`
	Slots        listAnswer        `yaml:"slots"`
	FamilyType   string            `yaml:"familyType"`
}

// listAnswer accepts a YAML list or one comma separated string.
type listAnswer []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *listAnswer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = element.SplitList(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = element.SplitList(strings.Join(items, ","))
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a comma separated string", node.Line)
	}
}

// sassLibraryAnswer is either a mapping {pkg, path}, the name of the
// default library ("pfe-sass"), or "none" for "I'll provide my own".
type sassLibraryAnswer struct {
	set     bool
	library *element.SassLibrary
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *sassLibraryAnswer) UnmarshalYAML(node *yaml.Node) error {
	s.set = true
	switch node.Kind {
	case yaml.MappingNode:
		var lib element.SassLibrary
		if err := node.Decode(&lib); err != nil {
			return err
		}
		s.library = &lib
		return nil
	case yaml.ScalarNode:
		switch strings.ToLower(strings.TrimSpace(node.Value)) {
		case "pfe-sass", "default", "true":
			lib := element.DefaultSassLibrary
			s.library = &lib
		case "none", "own", "false":
			s.library = nil
		default:
			return fmt.Errorf("line %d: unknown sass library %q (expected pfe-sass, none or {pkg, path})", node.Line, node.Value)
		}
		return nil
	default:
		return fmt.Errorf("line %d: invalid sass library", node.Line)
	}
}

// LoadAnswersOptions configures LoadAnswers.
type LoadAnswersOptions struct {
	// Path is the answers file.
	Path string
	// Config supplies author, useSass and sassLibrary when the file omits them.
	Config *config.Config
	// FamilyType is used when the file omits familyType.
	FamilyType element.FamilyType
}

// LoadAnswers reads an answers file for non-interactive generation and
// fills omitted answers from the configuration.
func LoadAnswers(opts LoadAnswersOptions) (element.RawAnswers, error) {
	debug.Debug("[app] LoadAnswers: reading %s", opts.Path)

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return element.RawAnswers{}, NewAnswersLoadError("failed to read answers file "+opts.Path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file answersFile
	if err := dec.Decode(&file); err != nil {
		return element.RawAnswers{}, NewAnswersLoadError("invalid answers file "+opts.Path, err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	answers := element.RawAnswers{
		Name:       element.KebabName(file.Name),
		Attributes: file.Attributes,
		Slots:      file.Slots,
	}
	if answers.Attributes == nil {
		answers.Attributes = []string{}
	}
	if answers.Slots == nil {
		answers.Slots = []string{}
	}

	if err := element.ValidateName(file.Name); err != nil {
		return element.RawAnswers{}, NewValidationError("invalid answers file "+opts.Path, err)
	}

	templateType := file.TemplateType
	if templateType == "" {
		templateType = string(element.TemplateComponent)
	}
	answers.TemplateType, err = element.ParseTemplateType(templateType)
	if err != nil {
		return element.RawAnswers{}, NewValidationError("invalid answers file "+opts.Path, err)
	}

	answers.FamilyType = opts.FamilyType
	if file.FamilyType != "" {
		answers.FamilyType, err = element.ParseFamilyType(file.FamilyType)
		if err != nil {
			return element.RawAnswers{}, NewValidationError("invalid answers file "+opts.Path, err)
		}
	}
	if answers.FamilyType == "" {
		answers.FamilyType = element.FamilyStandalone
	}

	if file.Author != nil {
		answers.Author = strings.TrimSpace(*file.Author)
	} else {
		answers.Author = cfg.Author
	}

	switch {
	case file.UseSass != nil:
		answers.UseSass = *file.UseSass
	case cfg.UseSass != nil:
		answers.UseSass = *cfg.UseSass
	}

	if answers.UseSass {
		switch {
		case file.SassLibrary.set:
			answers.SassLibrary = file.SassLibrary.library
		case cfg.SassLibrary != nil:
			lib := *cfg.SassLibrary
			answers.SassLibrary = &lib
		default:
			lib := element.DefaultSassLibrary
			answers.SassLibrary = &lib
		}
	}

	answers.Description, err = resolveFileValue("description", file.Description, filepath.Dir(opts.Path))
	if err != nil {
		return element.RawAnswers{}, err
	}

	debug.DebugJSON("[app] Loaded answers", answers)
	return answers, nil
}

// resolveFileValue returns value, or the content of the file it names
// when it starts with FilePrefix. The file must be inside baseDir.
func resolveFileValue(name, value, baseDir string) (string, error) {
	if !strings.HasPrefix(value, FilePrefix) {
		return value, nil
	}

	filename := strings.TrimSpace(strings.TrimPrefix(value, FilePrefix))
	debug.Debug("[app] Answer '%s': resolving %s reference %q", name, FilePrefix, filename)

	if filename == "" {
		return "", NewAnswersLoadError(fmt.Sprintf("answer %s: %s prefix without filename", name, FilePrefix), nil)
	}
	if strings.Contains(filename, "..") {
		return "", NewAnswersLoadError(
			fmt.Sprintf("answer %s: %s path contains '..' which is not allowed", name, FilePrefix), nil)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", NewAnswersLoadError(fmt.Sprintf("answer %s: failed to resolve answers directory", name), err)
	}
	absFile, err := filepath.Abs(filepath.Join(baseDir, filename))
	if err != nil {
		return "", NewAnswersLoadError(fmt.Sprintf("answer %s: failed to resolve file path", name), err)
	}
	if rel, err := filepath.Rel(absBase, absFile); err != nil || strings.HasPrefix(rel, "..") {
		return "", NewAnswersLoadError(
			fmt.Sprintf("answer %s: %s path must be within the answers file directory", name, FilePrefix), nil)
	}

	content, err := os.ReadFile(absFile)
	if err != nil {
		return "", NewAnswersLoadError(fmt.Sprintf("answer %s: failed to read %s%s", name, FilePrefix, filename), err)
	}
	return strings.TrimSpace(string(content)), nil
}
