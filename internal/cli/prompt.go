package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tacogips/pfegen/internal/config"
	"github.com/tacogips/pfegen/internal/element"
)

// Sass library choices offered by the prompt.
const (
	sassLibraryDefault = "pfe-sass"
	sassLibraryOwn     = "No thanks. I'll provide my own."
)

// Prompter asks single questions. A validate function that returns an
// error makes the question repeat.
type Prompter interface {
	Select(message string, options []string, defaultOption string) (string, error)
	Input(message, defaultValue string, validate func(string) error) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// surveyPrompter asks questions on the terminal.
type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string, defaultOption string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultOption,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (surveyPrompter) Input(message, defaultValue string, validate func(string) error) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}

	opts := []survey.AskOpt{}
	if validate != nil {
		opts = append(opts, survey.WithValidator(stringValidator(validate)))
	}
	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		return "", err
	}
	return result, nil
}

func (surveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// stringValidator adapts a string check to a survey validator.
func stringValidator(fn func(string) error) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		return fn(str)
	}
}

// PromptForAnswers asks the element questions. Author, useSass and the
// Sass library are only asked when cfg does not supply them.
func PromptForAnswers(p Prompter, cfg *config.Config, family element.FamilyType) (element.RawAnswers, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	answers := element.RawAnswers{FamilyType: family}

	types := make([]string, len(element.TemplateTypes))
	for i, t := range element.TemplateTypes {
		types[i] = string(t)
	}
	templateType, err := p.Select("What type of element would you like to create?", types, string(element.TemplateComponent))
	if err != nil {
		return answers, fmt.Errorf("failed to prompt for template type: %w", err)
	}
	if answers.TemplateType, err = element.ParseTemplateType(templateType); err != nil {
		return answers, err
	}

	name, err := p.Input("Element name (i.e. pfe-cta)", "", element.ValidateName)
	if err != nil {
		return answers, fmt.Errorf("failed to prompt for name: %w", err)
	}
	answers.Name = element.KebabName(name)

	answers.Author = cfg.Author
	if answers.Author == "" {
		if answers.Author, err = p.Input("Author name", "", nil); err != nil {
			return answers, fmt.Errorf("failed to prompt for author: %w", err)
		}
	}

	if cfg.UseSass != nil {
		answers.UseSass = *cfg.UseSass
	} else if answers.UseSass, err = p.Confirm("Do you want to use Sass with this element?", true); err != nil {
		return answers, fmt.Errorf("failed to prompt for sass: %w", err)
	}

	if answers.UseSass {
		if answers.SassLibrary, err = promptSassLibrary(p, cfg); err != nil {
			return answers, err
		}
	}

	if answers.Description, err = p.Input("Describe the purpose of this element", "", nil); err != nil {
		return answers, fmt.Errorf("failed to prompt for description: %w", err)
	}

	attributes, err := p.Input("List any attributes for the element, separated by commas (i.e. color, priority)", "", nil)
	if err != nil {
		return answers, fmt.Errorf("failed to prompt for attributes: %w", err)
	}
	answers.Attributes = element.SplitList(attributes)

	slots, err := p.Input("List any slots for the element, separated by commas (i.e. header, footer)", "", nil)
	if err != nil {
		return answers, fmt.Errorf("failed to prompt for slots: %w", err)
	}
	answers.Slots = element.SplitList(slots)

	return answers, nil
}

// promptSassLibrary returns the configured library, or asks. Nil means
// the user provides their own Sass.
func promptSassLibrary(p Prompter, cfg *config.Config) (*element.SassLibrary, error) {
	if cfg.SassLibrary != nil {
		lib := *cfg.SassLibrary
		return &lib, nil
	}

	choice, err := p.Select("Would you like to use the pfe-sass library?",
		[]string{sassLibraryDefault, sassLibraryOwn}, sassLibraryDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to prompt for sass library: %w", err)
	}
	if choice == sassLibraryOwn {
		return nil, nil
	}
	lib := element.DefaultSassLibrary
	return &lib, nil
}
