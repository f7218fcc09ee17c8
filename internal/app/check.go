package app

import (
	"context"
	"errors"
	"sort"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
	"github.com/tacogips/pfegen/internal/template/catalog"
	"github.com/tacogips/pfegen/internal/template/parser"
	"github.com/tacogips/pfegen/internal/template/planner"
	"github.com/tacogips/pfegen/internal/template/source"
)

// checkElementName is the element name used to build sample models.
const checkElementName = "pfe-check-element"

// CheckTemplatesOptions holds options for template validation.
type CheckTemplatesOptions struct {
	// TemplatesDir is the template directory. Empty checks the built-in templates.
	TemplatesDir string
}

// CheckResult holds the results of template validation.
type CheckResult struct {
	// Source is the name of the checked template source.
	Source string
	// VariantsChecked is the number of variants planned and checked.
	VariantsChecked int
	// Missing lists catalog templates absent from the source, sorted.
	Missing []string
	// Errors is the list of template errors found.
	Errors []CheckError
}

// CheckError represents a template that cannot be rendered.
type CheckError struct {
	// Variant names the family and style the error was found under.
	Variant string
	// Key is the template key.
	Key string
	// Line is the line number (0 if not applicable).
	Line int
	// Message is the error message.
	Message string
}

// CheckTemplates plans and checks a template source under every family
// and style variant. Render problems are collected, not returned as errors.
func CheckTemplates(ctx context.Context, opts CheckTemplatesOptions) (*CheckResult, error) {
	debug.DebugSection("[app] CheckTemplates start")
	debug.DebugValue("[app] TemplatesDir", opts.TemplatesDir)

	cat, err := catalog.Load()
	if err != nil {
		return nil, NewConfigurationError("failed to load template catalog", err)
	}
	src, err := source.NewSource(opts.TemplatesDir, "")
	if err != nil {
		return nil, NewConfigurationError("failed to open template source", err)
	}

	result := &CheckResult{Source: src.Name(), Errors: []CheckError{}}
	missing := make(map[string]bool)
	reported := make(map[string]bool)

	for _, family := range []element.FamilyType{element.FamilyStandalone, element.FamilyPFElement} {
		for _, useSass := range []bool{false, true} {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			model, err := sampleModel(family, useSass)
			if err != nil {
				return nil, err
			}
			plan, err := planner.Build(model, cat, src)
			if err != nil {
				return nil, NewAppError(PlanFailed, "failed to plan "+variantName(model.Variant), err)
			}
			result.VariantsChecked++
			for _, key := range plan.Missing() {
				missing[key] = true
			}

			// Check stops at the first failing template, so check each one alone.
			for _, action := range plan.Planned() {
				if reported[action.TemplateKey] {
					continue
				}
				single := &planner.Plan{Root: plan.Root, Actions: []planner.Action{action}}
				if err := planner.Check(ctx, single, src, model); err != nil {
					if ctx.Err() != nil {
						return nil, err
					}
					reported[action.TemplateKey] = true
					result.Errors = append(result.Errors, newCheckError(variantName(model.Variant), action.TemplateKey, err))
				}
			}
		}
	}

	for key := range missing {
		result.Missing = append(result.Missing, key)
	}
	sort.Strings(result.Missing)

	debug.Debug("[app] CheckTemplates complete: variants=%d, missing=%d, errors=%d",
		result.VariantsChecked, len(result.Missing), len(result.Errors))
	return result, nil
}

func sampleModel(family element.FamilyType, useSass bool) (*element.PropertyModel, error) {
	answers := element.RawAnswers{
		TemplateType: element.TemplateCombo,
		Name:         checkElementName,
		Author:       "pfegen",
		UseSass:      useSass,
		Description:  "Template check",
		Attributes:   []string{"color", "priority"},
		Slots:        []string{"header", "footer"},
		FamilyType:   family,
	}
	if useSass {
		lib := element.DefaultSassLibrary
		answers.SassLibrary = &lib
	}
	model, _, err := BuildModel(answers, "", nil, "0.0.0")
	return model, err
}

func newCheckError(variant, key string, err error) CheckError {
	ce := CheckError{Variant: variant, Key: key, Message: err.Error()}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		ce.Line = pe.Line
		ce.Message = pe.Message
	}
	return ce
}
