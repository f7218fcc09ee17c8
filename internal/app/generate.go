package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
	"github.com/tacogips/pfegen/internal/template/catalog"
	"github.com/tacogips/pfegen/internal/template/generator"
	"github.com/tacogips/pfegen/internal/template/parser"
	"github.com/tacogips/pfegen/internal/template/planner"
	"github.com/tacogips/pfegen/internal/template/source"
)

// GenerateOptions contains options for element generation.
type GenerateOptions struct {
	// Answers are the collected raw answers.
	Answers element.RawAnswers
	// BaseDir is the parent of the element directory and the base of the
	// sibling package probe.
	BaseDir string
	// TemplatesDir is an optional template directory. Empty uses the
	// built-in templates.
	TemplatesDir string
	// PrefixTokens are stripped from the element name to form labels.
	// Nil uses element.DefaultPrefixTokens.
	PrefixTokens []string
	// Force allows generating into a non-empty element directory and
	// overwriting its files.
	Force bool
	// DryRun renders everything without writing files.
	DryRun bool
	// GeneratorVersion is exposed to templates as generatorVersion.
	GeneratorVersion string
}

// GenerateResult contains the results of element generation.
type GenerateResult struct {
	// Model is the property model templates were rendered against.
	Model *element.PropertyModel
	// Plan is the materialization plan.
	Plan *planner.Plan
	// Root is the element directory.
	Root string
	// FilesCreated is the number of new files created.
	FilesCreated int
	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int
	// FilesSkipped is the number of existing files left untouched.
	FilesSkipped int
	// Files contains the paths of all files processed.
	Files []string
	// DryRunFiles contains rendered content in dry-run mode.
	DryRunFiles []generator.DryRunFile
	// Directories contains directories that would be created in dry-run mode.
	Directories []string
	// Missing lists applicable templates absent from the template source.
	Missing []string
	// Warnings contains non-fatal problems, such as unreadable sibling packages.
	Warnings []error
}

// Generate runs the whole generation pipeline: derive the property model,
// plan against the catalog, check every template, then write the files.
// Nothing is written when planning or checking fails. A failure while
// writing leaves the files written so far in place.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] Name", opts.Answers.Name)
	debug.DebugValue("[app] Family", opts.Answers.FamilyType)
	debug.DebugValue("[app] BaseDir", opts.BaseDir)
	debug.DebugValue("[app] TemplatesDir", opts.TemplatesDir)
	debug.DebugValue("[app] Force", opts.Force)
	debug.DebugValue("[app] DryRun", opts.DryRun)

	baseDir, err := absDir(opts.BaseDir)
	if err != nil {
		return nil, NewValidationError("failed to resolve base directory", err)
	}
	if err := ValidateBaseDir(baseDir); err != nil {
		return nil, NewValidationError("invalid base directory", err)
	}

	model, warnings, err := BuildModel(opts.Answers, baseDir, opts.PrefixTokens, opts.GeneratorVersion)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		debug.Debug("[app] Sibling probe warning: %v", w)
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, NewConfigurationError("failed to load template catalog", err)
	}

	src, err := source.NewSource(opts.TemplatesDir, "")
	if err != nil {
		return nil, NewConfigurationError("failed to open template source", err)
	}

	plan, err := planner.Build(model, cat, src)
	if err != nil {
		return nil, NewAppError(PlanFailed, "failed to plan generation", err)
	}
	debug.DebugValue("[app] Planned actions", len(plan.Planned()))

	if err := planner.Check(ctx, plan, src, model); err != nil {
		var pe *planner.PlanError
		if errors.As(err, &pe) && pe.Type == planner.PlanTemplateRender {
			return nil, NewTemplateRenderError("template check failed", err)
		}
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, NewAppError(PlanFailed, "template check failed", err)
	}

	root := filepath.Join(baseDir, plan.Root)
	if err := ensureOutputDir(root, opts.Force); err != nil {
		return nil, err
	}

	genOpts := generator.GenerateOptions{
		Plan:      plan,
		Source:    src,
		Variables: parser.NewMapVariables(model.Values()),
		BaseDir:   baseDir,
		Overwrite: opts.Force,
	}

	gen := generator.NewGenerator()
	var genResult *generator.GenerateResult
	if opts.DryRun {
		genResult, err = gen.DryRun(ctx, genOpts)
	} else {
		genResult, err = gen.Generate(ctx, genOpts)
	}

	result := &GenerateResult{
		Model:    model,
		Plan:     plan,
		Root:     root,
		Missing:  plan.Missing(),
		Warnings: warnings,
	}
	if genResult != nil {
		result.FilesCreated = genResult.FilesCreated
		result.FilesOverwritten = genResult.FilesOverwritten
		result.FilesSkipped = genResult.FilesSkipped
		result.Files = genResult.Files
		result.DryRunFiles = genResult.DryRunFiles
		result.Directories = genResult.Directories
	}

	if err != nil {
		var ge *generator.GeneratorError
		if errors.As(err, &ge) && ge.Type == generator.GeneratorRenderFailed {
			return result, NewTemplateRenderError("failed to render template", err)
		}
		return result, NewGenerationError("failed to generate element", err)
	}

	debug.Debug("[app] Generate workflow completed: created=%d, overwritten=%d",
		result.FilesCreated, result.FilesOverwritten)
	return result, nil
}

// BuildModel derives the property model from raw answers: normalize the
// name, resolve the variant, probe sibling versions under baseDir, and
// merge. Probe failures are returned as warnings.
func BuildModel(answers element.RawAnswers, baseDir string, prefixTokens []string, generatorVersion string) (*element.PropertyModel, []error, error) {
	if prefixTokens == nil {
		prefixTokens = element.DefaultPrefixTokens
	}

	if _, err := element.ParseTemplateType(string(answers.TemplateType)); err != nil {
		return nil, nil, NewValidationError("invalid answers", err)
	}
	if _, err := element.ParseFamilyType(string(answers.FamilyType)); err != nil {
		return nil, nil, NewValidationError("invalid answers", err)
	}

	ids, err := element.Normalize(answers.Name, prefixTokens)
	if err != nil {
		return nil, nil, NewValidationError("invalid answers", err)
	}
	debug.DebugJSON("[app] Identifiers", ids)

	variant := element.ResolveVariant(answers.FamilyType, answers.UseSass, answers.SassLibrary)
	debug.DebugJSON("[app] Variant", variant)

	versions, warnings := element.ProbeVersions(baseDir, generatorVersion)
	debug.DebugJSON("[app] Versions", versions)

	model, err := element.Build(answers, ids, variant, versions)
	if err != nil {
		return nil, warnings, NewAppError(ModelBuildFailed, "failed to build property model", err)
	}
	return model, warnings, nil
}
