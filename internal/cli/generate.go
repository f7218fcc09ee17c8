package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tacogips/pfegen/internal/app"
	"github.com/tacogips/pfegen/internal/build"
	"github.com/tacogips/pfegen/internal/config"
	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
)

// Generate command flags
var (
	genType        string
	genAnswers     string
	genDir         string
	genTemplates   string
	genConfig      string
	genForce       bool
	genDryRun      bool
	genSkipInstall bool
	genVerbose     bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&genType, FlagType, "t", string(element.DefaultFamilyType), DescType)
	flags.StringVarP(&genAnswers, FlagAnswers, "a", "", DescAnswers)
	flags.StringVar(&genDir, FlagDir, ".", DescDir)
	flags.StringVar(&genTemplates, FlagTemplates, "", DescTemplates)
	flags.StringVarP(&genConfig, FlagConfig, "c", "", DescConfig)
	flags.BoolVarP(&genForce, FlagForce, "f", false, DescForce)
	flags.BoolVarP(&genDryRun, FlagDryRun, "d", false, DescDryRun)
	flags.BoolVar(&genSkipInstall, FlagSkipInstall, false, DescSkipInstall)
	flags.BoolVarP(&genVerbose, FlagVerbose, "v", false, DescVerbose)
}

// generateRequest is the parsed form of the generate flags.
type generateRequest struct {
	Type        string
	AnswersFile string
	Dir         string
	Templates   string
	ConfigFile  string
	Force       bool
	DryRun      bool
	SkipInstall bool
	Verbose     bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := generateRequest{
		Type:        genType,
		AnswersFile: genAnswers,
		Dir:         genDir,
		Templates:   genTemplates,
		ConfigFile:  genConfig,
		Force:       genForce,
		DryRun:      genDryRun,
		SkipInstall: genSkipInstall,
		Verbose:     genVerbose,
	}
	_, err := generate(cmd.Context(), req, surveyPrompter{}, app.NewExecRunner())
	return err
}

// generate collects the answers, writes the element and runs the
// post-generate commands.
func generate(ctx context.Context, req generateRequest, prompter Prompter, runner app.Runner) (*app.GenerateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	family, err := ValidateTypeFlag(req.Type)
	if err != nil {
		return nil, err
	}
	if err := ValidateDirFlag(req.Dir); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(req.Dir, req.ConfigFile)
	if err != nil {
		return nil, err
	}
	if req.SkipInstall {
		cfg.Install.Skip = true
	}

	answers, err := collectAnswers(req, cfg, family, prompter)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		printInfo(fmt.Sprintf("[DRY RUN] Would generate %s (%s)", answers.Name, answers.FamilyType))
	} else {
		printProgress(fmt.Sprintf("Generating %s (%s)...", answers.Name, answers.FamilyType))
	}
	if req.Force {
		printWarning("Force mode enabled - existing files will be replaced")
	}

	result, err := app.Generate(ctx, app.GenerateOptions{
		Answers:          answers,
		BaseDir:          req.Dir,
		TemplatesDir:     req.Templates,
		PrefixTokens:     cfg.PrefixTokens,
		Force:            req.Force,
		DryRun:           req.DryRun,
		GeneratorVersion: build.Version(),
	})
	if result != nil {
		printGenerateResult(req, result)
	}
	if err != nil {
		printErrorMsg(fmt.Sprintf("Generation failed: %v", err))
		return result, err
	}

	if req.DryRun {
		return result, nil
	}

	printSuccess(fmt.Sprintf("Element generated at %s", result.Root))

	if cfg.Install.Skip {
		printInfo("Skipping install and build.")
		return result, nil
	}

	printProgress("Installing dependencies and building...")
	post, err := app.PostGenerate(ctx, app.PostGenerateOptions{
		Dir:     result.Root,
		Runner:  runner,
		Install: cfg.Install,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Post-generate step failed: %v", err))
		return result, err
	}
	for _, c := range post.Commands {
		printVerbose(req.Verbose, "Ran: "+c)
	}
	printSuccess("Element is ready")
	return result, nil
}

// loadConfig loads and validates the configuration for dir.
func loadConfig(dir, file string) (*config.Config, error) {
	loader := config.NewLoader(dir)
	cfg, err := loader.Load(file)
	if err != nil {
		return nil, app.NewConfigurationError("failed to load configuration", err)
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, app.NewConfigurationError("invalid configuration", err)
	}
	if cfg.File != "" {
		debug.Debug("[cli] Using configuration file %s", cfg.File)
	}
	return cfg, nil
}

// collectAnswers reads the answers file, or prompts when stdin is a terminal.
func collectAnswers(req generateRequest, cfg *config.Config, family element.FamilyType, prompter Prompter) (element.RawAnswers, error) {
	if req.AnswersFile != "" {
		return app.LoadAnswers(app.LoadAnswersOptions{
			Path:       req.AnswersFile,
			Config:     cfg,
			FamilyType: family,
		})
	}

	if !stdinIsTerminal() {
		return element.RawAnswers{}, app.NewValidationError(
			fmt.Sprintf("not running in a terminal: use --%s to provide the answers", FlagAnswers), nil)
	}

	answers, err := PromptForAnswers(prompter, cfg, family)
	if err != nil {
		return element.RawAnswers{}, app.NewValidationError("prompt aborted", err)
	}
	return answers, nil
}

func printGenerateResult(req generateRequest, result *app.GenerateResult) {
	for _, w := range result.Warnings {
		printWarning(w.Error())
	}
	for _, key := range result.Missing {
		printVerbose(req.Verbose, "Template not found, skipped: "+key)
	}

	if req.DryRun {
		printHeader("Files")
		for _, f := range result.DryRunFiles {
			rel := relPath(result.Root, f.Path)
			switch {
			case f.WouldOverwrite:
				printInfo(fmt.Sprintf("  ~ %s (overwrite)", rel))
			case f.WouldSkip:
				printInfo(fmt.Sprintf("  = %s (exists, skipped)", rel))
			default:
				printInfo(fmt.Sprintf("  + %s", rel))
			}
			printVerbose(req.Verbose, fmt.Sprintf("%s <- %s (%s)", rel, f.TemplateKey, formatBytes(int64(len(f.Content)))))
		}
		printInfo("")
		printInfo("No files written (dry run).")
		return
	}

	printInfo("")
	printInfo("Summary:")
	printInfo(fmt.Sprintf("  Created: %d files", result.FilesCreated))
	if result.FilesOverwritten > 0 {
		printInfo(fmt.Sprintf("  Overwritten: %d files", result.FilesOverwritten))
	}
	if result.FilesSkipped > 0 {
		printInfo(fmt.Sprintf("  Skipped: %d files (already exist)", result.FilesSkipped))
	}
	for _, f := range result.Files {
		printVerbose(req.Verbose, relPath(result.Root, f))
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
