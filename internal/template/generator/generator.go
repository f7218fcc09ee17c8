// Package generator performs a materialization plan on disk.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/template/parser"
	"github.com/tacogips/pfegen/internal/template/planner"
	"github.com/tacogips/pfegen/internal/template/source"
)

// Generator performs materialization plans.
type Generator interface {
	// Generate creates the element directory and writes every planned
	// action in order. The first failure stops generation; files already
	// written are left in place.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun simulates generation without writing files.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation.
type GenerateOptions struct {
	// Plan is the materialization plan to perform.
	Plan *planner.Plan

	// Source supplies template content.
	Source source.Source

	// Variables holds the values templates render against.
	Variables parser.Variables

	// BaseDir is the directory the plan root is created in.
	BaseDir string

	// Overwrite determines whether to overwrite existing files.
	// If false, existing files are skipped.
	Overwrite bool
}

// DryRunFile contains information about a file that would be created in dry-run mode.
type DryRunFile struct {
	// Path is the output file path.
	Path string
	// TemplateKey is the template the file comes from.
	TemplateKey string
	// Content is the processed file content.
	Content []byte
	// Exists indicates if the file already exists.
	Exists bool
	// WouldOverwrite indicates if the file would be overwritten (Exists && Overwrite option).
	WouldOverwrite bool
	// WouldSkip indicates if the file would be skipped (Exists && !Overwrite option).
	WouldSkip bool
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// Root is the element directory.
	Root string

	// FilesCreated is the number of new files created.
	FilesCreated int

	// FilesSkipped is the number of files skipped (already exist).
	FilesSkipped int

	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int

	// Files contains the paths of all files processed, in plan order.
	Files []string

	// DryRunFiles contains detailed information for dry-run mode (only populated in dry-run).
	DryRunFiles []DryRunFile

	// Directories contains directories that would be created (only populated in dry-run).
	Directories []string
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	processor Processor
	writer    Writer
}

// NewGenerator creates a new DefaultGenerator.
func NewGenerator() Generator {
	return &DefaultGenerator{
		processor: NewFileProcessor(parser.NewParser(), nil),
		writer:    NewFileWriter(true),
	}
}

// Generate performs the plan.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, false)
}

// DryRun simulates the plan without writing files.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, true)
}

// generate is the internal implementation for both Generate and DryRun.
func (g *DefaultGenerator) generate(ctx context.Context, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	actions := opts.Plan.Planned()
	root := filepath.Join(opts.BaseDir, filepath.FromSlash(opts.Plan.Root))
	debug.Debug("[generator] Starting generation: source=%s, root=%s, actions=%d, dryRun=%v, overwrite=%v",
		opts.Source.Name(), root, len(actions), dryRun, opts.Overwrite)

	result := &GenerateResult{
		Root:        root,
		Files:       []string{},
		DryRunFiles: []DryRunFile{},
		Directories: []string{},
	}
	dirsToCreate := map[string]bool{root: true}

	// The root exists before any entry is written.
	if !dryRun {
		debug.Debug("[generator] Creating output directory: %s", root)
		if err := g.writer.CreateDir(root); err != nil {
			return result, err
		}
	}

	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !strings.HasPrefix(action.Destination, opts.Plan.Root+"/") {
			return result, newGeneratorError(GeneratorPathError,
				fmt.Sprintf("destination is outside %s", opts.Plan.Root), action.Destination, nil)
		}
		outputPath := filepath.Join(opts.BaseDir, filepath.FromSlash(action.Destination))
		debug.Debug("[generator] Processing %s -> %s (mode=%s)", action.TemplateKey, outputPath, action.Mode)

		if dryRun {
			for dir := filepath.Dir(outputPath); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
				dirsToCreate[dir] = true
			}
		}

		result.Files = append(result.Files, outputPath)
		fileExists := g.writer.Exists(outputPath)

		if fileExists && !opts.Overwrite {
			debug.Debug("[generator] Skipping existing file: %s", outputPath)
			result.FilesSkipped++
			if dryRun {
				result.DryRunFiles = append(result.DryRunFiles, DryRunFile{
					Path:        outputPath,
					TemplateKey: action.TemplateKey,
					Exists:      true,
					WouldSkip:   true,
				})
			}
			continue
		}

		content, mode, err := readTemplate(opts.Source, action.TemplateKey)
		if err != nil {
			return result, err
		}

		processed, err := g.processor.Process(ctx, action, content, opts.Variables)
		if err != nil {
			return result, err
		}

		if dryRun {
			debug.Debug("[generator] Dry run: would write %s (size: %d bytes)", outputPath, len(processed))
			result.DryRunFiles = append(result.DryRunFiles, DryRunFile{
				Path:           outputPath,
				TemplateKey:    action.TemplateKey,
				Content:        processed,
				Exists:         fileExists,
				WouldOverwrite: fileExists,
			})
		} else if err := g.writer.WriteFile(outputPath, processed, mode); err != nil {
			return result, err
		}

		if fileExists {
			result.FilesOverwritten++
		} else {
			result.FilesCreated++
		}
	}

	if dryRun {
		for dir := range dirsToCreate {
			result.Directories = append(result.Directories, dir)
		}
		sortPaths(result.Directories)
	}

	debug.Debug("[generator] Generation complete: created=%d, overwritten=%d, skipped=%d",
		result.FilesCreated, result.FilesOverwritten, result.FilesSkipped)
	if dryRun {
		debug.Debug("[generator] Dry run mode: no files were actually written")
	}

	return result, nil
}

// readTemplate reads a template and its file mode from the source.
func readTemplate(src source.Source, key string) ([]byte, fs.FileMode, error) {
	content, err := src.Read(key)
	if err != nil {
		return nil, 0, newGeneratorError(GeneratorReadFailed, "failed to read template", key, err)
	}
	info, err := src.Stat(key)
	if err != nil {
		return nil, 0, newGeneratorError(GeneratorReadFailed, "failed to stat template", key, err)
	}
	return content, info.Mode(), nil
}

// sortPaths sorts paths so parent directories come before children.
func sortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		di, dj := pathDepth(paths[i]), pathDepth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}

// pathDepth returns the depth of a path (number of path separators).
func pathDepth(path string) int {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return 0
	}
	return strings.Count(clean, string(filepath.Separator))
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	if opts.Source == nil {
		return fmt.Errorf("template source cannot be nil")
	}

	if opts.Variables == nil {
		return fmt.Errorf("variables cannot be nil")
	}

	if opts.BaseDir == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	if opts.Plan.Root == "" {
		return fmt.Errorf("plan has no root directory")
	}

	return nil
}
