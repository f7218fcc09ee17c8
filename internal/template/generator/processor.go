package generator

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/template/catalog"
	"github.com/tacogips/pfegen/internal/template/parser"
	"github.com/tacogips/pfegen/internal/template/planner"
)

// Processor turns template bytes into output bytes for one action.
type Processor interface {
	// Process renders or copies content according to the action mode.
	Process(ctx context.Context, action planner.Action, content []byte, vars parser.Variables) ([]byte, error)

	// ShouldRender reports whether content goes through the parser.
	// Copy actions and binary content are written unchanged.
	ShouldRender(action planner.Action, content []byte) bool
}

// FileProcessor implements Processor.
type FileProcessor struct {
	parser           parser.Parser
	binaryExtensions []string
}

// NewFileProcessor creates a new FileProcessor.
// binaryExtensions is a list of file extensions that are never rendered.
func NewFileProcessor(p parser.Parser, binaryExtensions []string) Processor {
	if binaryExtensions == nil {
		binaryExtensions = defaultBinaryExtensions()
	}
	return &FileProcessor{
		parser:           p,
		binaryExtensions: binaryExtensions,
	}
}

// defaultBinaryExtensions lists asset types a component template may carry.
func defaultBinaryExtensions() []string {
	return []string{
		".png", ".jpg", ".jpeg", ".gif", ".ico", ".webp",
		".ttf", ".otf", ".woff", ".woff2",
		".zip", ".gz",
	}
}

// ShouldRender reports whether content goes through the parser.
func (p *FileProcessor) ShouldRender(action planner.Action, content []byte) bool {
	if action.Mode != catalog.ModeRender {
		return false
	}

	ext := strings.ToLower(path.Ext(action.TemplateKey))
	for _, binaryExt := range p.binaryExtensions {
		if ext == binaryExt {
			return false
		}
	}

	return !isBinaryContent(content)
}

// isBinaryContent checks the first 512 bytes for null bytes.
func isBinaryContent(content []byte) bool {
	checkLen := len(content)
	if checkLen > 512 {
		checkLen = 512
	}
	return bytes.IndexByte(content[:checkLen], 0) != -1
}

// Process renders or copies content according to the action mode.
func (p *FileProcessor) Process(ctx context.Context, action planner.Action, content []byte, vars parser.Variables) ([]byte, error) {
	if !p.ShouldRender(action, content) {
		debug.Debug("[generator] Copying %s unchanged (mode=%s, size=%d bytes)",
			action.TemplateKey, action.Mode, len(content))
		return content, nil
	}

	rendered, err := p.parser.Parse(ctx, content, vars)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) && pe.File == "" {
			pe.File = action.TemplateKey
		}
		debug.Debug("[generator] Failed to render template: %s, error: %v", action.TemplateKey, err)
		return nil, newGeneratorError(GeneratorRenderFailed, "failed to render template", action.TemplateKey, err)
	}

	debug.Debug("[generator] Rendered %s (input: %d bytes, output: %d bytes)",
		action.TemplateKey, len(content), len(rendered))
	return rendered, nil
}
