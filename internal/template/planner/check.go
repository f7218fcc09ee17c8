package planner

import (
	"context"
	"errors"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
	"github.com/tacogips/pfegen/internal/template/catalog"
	"github.com/tacogips/pfegen/internal/template/parser"
	"github.com/tacogips/pfegen/internal/template/source"
)

// Check verifies every planned render action before anything is written:
// the template must parse, reference only keys of the model, and every
// dotted path must resolve against the model values. The first failure is
// returned as a PlanTemplateRender error naming the template.
func Check(ctx context.Context, plan *Plan, src source.Source, model *element.PropertyModel) error {
	values := model.Values()
	known := make([]string, 0, len(values))
	for key := range values {
		known = append(known, key)
	}
	vars := parser.NewMapVariables(values)

	p := parser.NewParser()
	checked := 0
	for _, action := range plan.Planned() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if action.Mode != catalog.ModeRender {
			continue
		}

		content, err := src.Read(action.TemplateKey)
		if err != nil {
			return newPlanError(PlanSourceFailed, "cannot read template", action.TemplateKey, err)
		}

		err = p.CheckKeys(content, known)
		if err == nil {
			err = p.CheckPaths(content, vars)
		}
		if err != nil {
			var pe *parser.ParseError
			if errors.As(err, &pe) && pe.File == "" {
				pe.File = action.TemplateKey
			}
			return newPlanError(PlanTemplateRender, "template cannot be rendered", action.TemplateKey, err)
		}
		checked++
	}

	debug.Debug("[planner] Check: %d render template(s) verified", checked)
	return nil
}
