// Package planner turns the template catalog and a property model into an
// ordered list of file actions, and checks them before anything is written.
package planner

import (
	"fmt"

	"github.com/tacogips/pfegen/internal/debug"
	"github.com/tacogips/pfegen/internal/element"
	"github.com/tacogips/pfegen/internal/template/catalog"
	"github.com/tacogips/pfegen/internal/template/source"
)

// Action is one catalog entry resolved against a model and a source.
type Action struct {
	// TemplateKey is the source key of the template.
	TemplateKey string
	// Exists reports whether the source holds the template.
	Exists bool
	// Mode is render or copy.
	Mode catalog.Mode
	// Destination is a slash separated path relative to the base directory.
	Destination string
	// Applies reports whether the entry applies under the variant.
	Applies bool
	// Group is the exclusive group of the entry, if any.
	Group string
}

// Planned reports whether the action will be performed.
func (a Action) Planned() bool {
	return a.Exists && a.Applies
}

// Plan is the ordered list of actions for one generation run.
type Plan struct {
	// Root is the output directory relative to the base directory.
	Root string
	// Actions holds every catalog entry in catalog order.
	Actions []Action
}

// Planned returns the actions that will be performed, in order.
func (p *Plan) Planned() []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Planned() {
			out = append(out, a)
		}
	}
	return out
}

// Missing returns the keys of applicable templates absent from the source.
func (p *Plan) Missing() []string {
	var out []string
	for _, a := range p.Actions {
		if a.Applies && !a.Exists {
			out = append(out, a.TemplateKey)
		}
	}
	return out
}

// Build walks the catalog in order and resolves each entry. A template
// missing from the source is not planned and is not an error.
func Build(model *element.PropertyModel, cat *catalog.Catalog, src source.Source) (*Plan, error) {
	if model == nil {
		return nil, newPlanError(PlanInvalidDestination, "property model is required", "", nil)
	}
	id := model.ElementName
	debug.Debug("[planner] Build: id=%s, family=%s, useSass=%v, entries=%d",
		id, model.Variant.FamilyType, model.Variant.UseSass, len(cat.Entries))

	plan := &Plan{
		Root:    id,
		Actions: make([]Action, 0, len(cat.Entries)),
	}

	groups := make(map[string]string)
	destinations := make(map[string]string)

	for _, entry := range cat.Entries {
		dest, err := Destination(id, entry.Dest)
		if err != nil {
			return nil, newPlanError(PlanInvalidDestination, "invalid destination", entry.Key, err)
		}

		action := Action{
			TemplateKey: entry.Key,
			Exists:      src.Exists(entry.Key),
			Mode:        entry.Mode,
			Destination: dest,
			Applies:     entry.When.Applies(model.Variant),
			Group:       entry.Group,
		}
		plan.Actions = append(plan.Actions, action)

		if !action.Planned() {
			if action.Applies {
				debug.Debug("[planner] Template %s not in source %s, skipping", entry.Key, src.Name())
			}
			continue
		}

		if action.Group != "" {
			if prev, ok := groups[action.Group]; ok {
				return nil, newPlanError(PlanConflict,
					fmt.Sprintf("group %q already planned by %s", action.Group, prev), entry.Key, nil)
			}
			groups[action.Group] = entry.Key
		}
		if prev, ok := destinations[dest]; ok {
			return nil, newPlanError(PlanConflict,
				fmt.Sprintf("destination %s already planned by %s", dest, prev), entry.Key, nil)
		}
		destinations[dest] = entry.Key
	}

	debug.Debug("[planner] Build complete: %d action(s), %d planned", len(plan.Actions), len(destinations))
	return plan, nil
}
