// Package catalog holds the fixed, ordered list of templates a generated
// element is made of, and when each one applies.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/tacogips/pfegen/internal/element"
	"github.com/tacogips/pfegen/internal/template/source"
)

//go:embed catalog.yaml
var catalogYAML []byte

// IDPlaceholder is replaced by the element id in destinations.
const IDPlaceholder = "{id}"

// Mode says how a template becomes an output file.
type Mode string

const (
	// ModeRender substitutes placeholders.
	ModeRender Mode = "render"
	// ModeCopy writes the bytes unchanged.
	ModeCopy Mode = "copy"
)

// When is the applicability predicate of an entry. Unset fields match
// every variant.
type When struct {
	Sass    *bool              `yaml:"sass,omitempty"`
	Bundles *bool              `yaml:"bundles,omitempty"`
	Family  element.FamilyType `yaml:"family,omitempty"`
}

// Applies reports whether the entry applies under the variant.
func (w When) Applies(v element.VariantConfig) bool {
	if w.Sass != nil && *w.Sass != v.UseSass {
		return false
	}
	if w.Bundles != nil && *w.Bundles != v.IncludeBundles {
		return false
	}
	if w.Family != "" && w.Family != v.FamilyType {
		return false
	}
	return true
}

// Entry is one template in the catalog.
type Entry struct {
	Key   string `yaml:"key"`
	Dest  string `yaml:"dest"`
	Mode  Mode   `yaml:"mode"`
	Group string `yaml:"group,omitempty"`
	When  When   `yaml:"when,omitempty"`
}

// Catalog is the ordered template list.
type Catalog struct {
	Entries []Entry `yaml:"entries"`
}

var (
	builtin     *Catalog
	builtinErr  error
	builtinOnce sync.Once
)

// Load returns the embedded catalog. It is parsed and validated once.
func Load() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(catalogYAML)
	})
	return builtin, builtinErr
}

// Parse decodes and validates a catalog definition.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, newCatalogError("", "cannot decode", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Keys returns the template keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Validate checks entry fields and exclusive groups. Every group must
// have exactly one applicable entry under every variant.
func (c *Catalog) Validate() error {
	if len(c.Entries) == 0 {
		return newCatalogError("", "no entries", nil)
	}

	seen := make(map[string]bool, len(c.Entries))
	groups := make(map[string][]Entry)
	var groupOrder []string

	for _, e := range c.Entries {
		if err := e.validate(); err != nil {
			return err
		}
		if seen[e.Key] {
			return newCatalogError(e.Key, "duplicate key", nil)
		}
		seen[e.Key] = true

		if e.Group != "" {
			if _, ok := groups[e.Group]; !ok {
				groupOrder = append(groupOrder, e.Group)
			}
			groups[e.Group] = append(groups[e.Group], e)
		}
	}

	for _, name := range groupOrder {
		members := groups[name]
		if len(members) < 2 {
			return newCatalogError(members[0].Key,
				fmt.Sprintf("exclusive group %q needs at least two entries", name), nil)
		}
		for _, v := range allVariants() {
			applicable := 0
			for _, e := range members {
				if e.When.Applies(v) {
					applicable++
				}
			}
			if applicable != 1 {
				return newCatalogError(members[0].Key,
					fmt.Sprintf("exclusive group %q has %d applicable entries for family=%s sass=%t",
						name, applicable, v.FamilyType, v.UseSass), nil)
			}
		}
	}
	return nil
}

func (e Entry) validate() error {
	if e.Key == "" {
		return newCatalogError("", "entry without key", nil)
	}
	if err := source.ValidateKey(e.Key); err != nil {
		return newCatalogError(e.Key, "invalid key", err)
	}
	if e.Dest == "" {
		return newCatalogError(e.Key, "empty destination", nil)
	}
	if rest := strings.ReplaceAll(e.Dest, IDPlaceholder, ""); strings.ContainsAny(rest, "{}") {
		return newCatalogError(e.Key, fmt.Sprintf("unknown placeholder in destination %q", e.Dest), nil)
	}
	switch e.Mode {
	case ModeRender, ModeCopy:
	default:
		return newCatalogError(e.Key, fmt.Sprintf("unknown mode %q", e.Mode), nil)
	}
	if e.When.Family != "" {
		if _, err := element.ParseFamilyType(string(e.When.Family)); err != nil {
			return newCatalogError(e.Key, "invalid family condition", err)
		}
	}
	return nil
}

// allVariants lists one variant per family and style choice.
func allVariants() []element.VariantConfig {
	var out []element.VariantConfig
	for _, f := range []element.FamilyType{element.FamilyPFElement, element.FamilyStandalone} {
		for _, sass := range []bool{false, true} {
			out = append(out, element.ResolveVariant(f, sass, nil))
		}
	}
	return out
}
