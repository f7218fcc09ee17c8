// Package element derives the property model of a new web component from
// the answers collected by the prompt layer.
//
// The derivation runs in three pure steps: Normalize turns the raw name into
// identifier forms, ResolveVariant looks up every family and style dependent
// path, and Build merges both with the list answers and probed sibling
// versions into a read-only PropertyModel.
package element

import (
	"fmt"
	"strings"
)

// TemplateType is the kind of element being scaffolded.
type TemplateType string

const (
	// TemplateComponent is a leaf component.
	TemplateComponent TemplateType = "component"
	// TemplateContainer wraps other components.
	TemplateContainer TemplateType = "container"
	// TemplateCombo is both a component and a container.
	TemplateCombo TemplateType = "combo"
)

// TemplateTypes lists the template types in prompt order.
var TemplateTypes = []TemplateType{TemplateComponent, TemplateContainer, TemplateCombo}

// ParseTemplateType validates a template type string.
func ParseTemplateType(s string) (TemplateType, error) {
	for _, t := range TemplateTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid template type %q (expected one of: component, container, combo)", s)
}

// FamilyType says whether the element lives inside the core component
// library or ships as an independent package extending it.
type FamilyType string

const (
	// FamilyPFElement places the element inside the core library.
	FamilyPFElement FamilyType = "pfelement"
	// FamilyStandalone builds an independent package.
	FamilyStandalone FamilyType = "standalone"
)

// DefaultFamilyType is used when the --type flag is not given.
const DefaultFamilyType = FamilyStandalone

// ParseFamilyType validates a family type string.
func ParseFamilyType(s string) (FamilyType, error) {
	switch FamilyType(s) {
	case FamilyPFElement, FamilyStandalone:
		return FamilyType(s), nil
	default:
		return "", fmt.Errorf("invalid type %q (expected standalone or pfelement)", s)
	}
}

// SassLibrary is a shared Sass dependency chosen by the user.
type SassLibrary struct {
	// Pkg is the npm package reference (e.g. "@patternfly/pfe-sass").
	Pkg string `json:"pkg" yaml:"pkg" mapstructure:"pkg"`
	// Path is the import path inside the package (e.g. "pfe-sass/pfe-sass").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// DefaultSassLibrary is the shared library offered by the prompt.
var DefaultSassLibrary = SassLibrary{
	Pkg:  "@patternfly/pfe-sass",
	Path: "pfe-sass/pfe-sass",
}

// RawAnswers holds the unvalidated input collected by the prompt layer
// or read from an answers file.
type RawAnswers struct {
	TemplateType TemplateType `json:"templateType" yaml:"templateType"`
	Name         string       `json:"name" yaml:"name"`
	Author       string       `json:"author,omitempty" yaml:"author,omitempty"`
	UseSass      bool         `json:"useSass" yaml:"useSass"`
	// SassLibrary is nil when the user provides their own Sass.
	SassLibrary *SassLibrary `json:"sassLibrary,omitempty" yaml:"sassLibrary,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Attributes  []string     `json:"attributes" yaml:"attributes"`
	Slots       []string     `json:"slots" yaml:"slots"`
	FamilyType  FamilyType   `json:"familyType" yaml:"familyType"`
}

// SplitList splits a comma separated answer, keeping order and duplicates.
// Items are trimmed and blanks dropped, so "" yields an empty list.
func SplitList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}
