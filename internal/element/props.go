package element

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/property-model.schema.json
var schemaBytes []byte

const schemaResource = "property-model.schema.json"

var (
	compiledSchema *jsonschema.Schema
	schemaKeys     []string
	compileOnce    sync.Once
	compileErr     error
)

// PropertyModel is the single read-only record every template renders
// against. It is built once per run and never mutated afterwards.
type PropertyModel struct {
	TemplateType TemplateType `json:"templateType"`
	Author       string       `json:"author"`
	Description  string       `json:"description"`

	Name             string `json:"name"`
	ElementName      string `json:"elementName"`
	ElementClassName string `json:"elementClassName"`
	CamelCaseName    string `json:"camelCaseName"`
	ReadmeName       string `json:"readmeName"`
	LowerCaseName    string `json:"lowerCaseName"`
	PackageName      string `json:"packageName"`

	FamilyType          FamilyType    `json:"familyType"`
	IsPFElement         bool          `json:"isPfelement"`
	IncludeBundles      bool          `json:"includeBundles"`
	BaseClassImport     string        `json:"baseClassImport"`
	GulpFactory         string        `json:"gulpFactory"`
	RollupFactory       string        `json:"rollupFactory"`
	UseSass             bool          `json:"useSass"`
	SassLibraryPkg      StringOrFalse `json:"sassLibraryPkg"`
	SassLibraryLocation StringOrFalse `json:"sassLibraryLocation"`

	Attributes []string `json:"attributes"`
	Slots      []string `json:"slots"`

	GeneratorVersion string `json:"generatorVersion"`
	PFElementVersion string `json:"pfelementVersion"`
	PFESassVersion   string `json:"pfeSassVersion"`
	PFEStylesVersion string `json:"pfeStylesVersion"`

	// Identifiers and Variant keep the structured inputs for the planner.
	Identifiers Identifiers   `json:"-"`
	Variant     VariantConfig `json:"-"`

	values map[string]interface{}
}

// Build merges the derived inputs into a PropertyModel. It performs no I/O.
// A missing identifier or variant field is an InvariantError.
func Build(answers RawAnswers, ids Identifiers, variant VariantConfig, versions Versions) (*PropertyModel, error) {
	required := []struct {
		field string
		value string
	}{
		{"elementName", ids.ID},
		{"elementClassName", ids.ClassName},
		{"camelCaseName", ids.CamelName},
		{"familyType", string(variant.FamilyType)},
		{"baseClassImport", variant.BaseClassImport},
		{"readmeTemplate", variant.ReadmeTemplate},
		{"demoTemplate", variant.DemoTemplate},
		{"gulpFactory", variant.GulpFactory},
		{"rollupFactory", variant.RollupFactory},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, newInvariantError(r.field, "required field is empty", nil)
		}
	}
	if variant.UseSass != answers.UseSass {
		return nil, newInvariantError("useSass", "variant was resolved for a different style choice", nil)
	}

	model := &PropertyModel{
		TemplateType: answers.TemplateType,
		Author:       answers.Author,
		Description:  answers.Description,

		Name:             ids.ID,
		ElementName:      ids.ID,
		ElementClassName: ids.ClassName,
		CamelCaseName:    ids.CamelName,
		ReadmeName:       ids.ReadmeName,
		LowerCaseName:    ids.LowerCaseName,
		PackageName:      variant.PackageName(ids.ID),

		FamilyType:          variant.FamilyType,
		IsPFElement:         variant.IsPFElement,
		IncludeBundles:      variant.IncludeBundles,
		BaseClassImport:     variant.BaseClassImport,
		GulpFactory:         variant.GulpFactory,
		RollupFactory:       variant.RollupFactory,
		UseSass:             variant.UseSass,
		SassLibraryPkg:      variant.SassLibraryPkg,
		SassLibraryLocation: variant.SassLibraryLocation,

		Attributes: cloneList(answers.Attributes),
		Slots:      cloneList(answers.Slots),

		GeneratorVersion: versions.Generator,
		PFElementVersion: versions.PFElement,
		PFESassVersion:   versions.PFESass,
		PFEStylesVersion: versions.PFEStyles,

		Identifiers: ids,
		Variant:     variant,
	}

	if err := model.validate(); err != nil {
		return nil, err
	}
	values, err := model.toMap()
	if err != nil {
		return nil, newInvariantError("model", "cannot encode template values", err)
	}
	model.values = values
	return model, nil
}

// Values returns a copy of the template variables. Callers may modify the
// returned map without affecting the model.
func (m *PropertyModel) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(m.values))
	for k, v := range m.values {
		if list, ok := v.([]interface{}); ok {
			v = append([]interface{}(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Keys returns every legal placeholder key, sorted.
func Keys() ([]string, error) {
	if _, err := getSchema(); err != nil {
		return nil, err
	}
	return append([]string(nil), schemaKeys...), nil
}

func (m *PropertyModel) toMap() (map[string]interface{}, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// validate checks the model against the embedded JSON schema.
func (m *PropertyModel) validate() error {
	schema, err := getSchema()
	if err != nil {
		return newInvariantError("schema", "cannot load property model schema", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return newInvariantError("model", "cannot encode", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return newInvariantError("model", "cannot decode for validation", err)
	}

	if err := schema.Validate(inst); err != nil {
		field := "model"
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			if loc := leafLocation(ve); loc != "" {
				field = loc
			}
		}
		return newInvariantError(field, "schema validation failed", err)
	}
	return nil
}

// leafLocation returns the instance location of the first leaf cause.
func leafLocation(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return strings.Join(ve.InstanceLocation, "/")
}

// getSchema compiles the embedded schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaResource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
			return
		}

		var raw struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		if err := json.Unmarshal(schemaBytes, &raw); err != nil {
			compileErr = fmt.Errorf("reading schema properties: %w", err)
			return
		}
		for key := range raw.Properties {
			schemaKeys = append(schemaKeys, key)
		}
		sort.Strings(schemaKeys)
	})
	return compiledSchema, compileErr
}

func cloneList(items []string) []string {
	out := make([]string, 0, len(items))
	return append(out, items...)
}
