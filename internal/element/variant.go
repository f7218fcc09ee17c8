package element

import "encoding/json"

// StringOrFalse is a template value that is either a non-empty string or
// the literal false. Templates test it for truthiness.
type StringOrFalse struct {
	Value string
	Set   bool
}

// Some returns a set value.
func Some(v string) StringOrFalse {
	return StringOrFalse{Value: v, Set: true}
}

// MarshalJSON renders false when unset.
func (s StringOrFalse) MarshalJSON() ([]byte, error) {
	if !s.Set {
		return []byte("false"), nil
	}
	return json.Marshal(s.Value)
}

// Any returns the template value: the string or false.
func (s StringOrFalse) Any() interface{} {
	if !s.Set {
		return false
	}
	return s.Value
}

// familyRow is one row of the static family lookup table.
type familyRow struct {
	baseClassImport string
	readmeTemplate  string
	demoTemplate    string
	gulpFactory     string
	rollupFactory   string
	packageScope    string
	sassRoot        string
	includeBundles  bool
}

// families is the two-way lookup table keyed by family type. Every family
// dependent path comes from here and nowhere else.
var families = map[FamilyType]familyRow{
	FamilyPFElement: {
		baseClassImport: "../../pfelement/dist/pfelement.js",
		readmeTemplate:  "README.pfelement.md",
		demoTemplate:    "demo/index.pfelement.html",
		gulpFactory:     "../../scripts/gulpfile.factory.js",
		rollupFactory:   "../../scripts/rollup.config.factory.js",
		packageScope:    "@patternfly",
		sassRoot:        "../../",
		includeBundles:  false,
	},
	FamilyStandalone: {
		baseClassImport: "../../@patternfly/pfelement/dist/pfelement.js",
		readmeTemplate:  "README.standalone.md",
		demoTemplate:    "demo/index.standalone.html",
		gulpFactory:     "@patternfly/pfelement/scripts/gulpfile.factory.js",
		rollupFactory:   "@patternfly/pfelement/scripts/rollup.config.factory.js",
		packageScope:    "",
		sassRoot:        "../node_modules/@patternfly/",
		includeBundles:  true,
	},
}

// VariantConfig holds every path and value that depends on the family
// type and the style choice.
type VariantConfig struct {
	FamilyType  FamilyType `json:"familyType"`
	IsPFElement bool       `json:"isPfelement"`
	// BaseClassImport is the import path of the PFElement base class,
	// relative to the generated src/ file.
	BaseClassImport string `json:"baseClassImport"`
	// ReadmeTemplate and DemoTemplate are catalog keys.
	ReadmeTemplate string `json:"readmeTemplate"`
	DemoTemplate   string `json:"demoTemplate"`
	GulpFactory    string `json:"gulpFactory"`
	RollupFactory  string `json:"rollupFactory"`
	// PackageScope is prepended to the id to form the npm package name.
	PackageScope string `json:"packageScope"`
	// IncludeBundles enables the dotfile and auxiliary script bundles.
	IncludeBundles      bool          `json:"includeBundles"`
	UseSass             bool          `json:"useSass"`
	SassLibraryPkg      StringOrFalse `json:"sassLibraryPkg"`
	SassLibraryLocation StringOrFalse `json:"sassLibraryLocation"`
}

// PackageName returns the npm package name for the element id.
func (v VariantConfig) PackageName(id string) string {
	if v.PackageScope == "" {
		return id
	}
	return v.PackageScope + "/" + id
}

// ResolveVariant looks up the variant configuration. It is a pure function
// of its arguments. An unknown family type yields a zero VariantConfig,
// which Build rejects as an invariant violation.
func ResolveVariant(familyType FamilyType, useSass bool, library *SassLibrary) VariantConfig {
	row, ok := families[familyType]
	if !ok {
		return VariantConfig{}
	}

	cfg := VariantConfig{
		FamilyType:      familyType,
		IsPFElement:     familyType == FamilyPFElement,
		BaseClassImport: row.baseClassImport,
		ReadmeTemplate:  row.readmeTemplate,
		DemoTemplate:    row.demoTemplate,
		GulpFactory:     row.gulpFactory,
		RollupFactory:   row.rollupFactory,
		PackageScope:    row.packageScope,
		IncludeBundles:  row.includeBundles,
		UseSass:         useSass,
	}

	// A nil library with useSass means "I'll provide my own": Sass output
	// files are still generated, without a shared library import.
	if useSass && library != nil {
		if library.Pkg != "" {
			cfg.SassLibraryPkg = Some(library.Pkg)
		}
		if library.Path != "" {
			cfg.SassLibraryLocation = Some(row.sassRoot + library.Path)
		}
	}

	return cfg
}
