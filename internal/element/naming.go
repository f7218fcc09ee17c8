package element

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefixTokens are the family prefixes stripped from labels.
var DefaultPrefixTokens = []string{"pfe", "rh"}

// Identifiers are the canonical forms of an element name.
type Identifiers struct {
	// ID is the kebab-case element id (e.g. "pfe-card").
	ID string `json:"id"`
	// ClassName is PascalCase of ID (e.g. "PfeCard").
	ClassName string `json:"className"`
	// CamelName is camelCase of ID (e.g. "pfeCard").
	CamelName string `json:"camelName"`
	// Label is ID without prefix tokens, space joined (e.g. "card").
	Label string `json:"label"`
	// ReadmeName is Label with its first letter upper-cased.
	ReadmeName string `json:"readmeName"`
	// LowerCaseName is Label as-is.
	LowerCaseName string `json:"lowerCaseName"`
}

// separatorRun matches everything that cannot be part of a word.
var separatorRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

// deburr drops combining marks, so "kärte" becomes "karte".
func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// kebab converts free text to kebab-case with single hyphens only.
// Accents are removed first; other non-ASCII letters separate words.
func kebab(raw string) string {
	cleaned := strings.TrimSpace(separatorRun.ReplaceAllString(deburr(raw), " "))
	if cleaned == "" {
		return ""
	}
	return strings.Join(words(strcase.ToKebab(cleaned)), "-")
}

// words splits a kebab string into its non-empty segments.
func words(id string) []string {
	var parts []string
	for _, part := range strings.Split(id, "-") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// ValidateName checks the two-word-group rule used by the prompt.
func ValidateName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return newValidationError("name", raw,
			"I get it, naming is hard; but it must have a name. You can always change it later.")
	}
	if len(words(kebab(raw))) < 2 {
		return newValidationError("name", raw,
			"Elements should always have at least two parts. Check that you included the prefix for the name; for example, pfe-cta.")
	}
	return nil
}

// KebabName is the filter applied to the name answer.
func KebabName(raw string) string {
	return kebab(raw)
}

// Normalize derives every identifier form from a raw element name.
// Segments equal to one of prefixTokens are dropped from the label.
func Normalize(rawName string, prefixTokens []string) (Identifiers, error) {
	if err := ValidateName(rawName); err != nil {
		return Identifiers{}, err
	}

	id := kebab(rawName)
	label := stripPrefixes(id, prefixTokens)

	return Identifiers{
		ID:            id,
		ClassName:     strcase.ToCamel(id),
		CamelName:     strcase.ToLowerCamel(id),
		Label:         label,
		ReadmeName:    upperFirst(label),
		LowerCaseName: label,
	}, nil
}

// stripPrefixes removes prefix tokens from every segment position.
func stripPrefixes(id string, prefixTokens []string) string {
	drop := make(map[string]bool, len(prefixTokens))
	for _, token := range prefixTokens {
		drop[strings.ToLower(token)] = true
	}

	var kept []string
	for _, part := range words(id) {
		if !drop[part] {
			kept = append(kept, part)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// upperFirst upper-cases the first letter and leaves the rest untouched.
func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	first, rest, found := strings.Cut(s, " ")
	first = cases.Title(language.English, cases.NoLower).String(first)
	if !found {
		return first
	}
	return first + " " + rest
}
