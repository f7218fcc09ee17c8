package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// helper is a function callable as _.name(args) from templates.
type helper struct {
	minArgs int
	maxArgs int
	fn      func(args []interface{}) (interface{}, error)
}

func (h helper) arity() string {
	if h.minArgs == h.maxArgs {
		if h.minArgs == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", h.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", h.minArgs, h.maxArgs)
}

var helpers = map[string]helper{
	"camelCase":  stringHelper(strcase.ToLowerCamel),
	"pascalCase": stringHelper(strcase.ToCamel),
	"kebabCase":  stringHelper(strcase.ToKebab),
	"snakeCase":  stringHelper(strcase.ToSnake),
	"upperFirst": stringHelper(upperFirst),
	"capitalize": stringHelper(capitalize),
	"upper":      stringHelper(upper),
	"lower":      stringHelper(lower),
	"join": {
		minArgs: 1,
		maxArgs: 2,
		fn: func(args []interface{}) (interface{}, error) {
			list, err := listArg("join", args[0])
			if err != nil {
				return nil, err
			}
			sep := ","
			if len(args) == 2 {
				sep = toString(args[1])
			}
			return strings.Join(list, sep), nil
		},
	},
	"quoteList": {
		minArgs: 1,
		maxArgs: 1,
		fn: func(args []interface{}) (interface{}, error) {
			list, err := listArg("quoteList", args[0])
			if err != nil {
				return nil, err
			}
			for i, s := range list {
				list[i] = jsonString(s)
			}
			return strings.Join(list, ", "), nil
		},
	},
	// json renders a value as a JSON literal, for use with <%- %>.
	"json": {
		minArgs: 1,
		maxArgs: 1,
		fn: func(args []interface{}) (interface{}, error) {
			s, err := jsonLiteral(args[0])
			if err != nil {
				return nil, newParseError(TypeMismatch, fmt.Sprintf("_.json cannot encode %T: %v", args[0], err))
			}
			return s, nil
		},
	},
}

// HelperNames returns the registered helper names, sorted.
func HelperNames() []string {
	names := make([]string, 0, len(helpers))
	for name := range helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringHelper(f func(string) string) helper {
	return helper{
		minArgs: 1,
		maxArgs: 1,
		fn: func(args []interface{}) (interface{}, error) {
			return f(toString(args[0])), nil
		},
	}
}

func listArg(name string, val interface{}) ([]string, error) {
	list, ok := toList(val)
	if !ok {
		return nil, newParseError(TypeMismatch,
			fmt.Sprintf("_.%s expects a list, got %T", name, val))
	}
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = toString(item)
	}
	return out, nil
}

// jsonLiteral encodes v without HTML escaping.
func jsonLiteral(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// jsonString quotes s as a JSON string literal. Strings always encode.
func jsonString(s string) string {
	out, _ := jsonLiteral(s)
	return out
}

// upperFirst upper-cases the first letter and keeps the rest.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper(s[:size]) + s[size:]
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper(s[:size]) + lower(s[size:])
}

// Casers are stateful, so each call gets its own.
func upper(s string) string { return cases.Upper(language.Und).String(s) }

func lower(s string) string { return cases.Lower(language.Und).String(s) }
