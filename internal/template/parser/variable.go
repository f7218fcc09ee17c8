package parser

import (
	"sort"
	"strconv"
	"strings"
)

// Variables holds template variable values.
type Variables interface {
	// Get retrieves a variable value by name.
	// Returns (value, true) if found, (nil, false) if not found.
	Get(name string) (interface{}, bool)
}

// MapVariables implements Variables using a map[string]interface{}.
type MapVariables struct {
	data map[string]interface{}
}

// NewMapVariables creates a new MapVariables from a map.
func NewMapVariables(data map[string]interface{}) *MapVariables {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &MapVariables{data: data}
}

// Get retrieves a variable value by name.
func (m *MapVariables) Get(name string) (interface{}, bool) {
	val, ok := m.data[name]
	return val, ok
}

// Keys returns the variable names, sorted.
func (m *MapVariables) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// scope binds a loop variable on top of a parent Variables.
type scope struct {
	parent Variables
	name   string
	value  interface{}
}

func (s *scope) Get(name string) (interface{}, bool) {
	if name == s.name {
		return s.value, true
	}
	return s.parent.Get(name)
}

// resolvePath looks up a dotted path. Nested maps are walked by key;
// "length" on a list or string yields its length.
func resolvePath(vars Variables, path []string) (interface{}, error) {
	val, ok := vars.Get(path[0])
	if !ok {
		return nil, newParseError(MissingVariable, "undefined variable: "+path[0])
	}

	for i, seg := range path[1:] {
		switch v := val.(type) {
		case map[string]interface{}:
			next, ok := v[seg]
			if !ok {
				return nil, newParseError(MissingVariable,
					"undefined property: "+strings.Join(path[:i+2], "."))
			}
			val = next
		default:
			if seg == "length" {
				if n, ok := lengthOf(val); ok {
					val = n
					continue
				}
			}
			return nil, newParseError(TypeMismatch,
				"cannot read property "+seg+" of "+strings.Join(path[:i+1], "."))
		}
	}
	return val, nil
}

func lengthOf(val interface{}) (int, bool) {
	switch v := val.(type) {
	case string:
		return len(v), true
	case []interface{}:
		return len(v), true
	case []string:
		return len(v), true
	default:
		return 0, false
	}
}

// toList converts a list value for iteration.
func toList(val interface{}) ([]interface{}, bool) {
	switch v := val.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// truthy reports whether a value selects the if branch.
func truthy(val interface{}) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		if n, ok := lengthOf(val); ok {
			return n > 0
		}
		return true
	}
}

// toString renders a value into template output.
func toString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		if list, ok := toList(val); ok {
			parts := make([]string, len(list))
			for i, item := range list {
				parts[i] = toString(item)
			}
			return strings.Join(parts, ",")
		}
		return ""
	}
}
