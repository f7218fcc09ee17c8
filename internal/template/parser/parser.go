package parser

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"sort"

	"github.com/tacogips/pfegen/internal/debug"
)

// Parser renders templates written in the placeholder language:
//
//	<%= expr %>                     substitution, HTML-escaped
//	<%- expr %>                     substitution, unescaped
//	<%_ if [!]expr _%> ... <%_ else _%> ... <%_ end _%>
//	<%_ for name in expr _%> ... <%_ end _%>
//	<%# comment %>                  dropped from output
//	<%%                             literal <%
//
// An expression is a dotted variable path, a quoted string, or a helper
// call such as _.capitalize(name).
type Parser interface {
	// Parse renders a template against vars.
	Parse(ctx context.Context, input []byte, vars Variables) ([]byte, error)

	// Validate checks template syntax without rendering.
	Validate(ctx context.Context, input []byte) error

	// ExtractVariables returns the free variable names a template
	// references, sorted. Loop variables are not included.
	ExtractVariables(input []byte) ([]string, error)

	// CheckKeys verifies that every free variable is in known.
	// The first unknown reference is returned as a MissingVariable error.
	CheckKeys(input []byte, known []string) error

	// CheckPaths resolves every variable path against vars without
	// rendering, so member access on a scalar fails here instead of at
	// render time. Paths through a loop variable are resolved against the
	// first item; loops over empty lists are not descended into.
	CheckPaths(input []byte, vars Variables) error
}

// DefaultParser implements Parser interface.
type DefaultParser struct{}

// NewParser creates a new DefaultParser.
func NewParser() Parser {
	return &DefaultParser{}
}

// compile scans and builds the node tree.
func compile(input []byte) ([]node, error) {
	pieces, err := scan(string(input))
	if err != nil {
		return nil, err
	}
	return buildTree(pieces)
}

// Parse renders a template against vars.
func (p *DefaultParser) Parse(ctx context.Context, input []byte, vars Variables) ([]byte, error) {
	debug.Debug("[parser] Parse: starting with input size=%d bytes", len(input))

	nodes, err := compile(input)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := render(ctx, nodes, vars, &out); err != nil {
		return nil, err
	}

	debug.Debug("[parser] Parsing complete, output size=%d bytes", out.Len())
	return out.Bytes(), nil
}

// render writes nodes to out. The context is checked once per node list
// and per loop iteration.
func render(ctx context.Context, nodes []node, vars Variables, out *bytes.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			out.WriteString(n.text)

		case outputNode:
			val, err := n.expr.eval(vars)
			if err != nil {
				return atTag(err, n.tag)
			}
			s := toString(val)
			if !n.raw {
				s = html.EscapeString(s)
			}
			out.WriteString(s)

		case *ifNode:
			val, err := n.cond.eval(vars)
			if err != nil {
				return atTag(err, n.tag)
			}
			branch := n.els
			if truthy(val) != n.negate {
				branch = n.then
			}
			if err := render(ctx, branch, vars, out); err != nil {
				return err
			}

		case *forNode:
			val, err := n.list.eval(vars)
			if err != nil {
				return atTag(err, n.tag)
			}
			items, ok := toList(val)
			if !ok {
				return newParseErrorAt(TypeMismatch,
					fmt.Sprintf("cannot loop over %s (got %T)", n.list, val), n.tag)
			}
			for _, item := range items {
				inner := &scope{parent: vars, name: n.name, value: item}
				if err := render(ctx, n.body, inner, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Validate checks template syntax without rendering.
func (p *DefaultParser) Validate(ctx context.Context, input []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := compile(input)
	return err
}

// ExtractVariables returns the free variable names a template references.
func (p *DefaultParser) ExtractVariables(input []byte) ([]string, error) {
	nodes, err := compile(input)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	walkRefs(nodes, nil, func(name string, _ Tag) error {
		names[name] = struct{}{}
		return nil
	})

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)

	debug.Debug("[parser] ExtractVariables: found %d unique variable(s): %v", len(result), result)
	return result, nil
}

// CheckKeys verifies that every free variable is in known.
func (p *DefaultParser) CheckKeys(input []byte, known []string) error {
	nodes, err := compile(input)
	if err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}

	return walkRefs(nodes, nil, func(name string, tag Tag) error {
		if _, ok := allowed[name]; ok {
			return nil
		}
		return newParseErrorAt(MissingVariable, "unknown placeholder: "+name, tag)
	})
}

// CheckPaths resolves every variable path against vars.
func (p *DefaultParser) CheckPaths(input []byte, vars Variables) error {
	nodes, err := compile(input)
	if err != nil {
		return err
	}
	return checkPaths(nodes, vars)
}

func checkPaths(nodes []node, vars Variables) error {
	visit := func(e expr, tag Tag) error {
		var err error
		e.paths(func(path []string) {
			if err != nil {
				return
			}
			if _, rerr := resolvePath(vars, path); rerr != nil {
				err = atTag(rerr, tag)
			}
		})
		return err
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case outputNode:
			if err := visit(n.expr, n.tag); err != nil {
				return err
			}
		case *ifNode:
			if err := visit(n.cond, n.tag); err != nil {
				return err
			}
			if err := checkPaths(n.then, vars); err != nil {
				return err
			}
			if err := checkPaths(n.els, vars); err != nil {
				return err
			}
		case *forNode:
			if err := visit(n.list, n.tag); err != nil {
				return err
			}
			val, err := n.list.eval(vars)
			if err != nil {
				return atTag(err, n.tag)
			}
			items, ok := toList(val)
			if !ok {
				return newParseErrorAt(TypeMismatch,
					fmt.Sprintf("cannot loop over %s (got %T)", n.list, val), n.tag)
			}
			if len(items) == 0 {
				continue
			}
			if err := checkPaths(n.body, &scope{parent: vars, name: n.name, value: items[0]}); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkRefs calls fn for each free variable reference in document order,
// stopping at the first error. bound holds the loop variables in scope.
func walkRefs(nodes []node, bound []string, fn func(name string, tag Tag) error) error {
	visit := func(e expr, tag Tag) error {
		var err error
		e.roots(func(name string) {
			if err != nil || isBound(bound, name) {
				return
			}
			err = fn(name, tag)
		})
		return err
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case outputNode:
			if err := visit(n.expr, n.tag); err != nil {
				return err
			}
		case *ifNode:
			if err := visit(n.cond, n.tag); err != nil {
				return err
			}
			if err := walkRefs(n.then, bound, fn); err != nil {
				return err
			}
			if err := walkRefs(n.els, bound, fn); err != nil {
				return err
			}
		case *forNode:
			if err := visit(n.list, n.tag); err != nil {
				return err
			}
			inner := append(append([]string(nil), bound...), n.name)
			if err := walkRefs(n.body, inner, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func isBound(bound []string, name string) bool {
	for _, b := range bound {
		if b == name {
			return true
		}
	}
	return false
}
