package parser

import (
	"fmt"
	"strings"
)

type exprKind int

const (
	exprPath exprKind = iota
	exprString
	exprHelper
)

// expr is a parsed placeholder expression: a dotted path, a string
// literal, or a helper call on the _ namespace.
type expr struct {
	kind   exprKind
	path   []string
	str    string
	helper string
	args   []expr
}

// parseExpr parses the body of an output tag or the operand of a
// control statement.
func parseExpr(src string) (expr, error) {
	p := &exprParser{s: src}
	p.skipSpace()
	e, err := p.term()
	if err != nil {
		return expr{}, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return expr{}, newParseError(InvalidSyntax,
			fmt.Sprintf("unexpected %q in expression %q", p.s[p.pos:], src))
	}
	return e, nil
}

type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprParser) term() (expr, error) {
	switch c := p.peek(); {
	case c == 0:
		return expr{}, newParseError(InvalidSyntax, "empty expression")
	case c == '"' || c == '\'':
		return p.stringLit()
	case isIdentStart(c):
		return p.pathOrHelper()
	default:
		return expr{}, newParseError(InvalidSyntax,
			fmt.Sprintf("unexpected %q in expression %q", string(c), p.s))
	}
}

func (p *exprParser) ident() string {
	start := p.pos
	for p.pos < len(p.s) && isIdentPart(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *exprParser) pathOrHelper() (expr, error) {
	path := []string{p.ident()}
	for p.peek() == '.' {
		p.pos++
		if !isIdentStart(p.peek()) {
			return expr{}, newParseError(InvalidSyntax,
				fmt.Sprintf("expected a name after %q", strings.Join(path, ".")+"."))
		}
		path = append(path, p.ident())
	}

	p.skipSpace()
	if p.peek() != '(' {
		return expr{kind: exprPath, path: path}, nil
	}

	if len(path) != 2 || path[0] != "_" {
		return expr{}, newParseError(InvalidSyntax,
			fmt.Sprintf("only _ helpers can be called, got %s()", strings.Join(path, ".")))
	}
	name := path[1]
	h, ok := helpers[name]
	if !ok {
		return expr{}, newParseError(UnknownHelper, "unknown helper: _."+name)
	}

	p.pos++ // (
	var args []expr
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
	} else {
		for {
			p.skipSpace()
			arg, err := p.term()
			if err != nil {
				return expr{}, err
			}
			args = append(args, arg)
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			if p.peek() == ')' {
				p.pos++
				break
			}
			return expr{}, newParseError(InvalidSyntax,
				fmt.Sprintf("expected , or ) in call to _.%s", name))
		}
	}

	if len(args) < h.minArgs || len(args) > h.maxArgs {
		return expr{}, newParseError(InvalidSyntax,
			fmt.Sprintf("_.%s takes %s, got %d", name, h.arity(), len(args)))
	}
	return expr{kind: exprHelper, helper: name, args: args}, nil
}

func (p *exprParser) stringLit() (expr, error) {
	quote := p.s[p.pos]
	p.pos++
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.s):
			b.WriteByte(p.s[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return expr{kind: exprString, str: b.String()}, nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return expr{}, newParseError(InvalidSyntax, "unterminated string literal in "+p.s)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// eval evaluates the expression against vars.
func (e expr) eval(vars Variables) (interface{}, error) {
	switch e.kind {
	case exprString:
		return e.str, nil
	case exprPath:
		return resolvePath(vars, e.path)
	case exprHelper:
		args := make([]interface{}, len(e.args))
		for i, a := range e.args {
			v, err := a.eval(vars)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return helpers[e.helper].fn(args)
	default:
		return nil, newParseError(InvalidSyntax, "invalid expression")
	}
}

// roots calls fn with the first path segment of every variable reference.
func (e expr) roots(fn func(name string)) {
	switch e.kind {
	case exprPath:
		fn(e.path[0])
	case exprHelper:
		for _, a := range e.args {
			a.roots(fn)
		}
	}
}

// paths calls fn with the full path of every variable reference.
func (e expr) paths(fn func(path []string)) {
	switch e.kind {
	case exprPath:
		fn(e.path)
	case exprHelper:
		for _, a := range e.args {
			a.paths(fn)
		}
	}
}

// String returns the dotted form of a path expression, used in messages.
func (e expr) String() string {
	switch e.kind {
	case exprPath:
		return strings.Join(e.path, ".")
	case exprString:
		return fmt.Sprintf("%q", e.str)
	default:
		parts := make([]string, len(e.args))
		for i, a := range e.args {
			parts[i] = a.String()
		}
		return "_." + e.helper + "(" + strings.Join(parts, ", ") + ")"
	}
}
