package parser

import (
	"fmt"
)

// node is one element of a compiled template.
type node interface{}

type textNode struct {
	text string
}

type outputNode struct {
	expr expr
	tag  Tag
	raw  bool
}

// ifNode is an if/else/end block.
type ifNode struct {
	cond    expr
	negate  bool
	then    []node
	els     []node
	hasElse bool
	tag     Tag
}

// forNode is a for/end block binding name to each list item.
type forNode struct {
	name string
	list expr
	body []node
	tag  Tag
}

// blockFrame is an open block while building the tree.
type blockFrame struct {
	ifn  *ifNode
	forn *forNode
}

func (f *blockFrame) add(n node) {
	switch {
	case f.ifn != nil && f.ifn.hasElse:
		f.ifn.els = append(f.ifn.els, n)
	case f.ifn != nil:
		f.ifn.then = append(f.ifn.then, n)
	default:
		f.forn.body = append(f.forn.body, n)
	}
}

func (f *blockFrame) tag() Tag {
	if f.ifn != nil {
		return f.ifn.tag
	}
	return f.forn.tag
}

// buildTree turns scanned pieces into a node tree, matching each if and
// for with its end. Blocks nest to any depth.
func buildTree(pieces []piece) ([]node, error) {
	var root []node
	var stack []*blockFrame

	add := func(n node) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		stack[len(stack)-1].add(n)
	}

	for _, pc := range pieces {
		if pc.tag == nil {
			add(textNode{text: pc.text})
			continue
		}
		tag := *pc.tag

		if tag.Kind == TagOutput || tag.Kind == TagRaw {
			e, err := parseExpr(tag.Body)
			if err != nil {
				return nil, atTag(err, tag)
			}
			add(outputNode{expr: e, tag: tag, raw: tag.Kind == TagRaw})
			continue
		}

		switch body := tag.Body; {
		case body == "":
			return nil, newParseErrorAt(InvalidSyntax, "empty statement", tag)

		case body == "else":
			if len(stack) == 0 || stack[len(stack)-1].ifn == nil {
				return nil, newParseErrorAt(InvalidSyntax, "else without matching if", tag)
			}
			top := stack[len(stack)-1].ifn
			if top.hasElse {
				return nil, newParseErrorAt(InvalidSyntax, "duplicate else in if block", tag)
			}
			top.hasElse = true

		case body == "end":
			if len(stack) == 0 {
				return nil, newParseErrorAt(InvalidSyntax, "end without matching if or for", tag)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.ifn != nil {
				add(top.ifn)
			} else {
				add(top.forn)
			}

		case ifPattern.MatchString(body):
			m := ifPattern.FindStringSubmatch(body)
			e, err := parseExpr(m[2])
			if err != nil {
				return nil, atTag(err, tag)
			}
			stack = append(stack, &blockFrame{ifn: &ifNode{cond: e, negate: m[1] == "!", tag: tag}})

		case forPattern.MatchString(body):
			m := forPattern.FindStringSubmatch(body)
			e, err := parseExpr(m[2])
			if err != nil {
				return nil, atTag(err, tag)
			}
			stack = append(stack, &blockFrame{forn: &forNode{name: m[1], list: e, tag: tag}})

		default:
			return nil, newParseErrorAt(UnknownStatement,
				fmt.Sprintf("unknown statement: %s", body), tag)
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1].tag()
		return nil, newParseErrorAt(UnclosedBlock,
			fmt.Sprintf("unclosed block %q (missing end)", open.Body), open)
	}
	return root, nil
}
