package parser

import (
	"regexp"
	"strings"
)

// TagKind identifies the type of template tag.
type TagKind int

const (
	// TagOutput represents <%= expr %>, HTML-escaped
	TagOutput TagKind = iota
	// TagControl represents <% stmt %> and <%_ stmt _%>
	TagControl
	// TagComment represents <%# text %>
	TagComment
	// TagRaw represents <%- expr %>, written unescaped
	TagRaw
)

// String returns the string representation of the tag kind.
func (k TagKind) String() string {
	switch k {
	case TagOutput:
		return "output"
	case TagControl:
		return "control"
	case TagComment:
		return "comment"
	case TagRaw:
		return "raw"
	default:
		return "unknown"
	}
}

const (
	openDelim    = "<%"
	closeDelim   = "%>"
	literalOpen  = "<%%"
	slurpMarker  = "_"
	outputMarker = "="
	rawMarker    = "-"
	commentMark  = "#"
)

// Tag represents a matched tag in the template text.
type Tag struct {
	// Kind is the tag kind.
	Kind TagKind
	// Start is the starting byte index in the input.
	Start int
	// End is the ending byte index in the input (exclusive).
	End int
	// Body is the trimmed content between the markers.
	Body string
	// TrimLeft is set by <%_ and strips spaces and tabs before the tag.
	TrimLeft bool
	// TrimRight is set by _%> and strips spaces, tabs and one newline after the tag.
	TrimRight bool
	// Line is the 1-indexed line of the tag start.
	Line int
	// RawText is the original matched text.
	RawText string
}

// piece is either literal text or a tag, in document order.
type piece struct {
	text string
	tag  *Tag
}

var (
	// Control statements. The expression part is parsed by parseExpr.
	ifPattern  = regexp.MustCompile(`^if\s+(!?)\s*(.+)$`)
	forPattern = regexp.MustCompile(`^for\s+([A-Za-z_$][\w$]*)\s+in\s+(.+)$`)
)

// scan splits input into text and tag pieces and applies whitespace
// slurping. <%% is emitted as a literal <%.
func scan(input string) ([]piece, error) {
	var pieces []piece
	var text strings.Builder
	trimNext := false
	pos := 0

	flush := func(trimLeft bool) {
		s := text.String()
		text.Reset()
		if trimNext {
			s = trimLeadingLine(s)
		}
		if trimLeft {
			s = strings.TrimRight(s, " \t")
		}
		if s != "" {
			pieces = append(pieces, piece{text: s})
		}
	}

	for {
		idx := strings.Index(input[pos:], openDelim)
		if idx < 0 {
			text.WriteString(input[pos:])
			break
		}
		start := pos + idx
		text.WriteString(input[pos:start])

		if strings.HasPrefix(input[start:], literalOpen) {
			text.WriteString(openDelim)
			pos = start + len(literalOpen)
			continue
		}

		closeIdx := strings.Index(input[start+len(openDelim):], closeDelim)
		if closeIdx < 0 {
			return nil, &ParseError{
				Type:    UnclosedTag,
				Message: "unclosed tag (missing %>)",
				Line:    lineAt(input, start),
				Tag:     excerpt(input[start:]),
			}
		}
		end := start + len(openDelim) + closeIdx + len(closeDelim)
		tag := newTag(input, start, end)

		flush(tag.TrimLeft)
		trimNext = tag.TrimRight
		if tag.Kind != TagComment {
			t := tag
			pieces = append(pieces, piece{tag: &t})
		}
		pos = end
	}

	flush(false)
	return pieces, nil
}

// newTag classifies the tag spanning input[start:end].
func newTag(input string, start, end int) Tag {
	inner := input[start+len(openDelim) : end-len(closeDelim)]
	tag := Tag{
		Kind:    TagControl,
		Start:   start,
		End:     end,
		Line:    lineAt(input, start),
		RawText: input[start:end],
	}

	switch {
	case strings.HasPrefix(inner, outputMarker):
		tag.Kind = TagOutput
		inner = inner[len(outputMarker):]
	case strings.HasPrefix(inner, rawMarker):
		tag.Kind = TagRaw
		inner = inner[len(rawMarker):]
	case strings.HasPrefix(inner, commentMark):
		tag.Kind = TagComment
		inner = inner[len(commentMark):]
	case strings.HasPrefix(inner, slurpMarker):
		tag.TrimLeft = true
		inner = inner[len(slurpMarker):]
	}
	if strings.HasSuffix(inner, slurpMarker) {
		tag.TrimRight = true
		inner = strings.TrimSuffix(inner, slurpMarker)
	}

	tag.Body = strings.TrimSpace(inner)
	return tag
}

// trimLeadingLine drops leading spaces and tabs and then one line break.
func trimLeadingLine(s string) string {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

// lineAt returns the 1-indexed line number of byte offset pos.
func lineAt(input string, pos int) int {
	return strings.Count(input[:pos], "\n") + 1
}

// excerpt shortens text for error messages.
func excerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
