package upcastgen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
)

// ParseError is a structural error in a hierarchy description.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

// Parse parses a hierarchy description. path appears in error messages only;
// src is not read from disk.
//
// Parse fails on the first structural problem and never returns a partial
// hierarchy. It does not check that labels name real types or that the
// hierarchy is non-empty; a description of nothing generates nothing.
func Parse(path string, src []byte) (*Hierarchy, error) {
	p := &parser{path: path, src: string(src)}

	bindings, err := p.parseBindings()
	if err != nil {
		return nil, err
	}

	roots, err := p.parseForest()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf(p.off, "unexpected %q", rune(p.src[p.off]))
	}

	return &Hierarchy{Bindings: bindings, Roots: roots}, nil
}

type parser struct {
	path string
	src  string
	off  int
}

func (p *parser) eof() bool { return p.off >= len(p.src) }

// errorf builds a ParseError pointing at the given byte offset.
func (p *parser) errorf(off int, format string, args ...any) *ParseError {
	line, col := 1, 1
	for i := 0; i < off && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{Path: p.path, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace consumes whitespace and line comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.off]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.off++
		case strings.HasPrefix(p.src[p.off:], "//"):
			for !p.eof() && p.src[p.off] != '\n' {
				p.off++
			}
		default:
			return
		}
	}
}

// parseBindings parses the leading type-parameter list. The list is
// mandatory; a hierarchy without parameters declares "[]".
func (p *parser) parseBindings() (Bindings, error) {
	p.skipSpace()
	if p.eof() || p.src[p.off] != '[' {
		return Bindings{}, p.errorf(p.off, "missing type-parameter list; a description opens with %q or %q", "[...]", "[]")
	}
	open := p.off
	p.off++

	// Find the matching bracket first; the raw list splits afterward.
	start := p.off
	depth := 0
	for {
		if p.eof() {
			return Bindings{}, p.errorf(open, "unclosed %q", '[')
		}
		c := p.src[p.off]
		if c == '[' {
			depth++
		} else if c == ']' {
			if depth == 0 {
				break
			}
			depth--
		}
		p.off++
	}
	end := p.off
	p.off++

	return p.parseParams(start, end)
}

// parseParams splits src[start:end] into constraint groups. Bare names group
// backward onto the next constraint, so "K, V any" declares two parameters.
func (p *parser) parseParams(start, end int) (Bindings, error) {
	type item struct {
		text string
		off  int
	}

	// Split on commas outside brackets and braces, so constraints such as
	// "interface{ A | B }" or "Pair[K, V]" survive whole.
	var items []item
	itemStart := start
	depth := 0
	for off := start; off <= end; off++ {
		if off < end {
			switch p.src[off] {
			case '[', '(', '{':
				depth++
				continue
			case ']', ')', '}':
				depth--
				continue
			default:
				if p.src[off] != ',' || depth > 0 {
					continue
				}
			}
		}
		items = append(items, item{text: p.src[itemStart:off], off: itemStart})
		itemStart = off + 1
	}

	var bindings Bindings
	var pending []string
	pendingOff := -1
	for i, it := range items {
		fields := strings.Fields(it.text)
		if len(fields) == 0 {
			if i == len(items)-1 {
				continue // trailing comma
			}
			return Bindings{}, p.errorf(it.off+len(it.text), "unexpected %q", ',')
		}

		nameOff := it.off + strings.Index(it.text, fields[0])
		if !isParamName(fields[0]) {
			return Bindings{}, p.errorf(nameOff, "invalid type-parameter name %q", fields[0])
		}

		if len(fields) == 1 {
			pending = append(pending, fields[0])
			if pendingOff < 0 {
				pendingOff = nameOff
			}
			continue
		}

		bindings.Params = append(bindings.Params, Param{
			Names:      append(pending, fields[0]),
			Constraint: strings.Join(fields[1:], " "),
		})
		pending = nil
		pendingOff = -1
	}
	if len(pending) > 0 {
		return Bindings{}, p.errorf(pendingOff, "missing constraint for type parameter %q", pending[0])
	}

	return bindings, nil
}

// isParamName reports whether s can declare a type parameter.
func isParamName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return s != "" && !token.IsKeyword(s)
}

// parseForest parses comma-separated trees until EOF or a closing brace. The
// brace is left for the caller.
func (p *parser) parseForest() ([]*Node, error) {
	var nodes []*Node
	for {
		p.skipSpace()
		if p.eof() || p.src[p.off] == '}' {
			return nodes, nil
		}

		node, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		p.skipSpace()
		if p.eof() || p.src[p.off] == '}' {
			return nodes, nil
		}
		if p.src[p.off] != ',' {
			return nil, p.errorf(p.off, "expected %q, found %q", ',', rune(p.src[p.off]))
		}
		p.off++
	}
}

// parseTree parses one label and, if present, its brace-enclosed children.
func (p *parser) parseTree() (*Node, error) {
	label, err := p.parseLabel()
	if err != nil {
		return nil, err
	}
	node := &Node{Type: label}

	p.skipSpace()
	if p.eof() || p.src[p.off] != '{' {
		return node, nil
	}
	open := p.off
	p.off++

	children, err := p.parseForest()
	if err != nil {
		return nil, err
	}
	node.Children = children

	if p.eof() {
		return nil, p.errorf(open, "unclosed %q", '{')
	}
	p.off++ // parseForest stops only at '}' or EOF
	return node, nil
}

// parseLabel scans one opaque type expression. A label ends at a comma,
// brace, newline, or comment outside brackets; brackets and parentheses nest,
// keeping instantiations like "Pair[A, B]" whole.
func (p *parser) parseLabel() (string, error) {
	p.skipSpace()
	start := p.off

	type bracket struct {
		char byte
		off  int
	}
	var opens []bracket

scan:
	for !p.eof() {
		c := p.src[p.off]
		switch {
		case len(opens) == 0 && (c == ',' || c == '{' || c == '}' || c == '\n'):
			break scan
		case len(opens) == 0 && strings.HasPrefix(p.src[p.off:], "//"):
			break scan
		case c == '[' || c == '(':
			opens = append(opens, bracket{char: c, off: p.off})
		case c == ']' || c == ')':
			if len(opens) == 0 {
				return "", p.errorf(p.off, "unexpected %q in type expression", rune(c))
			}
			open := opens[len(opens)-1].char
			if (c == ']') != (open == '[') {
				return "", p.errorf(p.off, "expected %q, found %q", matchOf(open), rune(c))
			}
			opens = opens[:len(opens)-1]
		}
		p.off++
	}
	if len(opens) > 0 {
		last := opens[len(opens)-1]
		return "", p.errorf(last.off, "unclosed %q", rune(last.char))
	}

	label := strings.TrimSpace(p.src[start:p.off])
	if label == "" {
		return "", p.errorf(start, "missing type expression")
	}
	return label, nil
}

func matchOf(open byte) rune {
	if open == '[' {
		return ']'
	}
	return ')'
}
