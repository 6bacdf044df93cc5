// Package emit renders derived conversions as Go source.
package emit

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS manages unique function names within one generated file.
type NS map[string]struct{}

// NewNS creates an empty namespace.
func NewNS() NS {
	return make(NS)
}

// Reserve marks a name as taken. It returns false if the name was already
// reserved.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name reserves and returns a unique name based on the given one. When the
// name is taken, a numbering suffix resolves the conflict.
func (ns NS) Name(name string) string {
	for name := range DisambiguateName(name) {
		if ns.Reserve(name) {
			return name
		}
	}
	panic("unreachable")
}

// NormalizeName derives an identifier chunk from a type label. Bracketed and
// parenthesized segments are dropped, so "Tree[T]" becomes "Tree". The rest
// splits on non-identifier runes and each piece starts upper-cased with its
// tail kept intact, so "api.Shape" becomes "ApiShape" and "URLError" stays
// "URLError". A leading digit gains an "X" prefix; a label with nothing to
// keep becomes "X".
func NormalizeName(label string) string {
	stripped := make([]byte, 0, len(label))
	depth := 0
	for i := 0; i < len(label); i++ {
		switch c := label[i]; {
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			stripped = append(stripped, c)
		}
	}

	chunks := strings.FieldsFunc(string(stripped), func(r rune) bool {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			return false
		case '0' <= r && r <= '9', r == '_':
			return false
		}
		return true
	})

	title := cases.Title(language.English, cases.NoLower)
	for i, chunk := range chunks {
		chunks[i] = title.String(chunk)
	}

	name := strings.Join(chunks, "")
	if name == "" {
		return "X"
	}
	if '0' <= name[0] && name[0] <= '9' {
		name = "X" + name
	}
	return name
}

// DisambiguateName returns an iterator over fallback names: the name itself,
// then the name with increasing numbering suffixes. An underscore separates
// the suffix when the name already ends with a digit.
//
// Panics if the name is empty.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		sep := ""
		if last := name[len(name)-1]; '0' <= last && last <= '9' {
			sep = "_"
		}

		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}
