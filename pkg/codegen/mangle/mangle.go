// Package mangle turns arbitrary OpenAPI strings — component names, header
// names, enum literals — into identifiers valid in the target language.
package mangle

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// replacements is the fixed table of non-identifier characters to
// their textual spelling. It must be reproduced verbatim across runs and
// across implementations for generated code to stay stable; do not add or
// remove entries without a corresponding spec update.
var replacements = map[rune]string{
	'-':  "_hyphen_",
	'.':  "_period_",
	'$':  "_dollar_",
	'/':  "_sol_",
	' ':  "_space_",
	':':  "_colon_",
	'@':  "_at_",
	'+':  "_plus_",
	'%':  "_percent_",
	'#':  "_hash_",
	'&':  "_amp_",
	'*':  "_star_",
	'(':  "_lparen_",
	')':  "_rparen_",
	'[':  "_lbracket_",
	']':  "_rbracket_",
	'{':  "_lbrace_",
	'}':  "_rbrace_",
	'<':  "_lt_",
	'>':  "_gt_",
	'=':  "_eq_",
	'!':  "_bang_",
	'?':  "_question_",
	',':  "_comma_",
	';':  "_semi_",
	'\'': "_squote_",
	'"':  "_dquote_",
	'\\': "_bsol_",
	'|':  "_pipe_",
	'~':  "_tilde_",
	'^':  "_caret_",
	'`':  "_backtick_",
}

// reserved is the default target-language reserved word set. It intentionally
// covers the keyword surface common to the class of statically-typed,
// struct-and-enum target languages this generator emits for (think
// Swift/Kotlin/Go-shaped: `struct`, `enum`, `func`, `import`...), since the
// target language itself is left abstract by the spec. Callers that generate
// for a specific language should supply their own set via WithReserved.
var reserved = map[string]struct{}{
	"struct": {}, "enum": {}, "class": {}, "func": {}, "fn": {}, "var": {},
	"let": {}, "const": {}, "if": {}, "else": {}, "switch": {}, "case": {},
	"default": {}, "for": {}, "while": {}, "return": {}, "import": {},
	"package": {}, "interface": {}, "protocol": {}, "extension": {},
	"public": {}, "private": {}, "internal": {}, "fileprivate": {},
	"static": {}, "self": {}, "Self": {}, "nil": {}, "null": {}, "true": {},
	"false": {}, "type": {}, "typealias": {}, "throws": {}, "throw": {},
	"try": {}, "catch": {}, "async": {}, "await": {}, "guard": {}, "in": {},
	"is": {}, "as": {}, "nullable": {}, "optional": {}, "some": {}, "any": {},
	"where": {}, "operator": {}, "init": {}, "deinit": {}, "subscript": {},
	"break": {}, "continue": {}, "fallthrough": {}, "defer": {}, "go": {},
	"chan": {}, "map": {}, "range": {}, "select": {},
}

// Mangler is a pure, deterministic string-to-identifier mapper. The zero
// value is ready to use with the default reserved-word set.
type Mangler struct {
	reserved map[string]struct{}
}

// Option configures a Mangler.
type Option func(*Mangler)

// WithReserved overrides the reserved-word set used for rule 4 (reserved
// word prefixing). Supplying the exact keyword list of the actual target
// language keeps generated identifiers from colliding with it.
func WithReserved(words []string) Option {
	return func(m *Mangler) {
		m.reserved = make(map[string]struct{}, len(words))
		for _, w := range words {
			m.reserved[w] = struct{}{}
		}
	}
}

// New creates a Mangler. With no options it uses the built-in representative
// reserved-word set.
func New(opts ...Option) *Mangler {
	m := &Mangler{reserved: reserved}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mangle maps s to a valid target-language identifier, applying the ordered
// rules of §4.1: empty-string substitution, character replacement (after
// folding non-ASCII letter variants down to their ASCII form so common
// full-width/compatibility characters don't all collapse to escape noise),
// leading-digit prefixing, and reserved-word prefixing. It never returns the
// empty string.
func (m *Mangler) Mangle(s string) string {
	if s == "" {
		return "_empty"
	}

	folded := width.Fold.String(s)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if isIdentRune(r) {
			b.WriteRune(r)
			continue
		}
		if repl, ok := replacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		// Characters outside both [A-Za-z0-9_] and the fixed table (e.g.
		// exotic Unicode punctuation) fall back to a numeric escape so the
		// mapping stays total and deterministic.
		b.WriteString("_u")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteString("_")
	}

	result := b.String()
	if result == "" {
		return "_empty"
	}

	if first := rune(result[0]); unicode.IsDigit(first) {
		result = "_" + result
	}

	if _, isReserved := m.reserved[result]; isReserved {
		result = "_" + result
	}

	return result
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// Default is a package-level Mangler using the built-in reserved-word set,
// convenient for call sites that don't need a custom reserved list.
var Default = New()

// Mangle mangles s using the Default Mangler.
func Mangle(s string) string { return Default.Mangle(s) }
