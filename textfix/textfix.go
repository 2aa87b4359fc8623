// Package textfix repairs mojibake in free-text fields of hospital CSV
// exports. The upstream system emits files in ISO-8859-1, but some rows
// arrive double-encoded: UTF-8 byte sequences that were read as Latin-1,
// so "atenção" shows up as "atenÃ§Ã£o".
package textfix

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Replacement is one literal substring correction. Rules are applied in
// order, so compound patterns must come before the generic ones they
// overlap with.
type Replacement struct {
	From string
	To   string
}

// compound covers double-mojibake artifacts observed in real exports:
// accented capitals whose second byte landed on a Windows-1252 control
// glyph. These must run before the generic diacritics table, otherwise
// the leading "Ã" gets rewritten first and the pattern never matches.
var compound = []Replacement{
	{"Ã‰", "É"},
	{"Ãƒ", "Ã"},
	{"Ã…", "Å"},
	{"Ã“", "Ó"},
	{"Ã”", "Ô"},
	{"Ã•", "Õ"},
	{"Ã‚", "Â"},
	{"Ã€", "À"},
	{"Ã‡", "Ç"},
	{"Ãš", "Ú"},
	{"ÃÍ", "Í"},
}

// diacritics covers the common two-character sequences for Portuguese
// accented letters. The bare "Ã" rule is last: any longer sequence it
// participates in has already been rewritten by then.
var diacritics = []Replacement{
	{"Ã©", "é"},
	{"Ã¡", "á"},
	{"Ã£", "ã"},
	{"Ã³", "ó"},
	{"Ã´", "ô"},
	{"Ãª", "ê"},
	{"Ã§", "ç"},
	{"Ãº", "ú"},
	{"Ã\u00ad", "í"}, // U+00AD soft hyphen, invisible in most editors
	{"Ã ", "à"},
	{"Ã¢", "â"},
	{"Ã¶", "ö"},
	{"Ã", "Á"},
}

// Repairer applies the byte-reinterpretation round trip and, when that
// fails, an ordered substitution table. The zero value is not usable;
// construct with NewRepairer.
type Repairer struct {
	rules []Replacement
}

// NewRepairer returns a Repairer with the built-in correction tables.
// Extra rules are applied before the built-ins, so site-specific
// corruption patterns can be patched in without forking the table.
func NewRepairer(extra ...Replacement) *Repairer {
	rules := make([]Replacement, 0, len(extra)+len(compound)+len(diacritics))
	rules = append(rules, extra...)
	rules = append(rules, compound...)
	rules = append(rules, diacritics...)
	return &Repairer{rules: rules}
}

var defaultRepairer = NewRepairer()

// Repair fixes a double-encoded string using the default rule set.
func Repair(s string) string {
	return defaultRepairer.Repair(s)
}

// Repair attempts the Latin-1 round trip first: re-encode the string's
// code points as Latin-1 bytes and re-decode those bytes as UTF-8. When
// the input really is mojibake this restores the original text exactly.
// If any code point is outside Latin-1 or the bytes are not valid UTF-8,
// the input was not a clean double-encoding and the substitution table
// runs instead. Always returns trimmed text; empty input stays empty.
func (r *Repairer) Repair(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if fixed, ok := roundTrip(s); ok {
		return strings.TrimSpace(fixed)
	}
	for _, rule := range r.rules {
		s = strings.ReplaceAll(s, rule.From, rule.To)
	}
	return strings.TrimSpace(s)
}

// roundTrip reinterprets the string's code points as Latin-1 bytes and
// re-decodes them as UTF-8. Fails when a code point exceeds 0xFF or the
// resulting bytes are not well-formed UTF-8.
func roundTrip(s string) (string, bool) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return "", false
	}
	// Plain ASCII survives the round trip unchanged; treat it as a
	// success so already-clean text passes through untouched.
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
