package value

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Null is the single value of the null type.
type Null struct{}

func (Null) Type() string { return "null" }
func (Null) Repr() string { return "null" }

// Bool is a boolean value.
type Bool bool

func (Bool) Type() string { return "bool" }
func (b Bool) Repr() string {
	if b {
		return "true"
	}
	return "false"
}

// Num is AiScript's single numeric type, an IEEE-754 double.
type Num float64

func (Num) Type() string { return "num" }

// Repr is the shortest decimal form that round-trips; integral values below
// 1e21 in magnitude never take the exponent notation a plain %g would pick
// past 1e6.
func (n Num) Repr() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Str is a string value. Indexing and length operations over a Str use
// grapheme clusters, not bytes or UTF-16 code units, per the primitive
// property table in lang/primitive; Str itself stores plain UTF-8.
type Str string

func (Str) Type() string { return "str" }
func (s Str) Repr() string { return string(s) }

// Graphemes splits s into user-perceived characters along extended grapheme
// cluster boundaries (UAX #29): combining marks, variation selectors, skin
// tone modifiers and ZWJ-joined emoji sequences all fold into the preceding
// base, so "👨‍👦" is a single element. Input is NFC-normalized first via
// golang.org/x/text/unicode/norm so canonically equivalent spellings segment
// identically.
func (s Str) Graphemes() []string {
	src := norm.NFC.String(string(s))
	var out []string
	for i := 0; i < len(src); {
		n := graphemeLen(src[i:])
		out = append(out, src[i:i+n])
		i += n
	}
	return out
}

const (
	runeZWJ  = 0x200D
	runeZWNJ = 0x200C
)

// graphemeLen returns the byte length of the first grapheme cluster of s,
// which must be non-empty.
func graphemeLen(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	i := size

	if r == '\r' && i < len(s) && s[i] == '\n' {
		return i + 1
	}
	if isRegionalIndicator(r) {
		if r2, sz2 := utf8.DecodeRuneInString(s[i:]); isRegionalIndicator(r2) {
			i += sz2
		}
		return i
	}

	afterZWJ := false
	for i < len(s) {
		r2, sz2 := utf8.DecodeRuneInString(s[i:])
		switch {
		case afterZWJ:
			i += sz2
			afterZWJ = false
		case r2 == runeZWJ:
			i += sz2
			afterZWJ = true
		case extendsGrapheme(r2):
			i += sz2
		default:
			return i
		}
	}
	return i
}

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }

func extendsGrapheme(r rune) bool {
	switch {
	case r == runeZWNJ:
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // emoji skin tone modifiers
		return true
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r)
}
