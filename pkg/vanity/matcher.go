package vanity

import (
	"strings"
	"unicode"
)

// Base58 alphabet (excludes 0, O, I, l).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Matcher tests derived addresses against normalized criteria. Matching is
// defined over the "core" of the address: everything after the leading
// version character, which is fixed by the encoding and not worth
// searching for. Comparison is ASCII case-insensitive.
//
// Matches runs on every candidate, so it avoids allocating: the criteria
// are upper-cased once at construction and the address is case-folded
// byte by byte during comparison.
type Matcher struct {
	prefix string
	suffix string
}

// NewMatcher builds a matcher from already-normalized criteria.
func NewMatcher(c Criteria) *Matcher {
	return &Matcher{prefix: c.Prefix, suffix: c.Suffix}
}

// Matches reports whether the address core satisfies both sides. Empty
// prefix/suffix are vacuously satisfied.
func (m *Matcher) Matches(address string) bool {
	if len(address) < 1 {
		return false
	}
	core := address[1:]

	if m.prefix != "" {
		if len(core) < len(m.prefix) || !foldEqualUpper(core[:len(m.prefix)], m.prefix) {
			return false
		}
	}
	if m.suffix != "" {
		if len(core) < len(m.suffix) || !foldEqualUpper(core[len(core)-len(m.suffix):], m.suffix) {
			return false
		}
	}
	return true
}

// foldEqualUpper compares s against an already upper-cased pattern of the
// same length, upper-casing ASCII letters of s on the fly.
func foldEqualUpper(s, upper string) bool {
	for i := 0; i < len(upper); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != upper[i] {
			return false
		}
	}
	return true
}

// ImpossibleChars returns the characters of a normalized pattern that can
// never match any base58 address. Matching is case-insensitive, so a
// character is only impossible if neither case of it is in the alphabet
// ('0' for example, but not 'O', which matches a lowercase 'o' in the
// address). The search still accepts such criteria (only length rejects),
// but callers use this to warn that the search cannot succeed.
func ImpossibleChars(pattern string) []rune {
	var impossible []rune
	for _, c := range pattern {
		if !strings.ContainsRune(base58Alphabet, c) &&
			!strings.ContainsRune(base58Alphabet, unicode.ToLower(c)) {
			impossible = append(impossible, c)
		}
	}
	return impossible
}
