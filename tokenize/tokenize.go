// Package tokenize splits social-media text into word tokens under a small
// set of tokenization policies.
//
// A Policy controls case handling and elongation squashing ("sooooo" ->
// "sooo"). The zero Policy lowercases and leaves elongations alone, which is
// also what Default returns. All policies are value types and safe for
// concurrent use.
package tokenize

import (
	"strings"
	"unicode"
)

// Policy configures how text is split into tokens.
type Policy struct {
	// PreserveCase keeps the original casing. When false, tokens are
	// lowercased.
	PreserveCase bool `json:"preserve_case"`

	// ReduceRepeated collapses runs of four or more identical characters
	// down to three, so "yessssss" and "yessss" produce the same token.
	ReduceRepeated bool `json:"reduce_repeated"`
}

// Default returns the default tokenization policy: lowercase, no elongation
// squashing.
func Default() Policy {
	return Policy{}
}

// String names the policy for logs and reports.
func (p Policy) String() string {
	var parts []string
	if p.PreserveCase {
		parts = append(parts, "preserve_case")
	}
	if p.ReduceRepeated {
		parts = append(parts, "reduce_repeated")
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "+")
}

// maxRepeat is the longest run of identical runes kept when ReduceRepeated
// is set.
const maxRepeat = 3

// Tokenize splits s into word tokens under the policy. A token is a maximal
// run of letters, digits, apostrophes, or a leading # or @ sigil. Everything
// else separates tokens.
func (p Policy) Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		tokens = append(tokens, p.finish(b.String()))
		b.Reset()
	}

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			b.WriteRune(r)
		case (r == '#' || r == '@') && b.Len() == 0:
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func (p Policy) finish(tok string) string {
	if !p.PreserveCase {
		tok = strings.ToLower(tok)
	}
	if p.ReduceRepeated {
		tok = squashRuns(tok)
	}
	return tok
}

func squashRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= maxRepeat {
			b.WriteRune(r)
		}
	}
	return b.String()
}
