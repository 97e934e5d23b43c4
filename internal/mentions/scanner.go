// Package mentions extracts @mention and #hashtag tokens from post content.
package mentions

import (
	"regexp"
)

// Sigils recognized by the scanner. Only mentions are acted on by the
// service; hashtags are matched so a future indexer can consume them.
const (
	SigilMention = '@'
	SigilHashtag = '#'
)

// tokenPattern matches a sigil at a non-word boundary followed by word
// characters, so "email@example" does not produce a mention for "example".
var tokenPattern = regexp.MustCompile(`\B([@#])(\w+)`)

// Token is a single extracted entity, sigil stripped.
type Token struct {
	Sigil rune
	Text  string
}

// Extract scans content in a single pass and returns the distinct tokens in
// first-occurrence order. De-duplication is case-sensitive and spans both
// sigils independently: "@Go" and "#Go" are different tokens. Empty or
// unmatched content yields an empty slice, never an error.
func Extract(content string) []Token {
	matches := tokenPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		key := m[1] + m[2]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, Token{Sigil: rune(m[1][0]), Text: m[2]})
	}
	return tokens
}

// Handles returns the mention texts from tokens, order preserved.
func Handles(tokens []Token) []string {
	var handles []string
	for _, t := range tokens {
		if t.Sigil == SigilMention {
			handles = append(handles, t.Text)
		}
	}
	return handles
}

// Tags returns the hashtag texts from tokens, order preserved.
func Tags(tokens []Token) []string {
	var tags []string
	for _, t := range tokens {
		if t.Sigil == SigilHashtag {
			tags = append(tags, t.Text)
		}
	}
	return tags
}
