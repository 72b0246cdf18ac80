// Package matcher turns noisy recognized text into a catalog match. It
// tries exact token matching first and falls back to fuzzy similarity,
// never reporting a fuzzy outcome below the configured confidence floor.
package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes accented letters and strips the combining marks,
// so "Régime" and "Regime" normalize to the same tokens.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize cleans raw recognized text into a canonical token stream:
// accents folded, lowercased, punctuation stripped, single-letter fragments merged into
// their neighbor, and repeated tokens removed while preserving order.
// Camera text arrives with glare artifacts and split glyphs, so single
// letters are almost always fragments of an adjacent word.
func Normalize(raw string) []string {
	if folded, _, err := transform.String(foldAccents, raw); err == nil {
		raw = folded
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	tokens = mergeIsolatedLetters(tokens)
	return dedupeTokens(tokens)
}

// NormalizeString is Normalize joined back into a single spaced string.
func NormalizeString(raw string) string {
	return strings.Join(Normalize(raw), " ")
}

// mergeIsolatedLetters glues a lone letter onto the following token, or
// onto the preceding one when it is the last token.
func mergeIsolatedLetters(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if len(tok) == 1 && isLetter(tok) {
			if i+1 < len(tokens) {
				tokens[i+1] = tok + tokens[i+1]
				continue
			}
			if len(out) > 0 {
				out[len(out)-1] += tok
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

func isLetter(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func dedupeTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
