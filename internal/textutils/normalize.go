// Package textutils provides text normalisation and keyword matching helpers
// shared by the vendor matcher, the VAT rules engine and the categoriser.
package textutils

import (
	"regexp"
	"strings"
	"sync"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize lowercases s, collapses runs of whitespace and trims it.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(s), " "))
}

// Haystack joins the normalised non-empty parts with single spaces.
func Haystack(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

// Tokens splits s on whitespace and keeps tokens of at least minLen runes.
func Tokens(s string, minLen int) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NGrams returns every run of n consecutive tokens joined by a space.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || n > len(tokens) {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// ContainsAny reports whether s contains any keyword as a plain substring and
// returns the first keyword found, in list order.
func ContainsAny(s string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return k, true
		}
	}
	return "", false
}

var (
	wordRegexMu sync.RWMutex
	wordRegex   = map[string]*regexp.Regexp{}
)

func wordBoundary(keyword string) *regexp.Regexp {
	wordRegexMu.RLock()
	re, ok := wordRegex[keyword]
	wordRegexMu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	wordRegexMu.Lock()
	wordRegex[keyword] = re
	wordRegexMu.Unlock()
	return re
}

// ContainsWord reports whether keyword occurs in s on word boundaries.
func ContainsWord(s, keyword string) bool {
	return wordBoundary(keyword).MatchString(s)
}

// ContainsAnyWord is ContainsAny with word-boundary matching.
func ContainsAnyWord(s string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if ContainsWord(s, k) {
			return k, true
		}
	}
	return "", false
}

// HasPrefixWord reports whether s starts with word followed by a space.
func HasPrefixWord(s, word string) bool {
	return strings.HasPrefix(s, word+" ")
}

// KeywordSet is a family of trigger words. Substring words match anywhere in
// the text; Boundary words only match as whole words.
type KeywordSet struct {
	Substring []string
	Boundary  []string
}

// Find returns the first keyword of the set present in s, substring words
// first.
func (k KeywordSet) Find(s string) (string, bool) {
	if kw, ok := ContainsAny(s, k.Substring); ok {
		return kw, true
	}
	return ContainsAnyWord(s, k.Boundary)
}

// Has reports whether any keyword of the set is present in s.
func (k KeywordSet) Has(s string) bool {
	_, ok := k.Find(s)
	return ok
}
