package vendormatch

import (
	"strings"
	"unicode/utf8"

	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"

	"github.com/agnivade/levenshtein"
)

const (
	minTokenLength      = 3
	minPatternLength    = 4
	similarityThreshold = 0.85
)

type fuzzyCandidate struct {
	pattern string
	words   int
}

type fuzzyPhase struct {
	vendors    []models.VendorEntry
	candidates [][]fuzzyCandidate
}

func newFuzzyPhase(vendors []models.VendorEntry) *fuzzyPhase {
	candidates := make([][]fuzzyCandidate, len(vendors))
	for i, v := range vendors {
		for _, pattern := range v.Patterns {
			if utf8.RuneCountInString(pattern) < minPatternLength {
				continue
			}
			candidates[i] = append(candidates[i], fuzzyCandidate{
				pattern: pattern,
				words:   len(strings.Fields(pattern)),
			})
		}
	}
	return &fuzzyPhase{vendors: vendors, candidates: candidates}
}

func (p *fuzzyPhase) Name() Phase { return PhaseFuzzy }

// Match compares each eligible pattern against same-length n-grams of the
// haystack tokens. N-grams are positional: words inserted into or dropped
// from the middle of a vendor name do not match.
func (p *fuzzyPhase) Match(q Query) (*MatchResult, bool) {
	tokens := textutils.Tokens(q.Haystack, minTokenLength)
	if len(tokens) == 0 {
		return nil, false
	}

	grams := make(map[int][]string)
	var best *MatchResult
	for i, v := range p.vendors {
		for _, c := range p.candidates[i] {
			ngrams, ok := grams[c.words]
			if !ok {
				ngrams = textutils.NGrams(tokens, c.words)
				grams[c.words] = ngrams
			}
			for _, gram := range ngrams {
				score := Similarity(gram, c.pattern)
				if score < similarityThreshold {
					continue
				}
				if best == nil || score > best.Similarity {
					best = &MatchResult{
						Vendor:     v,
						Phase:      PhaseFuzzy,
						Confidence: models.ConfidenceFuzzy,
						Pattern:    c.pattern,
						Similarity: score,
					}
				}
			}
		}
	}
	return best, best != nil
}

// Similarity is 1 - distance/max(len(a), len(b)) over runes.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
