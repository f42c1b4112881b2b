package vendormatch

import (
	"strings"

	"fjacquet/autocat/internal/models"
)

type exactPhase struct {
	vendors []models.VendorEntry
}

func newExactPhase(vendors []models.VendorEntry) *exactPhase {
	return &exactPhase{vendors: vendors}
}

func (p *exactPhase) Name() Phase { return PhaseExact }

// Match scans vendors in table order and returns the first entry with a
// pattern contained in the haystack.
func (p *exactPhase) Match(q Query) (*MatchResult, bool) {
	if q.Haystack == "" {
		return nil, false
	}
	for _, v := range p.vendors {
		for _, pattern := range v.Patterns {
			if strings.Contains(q.Haystack, pattern) {
				return &MatchResult{
					Vendor:     v,
					Phase:      PhaseExact,
					Confidence: models.ConfidenceExact,
					Pattern:    pattern,
					Similarity: 1,
				}, true
			}
		}
	}
	return nil, false
}
