package vendormatch

import (
	"sort"
	"strconv"

	"fjacquet/autocat/internal/models"
)

// codeRange is a block of MCCs that share a classification when the exact
// code is not in the table.
type codeRange struct {
	name string
	low  int
	high int
}

var codeRanges = []codeRange{
	{name: "airline", low: 3000, high: 3350},
	{name: "car rental", low: 3351, high: 3500},
	{name: "hotel", low: 3501, high: 3999},
}

type mccPhase struct {
	byCode map[string]models.MCCMapping
	codes  []int
}

func newMCCPhase(mappings []models.MCCMapping) *mccPhase {
	p := &mccPhase{byCode: make(map[string]models.MCCMapping, len(mappings))}
	for _, m := range mappings {
		p.byCode[m.Code] = m
		if n, err := strconv.Atoi(m.Code); err == nil {
			p.codes = append(p.codes, n)
		}
	}
	sort.Ints(p.codes)
	return p
}

func (p *mccPhase) Name() Phase { return PhaseMCC }

// Match looks the code up exactly, then falls back to the lowest defined code
// in the code's range.
func (p *mccPhase) Match(q Query) (*MatchResult, bool) {
	if q.MCCCode == "" {
		return nil, false
	}
	if m, ok := p.byCode[q.MCCCode]; ok {
		return mccResult(m, q.MCCCode), true
	}

	n, err := strconv.Atoi(q.MCCCode)
	if err != nil {
		return nil, false
	}
	for _, r := range codeRanges {
		if n < r.low || n > r.high {
			continue
		}
		for _, code := range p.codes {
			if code >= r.low && code <= r.high {
				return mccResult(p.byCode[strconv.Itoa(code)], q.MCCCode), true
			}
		}
		return nil, false
	}
	return nil, false
}

// mccResult synthesises a vendor with no patterns from the mapping.
func mccResult(m models.MCCMapping, code string) *MatchResult {
	return &MatchResult{
		Vendor: models.VendorEntry{
			Name:          m.Description,
			Category:      m.Category,
			VATType:       m.VATType,
			VATDeductible: m.VATDeductible,
			Purpose:       m.Description,
			NeedsReceipt:  m.NeedsReceipt,
			MCCCodes:      []string{m.Code},
		},
		Phase:      PhaseMCC,
		Confidence: models.ConfidenceMCC,
		MCCCode:    code,
	}
}
