// Package vendormatch resolves a transaction description to a vendor rule
// through an exact, fuzzy and merchant-category-code cascade.
package vendormatch

import (
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"
	"fjacquet/autocat/internal/textutils"

	"github.com/shopspring/decimal"
)

// Phase names the cascade step that produced a match.
type Phase string

const (
	PhaseExact Phase = "exact"
	PhaseFuzzy Phase = "fuzzy"
	PhaseMCC   Phase = "mcc"
)

// Adjustment carries the fields an amount rule overrides. The base match is
// left untouched so callers can see both.
type Adjustment struct {
	Rule       models.AmountRule
	Category   string
	Confidence int
	Purpose    string
	Deductible *bool
}

// MatchResult is a vendor match and the evidence behind it.
type MatchResult struct {
	Vendor     models.VendorEntry
	Phase      Phase
	Confidence int
	Pattern    string
	Similarity float64
	MCCCode    string
	// CodeCorroborated is set when a name match also lists the supplied MCC.
	CodeCorroborated bool
	Adjustment       *Adjustment
}

// Query is the normalised input every phase sees.
type Query struct {
	Haystack string
	Amount   decimal.Decimal
	MCCCode  string
}

// phase is one step of the cascade. Phases are tried in order and the first
// hit wins.
type phase interface {
	Name() Phase
	Match(q Query) (*MatchResult, bool)
}

// Matcher runs the cascade against a fixed set of rule tables. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct {
	phases []phase
	logger logging.Logger
}

// NewMatcher builds a matcher over tables.
func NewMatcher(tables *store.RuleTables, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Matcher{
		phases: []phase{
			newExactPhase(tables.Vendors),
			newFuzzyPhase(tables.Vendors),
			newMCCPhase(tables.MCC),
		},
		logger: logger,
	}
}

// Match returns the first phase's match, or nil when nothing matched.
func (m *Matcher) Match(description, merchantName string, amount decimal.Decimal, mccCode string) *MatchResult {
	q := Query{
		Haystack: textutils.Haystack(description, merchantName),
		Amount:   amount,
		MCCCode:  textutils.Normalize(mccCode),
	}

	for _, p := range m.phases {
		res, ok := p.Match(q)
		if !ok {
			continue
		}
		if res.Phase != PhaseMCC {
			res.CodeCorroborated = corroborates(res.Vendor, q.MCCCode)
		}
		res.Adjustment = adjustmentFor(res.Vendor, q.Amount)

		m.logger.WithFields(
			logging.F(logging.FieldVendor, res.Vendor.Name),
			logging.F(logging.FieldPhase, string(p.Name())),
			logging.F(logging.FieldConfidence, res.Confidence),
		).Debug("Vendor matched")
		return res
	}

	m.logger.Debug("No vendor match", logging.F("haystack", q.Haystack))
	return nil
}

func corroborates(v models.VendorEntry, code string) bool {
	if code == "" {
		return false
	}
	for _, c := range v.MCCCodes {
		if c == code {
			return true
		}
	}
	return false
}
