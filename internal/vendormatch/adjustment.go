package vendormatch

import (
	"fjacquet/autocat/internal/models"

	"github.com/shopspring/decimal"
)

// adjustmentFor evaluates the vendor's amount rules in order and returns the
// first that holds. A zero amount means the amount is unknown and never
// triggers a rule.
func adjustmentFor(v models.VendorEntry, amount decimal.Decimal) *Adjustment {
	if amount.IsZero() {
		return nil
	}
	for _, r := range v.AmountRules {
		if !r.Holds(amount) {
			continue
		}
		return &Adjustment{
			Rule:       r,
			Category:   r.Category,
			Confidence: r.Confidence,
			Purpose:    r.Purpose,
			Deductible: r.Deductible,
		}
	}
	return nil
}

// Apply returns the effective category, confidence, purpose and deductibility
// after the adjustment, falling back to the base match for unset fields.
func (r *MatchResult) Apply() (category string, confidence int, purpose string, deductible bool) {
	category = r.Vendor.Category
	confidence = r.Confidence
	purpose = r.Vendor.Purpose
	deductible = r.Vendor.VATDeductible

	a := r.Adjustment
	if a == nil {
		return
	}
	if a.Category != "" {
		category = a.Category
	}
	if a.Confidence != 0 {
		confidence = a.Confidence
	}
	if a.Purpose != "" {
		purpose = a.Purpose
	}
	if a.Deductible != nil {
		deductible = *a.Deductible
	}
	return
}
