package vat

import (
	"fmt"

	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"

	"github.com/shopspring/decimal"
)

// LargePurchaseThreshold is the gross amount from which a VAT invoice is
// flagged as required before input VAT is reclaimed.
var LargePurchaseThreshold = decimal.NewFromInt(500)

// Treatment is the VAT handling suggested for a transaction.
type Treatment struct {
	IsVATRecoverable bool
	SuggestedRate    string
	NeedsReceipt     bool
	Warnings         []string
	Explanation      string
	Deductibility    Deductibility
}

// DetermineVatTreatment suggests a rate and whether VAT is recoverable. Sales
// use the industry's default output rate; purchases go through the
// deductibility rules.
func DetermineVatTreatment(description string, amount decimal.Decimal, industry string, direction models.Direction) Treatment {
	if direction == models.DirectionIncome {
		return incomeTreatment(description, industry)
	}

	d := IsVATDeductible(description, "", "")
	t := Treatment{
		IsVATRecoverable: d.IsDeductible,
		SuggestedRate:    suggestedPurchaseRate(description),
		Deductibility:    d,
	}

	switch {
	case d.IsDeductible:
		t.Explanation = fmt.Sprintf("Input VAT recoverable: %s", d.Reason)
	case d.Section != "":
		t.Explanation = fmt.Sprintf("Input VAT not recoverable under %s: %s", d.Section, d.Reason)
	default:
		t.Explanation = fmt.Sprintf("Input VAT not recoverable: %s", d.Reason)
	}

	if d.Rule == RuleMixedFuelRetailer || d.Rule == RuleMixedFuelWithSignal {
		t.NeedsReceipt = true
		t.Warnings = append(t.Warnings, "Mixed fuel retailer: keep the receipt to show diesel was purchased")
	}
	if d.IsDeductible && amount.Abs().GreaterThanOrEqual(LargePurchaseThreshold) {
		t.NeedsReceipt = true
		t.Warnings = append(t.Warnings, fmt.Sprintf("A VAT invoice is required to reclaim VAT on purchases of %s or more", LargePurchaseThreshold))
	}
	if d.Rule == RulePetrol {
		t.Warnings = append(t.Warnings, "VAT on petrol is never recoverable, even for business use")
	}
	return t
}

func incomeTreatment(description, industry string) Treatment {
	group := ClassifyIndustry(industry)
	rate := IndustryDefaultRate(industry)
	t := Treatment{
		IsVATRecoverable: false,
		SuggestedRate:    rate,
		Explanation:      fmt.Sprintf("Output VAT on sales at %s (%s)", rate, group),
	}
	if group == GroupConstruction && textutils.ContainsWord(textutils.Normalize(description), "from") {
		t.Warnings = append(t.Warnings, "Payment from a principal contractor may fall under RCT, where the principal accounts for VAT by reverse charge")
	}
	return t
}

// suggestedPurchaseRate guesses the rate charged by the supplier.
func suggestedPurchaseRate(description string) string {
	text := textutils.Normalize(description)
	if foodDrinkAccommodation.Has(text) {
		return models.VATSecondReduced
	}
	if secondReducedSupplies.Has(text) {
		return models.VATSecondReduced
	}
	if exemptSupplies.Has(text) {
		return models.VATExempt
	}
	if zeroRatedSupplies.Has(text) {
		return models.VATZeroRated
	}
	if reducedRateSupplies.Has(text) {
		return models.VATReduced
	}
	return models.VATStandard
}
