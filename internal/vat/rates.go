package vat

import (
	"fmt"

	"fjacquet/autocat/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
	three   = decimal.NewFromInt(3)
)

// Rates maps VAT type labels to their percentage.
var Rates = map[string]decimal.Decimal{
	models.VATStandard:      decimal.NewFromInt(23),
	models.VATReduced:       decimal.RequireFromString("13.5"),
	models.VATSecondReduced: decimal.NewFromInt(9),
	models.VATLivestock:     decimal.RequireFromString("4.8"),
	models.VATZeroRated:     decimal.Zero,
	models.VATExempt:        decimal.Zero,
}

// noVATCharged lists labels for which the supplier charges no VAT.
var noVATCharged = map[string]bool{
	models.VATZeroRated:     true,
	models.VATExempt:        true,
	models.VATReverseCharge: true,
	models.VATNotApplicable: true,
}

// Breakdown splits a VAT-inclusive amount.
type Breakdown struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Rate  decimal.Decimal
}

// RateFor returns the percentage for a VAT type label. Unknown labels fall
// back to the standard rate.
func RateFor(label string) decimal.Decimal {
	if noVATCharged[label] {
		return decimal.Zero
	}
	if r, ok := Rates[label]; ok {
		return r
	}
	return Rates[models.VATStandard]
}

// CalculateVATFromGross extracts VAT from a gross amount using a rate label.
func CalculateVATFromGross(gross decimal.Decimal, label string) Breakdown {
	if noVATCharged[label] {
		return Breakdown{Gross: gross, Net: gross, VAT: decimal.Zero, Rate: decimal.Zero}
	}
	return CalculateVATFromGrossRate(gross, RateFor(label))
}

// CalculateVATFromGrossRate extracts VAT from a gross amount using a numeric
// percentage. Net and VAT are each rounded to cents.
func CalculateVATFromGrossRate(gross, percent decimal.Decimal) Breakdown {
	if !percent.IsPositive() {
		return Breakdown{Gross: gross, Net: gross, VAT: decimal.Zero, Rate: decimal.Zero}
	}
	divisor := decimal.NewFromInt(1).Add(percent.Div(hundred))
	net := gross.Div(divisor).Round(2)
	vat := gross.Sub(net).Round(2)
	return Breakdown{Gross: gross, Net: net, VAT: vat, Rate: percent}
}

// TwoThirdsResult is the outcome of the two-thirds rule for a mixed supply.
type TwoThirdsResult struct {
	ApplicableRate string
	IsGoods        bool
	Explanation    string
}

// ApplyTwoThirdsRule taxes a mixed supply at the goods rate when the goods
// share is at least two thirds of the total, and at the services rate
// otherwise. A non-positive total is treated as goods.
func ApplyTwoThirdsRule(partsValue, totalValue decimal.Decimal) TwoThirdsResult {
	if !totalValue.IsPositive() {
		return TwoThirdsResult{
			ApplicableRate: models.VATStandard,
			IsGoods:        true,
			Explanation:    "no total value given, taxed as goods at the standard rate",
		}
	}
	if partsValue.Mul(three).GreaterThanOrEqual(totalValue.Mul(two)) {
		return TwoThirdsResult{
			ApplicableRate: models.VATStandard,
			IsGoods:        true,
			Explanation:    fmt.Sprintf("parts %s of %s are at least two thirds, taxed as goods", partsValue, totalValue),
		}
	}
	return TwoThirdsResult{
		ApplicableRate: models.VATReduced,
		IsGoods:        false,
		Explanation:    fmt.Sprintf("parts %s of %s are under two thirds, taxed as a service", partsValue, totalValue),
	}
}
