package categorizer

import (
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
	"fjacquet/autocat/internal/vat"
)

const (
	confidenceRCT          = 85
	confidenceRefund       = 85
	confidenceSalesSignal  = 70
	confidenceSalesGeneric = 80
)

var (
	commercialRefund = textutils.KeywordSet{
		Substring: []string{"refund", "reversal", "reversed", "cashback", "cash back", "rebate", "chargeback"},
	}

	salesSignal = textutils.KeywordSet{
		Substring: []string{
			"invoice", "stripe", "sumup", "paypal", "square", "lodgement", "lodgment",
			"payout", "payment received",
		},
		Boundary: []string{"inv"},
	}

	salesPurpose = map[vat.IndustryGroup]string{
		vat.GroupConstruction: "Income from construction work",
		vat.GroupProfessional: "Fee income for professional services",
		vat.GroupTechnology:   "Fee income for professional services",
		vat.GroupRetail:       "Retail sales receipts",
		vat.GroupHospitality:  "Hospitality sales receipts",
		vat.GroupUnknown:      "Business income",
	}
)

// industryOf prefers the declared industry and falls back to business type.
func industryOf(in models.TransactionInput) string {
	if vat.ClassifyIndustry(in.UserIndustry) != vat.GroupUnknown {
		return in.UserIndustry
	}
	return in.BusinessType
}

// categoriseIncome applies the income rules. Income VAT is never deductible.
func (c *Categorizer) categoriseIncome(in models.TransactionInput, haystack string) models.AutoCatResult {
	industry := industryOf(in)
	group := vat.ClassifyIndustry(industry)
	rate := vat.IndustryDefaultRate(industry)

	if group == vat.GroupConstruction && textutils.ContainsWord(haystack, "from") {
		res := models.AutoCatResult{
			Category:          models.CategoryRCT,
			VATType:           models.VATReverseCharge,
			BusinessPurpose:   "Payment from principal contractor under RCT",
			Confidence:        confidenceRCT,
			IsBusinessExpense: models.Business,
			MatchSource:       "income",
		}
		res.AddNote("Construction income from a company: RCT reverse charge applies")
		c.logger.WithField(logging.FieldRule, "rct").Debug("Income rule matched")
		return res
	}

	if kw, ok := commercialRefund.Find(haystack); ok {
		res := models.AutoCatResult{
			Category:          models.CategoryInterestIncome,
			VATType:           models.VATNotApplicable,
			BusinessPurpose:   "Refund, reversal or rebate received",
			Confidence:        confidenceRefund,
			IsBusinessExpense: models.Undetermined,
			MatchSource:       "income",
		}
		res.AddNote("Commercial refund detected (%s)", kw)
		c.logger.WithField(logging.FieldRule, "refund").Debug("Income rule matched")
		return res
	}

	res := models.AutoCatResult{
		Category:          models.CategorySales,
		VATType:           rate,
		BusinessPurpose:   salesPurpose[group],
		Confidence:        confidenceSalesGeneric,
		IsBusinessExpense: models.Business,
		MatchSource:       "income",
	}
	if kw, ok := salesSignal.Find(haystack); ok {
		res.Confidence = confidenceSalesSignal
		res.AddNote("Sales income (%s), output VAT at %s", kw, rate)
	} else {
		res.AddNote("Sales income, output VAT at %s", rate)
	}
	c.logger.WithField(logging.FieldRule, "sales").Debug("Income rule matched")
	return res
}
