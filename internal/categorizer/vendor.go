package categorizer

import (
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/vat"
	"fjacquet/autocat/internal/vendormatch"
)

const (
	confidenceAligned       = 95
	confidenceTradeMismatch = 65
	confidenceTechMismatch  = 75
	confidenceUnmatched     = 30
)

// alwaysBusiness lists categories that are business expenses whatever the
// VAT outcome.
var alwaysBusiness = map[string]bool{
	models.CategoryMaterials:        true,
	models.CategoryTools:            true,
	models.CategorySoftware:         true,
	models.CategoryConsulting:       true,
	models.CategoryProfessionalFees: true,
	models.CategoryAdvertising:      true,
	models.CategoryTelecoms:         true,
	models.CategoryOffice:           true,
	models.CategoryWaste:            true,
	models.CategoryEquipmentHire:    true,
	models.CategoryPostage:          true,
	models.CategoryTraining:         true,
	models.CategoryInsurance:        true,
	models.CategoryBankFees:         true,
}

// fromVendor builds the result for a matched vendor: amount adjustment, VAT
// reconciliation, then the supplier branch or the generic business verdict.
func (c *Categorizer) fromVendor(in models.TransactionInput, match *vendormatch.MatchResult) models.AutoCatResult {
	v := match.Vendor
	category, confidence, purpose, deductible := match.Apply()

	res := models.AutoCatResult{
		Category:        category,
		VATType:         v.VATType,
		VATDeductible:   deductible,
		BusinessPurpose: purpose,
		Confidence:      match.Confidence,
		NeedsReceipt:    v.NeedsReceipt,
		Vendor:          v.Name,
		MatchSource:     string(match.Phase),
	}
	switch match.Phase {
	case vendormatch.PhaseFuzzy:
		res.AddNote("Matched vendor %s (fuzzy match on %q, similarity %.2f)", v.Name, match.Pattern, match.Similarity)
	case vendormatch.PhaseMCC:
		res.AddNote("Matched vendor %s from merchant category code %s", v.Name, match.MCCCode)
	default:
		res.AddNote("Matched vendor %s", v.Name)
	}
	if match.CodeCorroborated {
		res.AddNote("Merchant category code %s agrees with vendor", in.MCCCode)
	}

	c.reconcileVAT(in, &res, v)
	c.classifyBusiness(in, &res, v)

	if a := match.Adjustment; a != nil {
		if a.Confidence != 0 {
			res.Confidence = confidence
		}
		res.AddNote("Amount rule applied (%s %s)", a.Rule.Condition, a.Rule.Threshold)
	}
	return res
}

// reconcileVAT lets a specific VAT rule override the vendor's stored
// deductibility. The default rule never overrides, and an exempt or
// non-VAT supply never becomes deductible.
func (c *Categorizer) reconcileVAT(in models.TransactionInput, res *models.AutoCatResult, v models.VendorEntry) {
	d := vat.IsVATDeductible(in.Description+" "+in.MerchantName, res.Category, "")
	if !d.Specific() || d.IsDeductible == res.VATDeductible {
		return
	}
	if d.IsDeductible && (v.VATType == models.VATExempt || v.VATType == models.VATNotApplicable) {
		return
	}

	res.VATDeductible = d.IsDeductible
	if d.Section != "" {
		res.AddNote("VAT rules override vendor deductibility: %s (%s)", d.Reason, d.Section)
	} else {
		res.AddNote("VAT rules override vendor deductibility: %s", d.Reason)
	}
	c.logger.WithFields(
		logging.F(logging.FieldVendor, v.Name),
		logging.F(logging.FieldRule, string(d.Rule)),
	).Debug("VAT rules override vendor deductibility")
}

// classifyBusiness applies the trade and tech supplier branches, falling back
// to the generic business-expense verdict.
func (c *Categorizer) classifyBusiness(in models.TransactionInput, res *models.AutoCatResult, v models.VendorEntry) {
	switch {
	case v.IsTradeSupplier:
		if tradeAligned(in) {
			res.Confidence = confidenceAligned
			res.IsBusinessExpense = models.Business
			res.AddNote("Trade supplier matches the user's trade")
			return
		}
		res.Confidence = confidenceTradeMismatch
		res.IsBusinessExpense = models.Undetermined
		res.NeedsReview = true
		res.AddNote("Trade supplier but the user is not in a trade: business use uncertain")
	case v.IsTechSupplier:
		res.IsBusinessExpense = models.Business
		if techAligned(in) {
			res.Confidence = confidenceAligned
			res.AddNote("Technology supplier matches the user's business")
			return
		}
		res.Confidence = confidenceTechMismatch
		res.AddNote("Technology supplier, commonly used by any business")
	default:
		res.IsBusinessExpense = businessExpenseFor(res.Category, res.VATDeductible, res.NeedsReceipt)
	}
}

// businessExpenseFor is the generic business-expense verdict.
func businessExpenseFor(category string, deductible, needsReceipt bool) models.BusinessExpense {
	switch {
	case alwaysBusiness[category]:
		return models.Business
	case category == models.CategoryOther && !deductible && !needsReceipt:
		return models.Personal
	case needsReceipt:
		return models.Undetermined
	}
	return models.BusinessExpenseFromBool(deductible)
}

func tradeAligned(in models.TransactionInput) bool {
	return vat.ClassifyIndustry(in.UserIndustry) == vat.GroupConstruction ||
		vat.ClassifyIndustry(in.BusinessType) == vat.GroupConstruction ||
		vat.ClassifyIndustry(in.BusinessDescription) == vat.GroupConstruction
}

func techAligned(in models.TransactionInput) bool {
	return vat.ClassifyIndustry(in.UserIndustry) == vat.GroupTechnology ||
		vat.ClassifyIndustry(in.BusinessType) == vat.GroupTechnology ||
		vat.ClassifyIndustry(in.BusinessDescription) == vat.GroupTechnology
}

// unmatched handles an expense no vendor rule recognised. Only a specific VAT
// rule is strong enough to settle the business verdict.
func (c *Categorizer) unmatched(in models.TransactionInput, haystack string) models.AutoCatResult {
	treatment := vat.DetermineVatTreatment(haystack, in.Amount, industryOf(in), models.DirectionExpense)
	d := treatment.Deductibility

	res := models.AutoCatResult{
		Category:          models.CategoryOther,
		VATType:           treatment.SuggestedRate,
		VATDeductible:     d.IsDeductible,
		Confidence:        confidenceUnmatched,
		NeedsReceipt:      treatment.NeedsReceipt,
		IsBusinessExpense: models.Undetermined,
		MatchSource:       "none",
	}
	res.AddNote("No vendor match")
	if d.Specific() {
		res.IsBusinessExpense = businessExpenseFor(res.Category, d.IsDeductible, res.NeedsReceipt)
		res.AddNote("VAT rules: %s", d.Reason)
	}
	return res
}
