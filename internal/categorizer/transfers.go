package categorizer

import (
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
)

const (
	confidenceTransfer  = 90
	confidenceTaxRefund = 95
)

var (
	internalTransfer = textutils.KeywordSet{
		Substring: []string{
			"own account", "internal transfer", "inter account", "inter-account",
			"between accounts", "to savings", "from savings", "savings transfer",
			"to deposit account", "from deposit account", "account transfer",
		},
	}

	revenueSource = textutils.KeywordSet{
		Substring: []string{
			"revenue commissioners", "collector general", "collector-general",
			"revenue refund", "ros refund",
		},
	}

	taxRefund = textutils.KeywordSet{
		Substring: []string{"tax refund", "vat refund", "vat repayment", "tax repayment", "paye refund"},
	}
)

// detectTransferOrRefund recognises movements that are not economic
// activity: transfers between the user's own accounts and tax refunds.
func (c *Categorizer) detectTransferOrRefund(in models.TransactionInput, haystack string) (models.AutoCatResult, bool) {
	if kw, ok := internalTransfer.Find(haystack); ok {
		res := models.AutoCatResult{
			Category:          models.CategoryInternalTransfer,
			VATType:           models.VATNotApplicable,
			BusinessPurpose:   "Movement between own accounts",
			Confidence:        confidenceTransfer,
			IsBusinessExpense: models.Undetermined,
			MatchSource:       "transfer",
		}
		res.AddNote("Internal transfer detected (%s)", kw)
		c.logger.WithField(logging.FieldRule, "internal_transfer").Debug("Internal transfer detected")
		return res, true
	}

	if !in.IsIncome() {
		return models.AutoCatResult{}, false
	}
	kw, ok := taxRefund.Find(haystack)
	if !ok {
		kw, ok = revenueSource.Find(haystack)
	}
	if !ok {
		return models.AutoCatResult{}, false
	}

	res := models.AutoCatResult{
		Category:          models.CategoryTaxRefund,
		VATType:           models.VATNotApplicable,
		BusinessPurpose:   "Refund from Revenue",
		Confidence:        confidenceTaxRefund,
		IsBusinessExpense: models.Undetermined,
		MatchSource:       "tax_refund",
	}
	res.AddNote("Tax refund detected (%s)", kw)
	c.logger.WithField(logging.FieldRule, "tax_refund").Debug("Tax refund detected")
	return res, true
}
