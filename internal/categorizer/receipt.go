package categorizer

import (
	"strings"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
	"fjacquet/autocat/internal/vat"
)

const confidenceReceipt = 80

var (
	receiptMaterials = textutils.KeywordSet{
		Substring: []string{
			"timber", "plywood", "plasterboard", "cement", "concrete", "insulation",
			"gravel", "screws", "nails", "adhesive", "sealant", "copper pipe", "cable",
		},
		Boundary: []string{"sand", "mdf", "osb"},
	}
	receiptTools = textutils.KeywordSet{
		Substring: []string{
			"drill", "grinder", "sander", "jigsaw", "hammer", "spanner", "chisel",
			"screwdriver", "multimeter", "spirit level",
		},
		Boundary: []string{"saw"},
	}
)

// refineFromReceipt lets receipt text settle fuel type or the goods bought.
// Without receipt text or a recognised keyword the result is unchanged.
func (c *Categorizer) refineFromReceipt(in models.TransactionInput, res *models.AutoCatResult) {
	receipt := textutils.Normalize(in.ReceiptText)
	if strings.TrimSpace(receipt) == "" {
		return
	}

	switch vat.FuelType(receipt) {
	case vat.FuelDiesel:
		res.VATDeductible = true
		res.NeedsReceipt = false
		res.IsBusinessExpense = models.Business
		c.raiseForReceipt(res, "Receipt shows diesel: VAT deductible")
		return
	case vat.FuelPetrol:
		res.VATDeductible = false
		res.NeedsReceipt = false
		c.raiseForReceipt(res, "Receipt shows petrol: VAT not deductible (%s)", vat.SectionPetrol)
		return
	}

	if kw, ok := receiptMaterials.Find(receipt); ok {
		c.recategoriseFromReceipt(res, models.CategoryMaterials, kw)
		return
	}
	if kw, ok := receiptTools.Find(receipt); ok {
		c.recategoriseFromReceipt(res, models.CategoryTools, kw)
	}
}

func (c *Categorizer) recategoriseFromReceipt(res *models.AutoCatResult, category, keyword string) {
	res.Category = category
	res.IsBusinessExpense = models.Business
	res.NeedsReceipt = false
	if res.VATType != models.VATExempt && res.VATType != models.VATNotApplicable {
		res.VATDeductible = true
	}
	c.raiseForReceipt(res, "Receipt shows %s: recategorised as %s", keyword, category)
}

func (c *Categorizer) raiseForReceipt(res *models.AutoCatResult, format string, args ...interface{}) {
	if res.Confidence < confidenceReceipt {
		res.Confidence = confidenceReceipt
	}
	res.AddNote(format, args...)
	c.logger.WithField(logging.FieldCategory, res.Category).Debug("Receipt refined result")
}
