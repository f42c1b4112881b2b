package categorizer

import (
	"fjacquet/autocat/internal/models"
)

// businessIndicators are categories that suggest a personal-account payment
// was really a business cost.
var businessIndicators = map[string]bool{
	models.CategoryMaterials:        true,
	models.CategoryTools:            true,
	models.CategorySoftware:         true,
	models.CategoryConsulting:       true,
	models.CategoryProfessionalFees: true,
	models.CategoryMotorTravel:      true,
	models.CategoryTelecoms:         true,
	models.CategoryOffice:           true,
	models.CategoryAdvertising:      true,
	models.CategoryTraining:         true,
	models.CategoryEquipmentHire:    true,
	models.CategoryWaste:            true,
	models.CategoryPostage:          true,
	models.CategoryLabour:           true,
}

// finalise runs on every path: income is never VAT deductible, personal
// accounts get the looks-like-business flag, and confidence is banded.
func (c *Categorizer) finalise(in models.TransactionInput, res *models.AutoCatResult) {
	if in.IsIncome() {
		res.VATDeductible = false
	}

	if in.IsPersonalAccount() && (res.IsBusinessExpense == models.Business || businessIndicators[res.Category]) {
		flag := true
		res.LooksLikeBusinessExpense = &flag
		res.AddNote("Looks like a business expense paid from a personal account")
	}

	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 100 {
		res.Confidence = 100
	}
	if res.Confidence < models.ConfidenceLow {
		res.AddNote("Low confidence: categorise manually")
	}
	if res.Confidence < models.ConfidenceReview {
		res.NeedsReview = true
	}
}
