package models

// Direction of money flow for a transaction.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// AccountType identifies whose books a transaction belongs to.
type AccountType string

const (
	AccountLimitedCompany       AccountType = "limited_company"
	AccountDirectorsPersonalTax AccountType = "directors_personal_tax"
)

// ReliefType is a Form 11 personal tax relief family.
type ReliefType string

const (
	ReliefNone            ReliefType = ""
	ReliefMedical         ReliefType = "medical"
	ReliefPension         ReliefType = "pension"
	ReliefHealthInsurance ReliefType = "health_insurance"
	ReliefRent            ReliefType = "rent"
	ReliefCharitable      ReliefType = "charitable"
	ReliefTuition         ReliefType = "tuition"
)

// ValidReliefTypes lists every relief tag a rule table may carry.
var ValidReliefTypes = []ReliefType{
	ReliefMedical,
	ReliefPension,
	ReliefHealthInsurance,
	ReliefRent,
	ReliefCharitable,
	ReliefTuition,
}

// VAT type labels. The rate keys double as lookup keys for VAT extraction.
const (
	VATStandard      = "standard_23"
	VATReduced       = "reduced_13_5"
	VATSecondReduced = "second_reduced_9"
	VATLivestock     = "livestock_4_8"
	VATZeroRated     = "zero_rated"
	VATExempt        = "exempt"
	VATReverseCharge = "Reverse Charge"
	VATNotApplicable = "n/a"
)

// Internal category labels.
const (
	CategoryOther            = "other"
	CategoryMaterials        = "Materials"
	CategoryTools            = "Tools"
	CategorySoftware         = "Software"
	CategoryConsulting       = "Consulting"
	CategoryProfessionalFees = "Professional fees"
	CategoryMotorTravel      = "Motor/travel"
	CategoryTravel           = "Travel"
	CategoryTelecoms         = "Phone & internet"
	CategoryUtilities        = "Utilities"
	CategoryOffice           = "Office supplies"
	CategoryAdvertising      = "Advertising"
	CategoryTraining         = "Training"
	CategoryEquipmentHire    = "Equipment hire"
	CategoryWaste            = "Waste"
	CategoryPostage          = "Postage & courier"
	CategoryInsurance        = "Insurance"
	CategoryBankFees         = "Bank fees"
	CategorySubscriptions    = "Subscriptions"
	CategoryMeals            = "Meals"
	CategoryLabour           = "Labour costs"
	CategoryDrawings         = "Director's drawings"
	CategoryDirectorsLoan    = "Director's loan"
	CategoryTaxes            = "Taxes"
	CategoryInternalTransfer = "Internal Transfer"
	CategoryRCT              = "RCT"
	CategorySales            = "Sales"
	CategoryTaxRefund        = "Tax Refund"
	CategoryInterestIncome   = "Interest Income"
	CategoryMedical          = "Medical"
	CategoryPension          = "Pension"
	CategoryHealthInsurance  = "Health insurance"
	CategoryCharitable       = "Charitable donations"
	CategoryTuition          = "Tuition fees"
	CategoryRent             = "Rent"
)

// Fixed match confidences per vendor-matching phase.
const (
	ConfidenceExact = 85
	ConfidenceFuzzy = 75
	ConfidenceMCC   = 65
)

// Confidence banding thresholds.
const (
	ConfidenceLow    = 50
	ConfidenceReview = 70
)

// ValidVATTypes lists every VAT type label a rule table may carry.
var ValidVATTypes = []string{
	VATStandard,
	VATReduced,
	VATSecondReduced,
	VATLivestock,
	VATZeroRated,
	VATExempt,
	VATReverseCharge,
	VATNotApplicable,
}

// IsValidVATType reports whether label is a known VAT type.
func IsValidVATType(label string) bool {
	for _, v := range ValidVATTypes {
		if v == label {
			return true
		}
	}
	return false
}

// IsValidReliefType reports whether r is a known relief tag or empty.
func IsValidReliefType(r ReliefType) bool {
	if r == ReliefNone {
		return true
	}
	for _, v := range ValidReliefTypes {
		if v == r {
			return true
		}
	}
	return false
}
