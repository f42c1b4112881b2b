package categorizer

import (
	"strings"
	"testing"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategorizer(t *testing.T) (*Categorizer, *logging.MockLogger) {
	t.Helper()
	tables, err := store.DefaultRuleTables()
	require.NoError(t, err)
	logger := logging.NewMockLogger()
	return NewCategorizer(tables, logger), logger
}

func expense(description string) models.TransactionInput {
	return models.TransactionInput{
		Description: description,
		Direction:   models.DirectionExpense,
		Amount:      decimal.NewFromInt(-50),
		AccountType: models.AccountLimitedCompany,
	}
}

func income(description, industry string) models.TransactionInput {
	return models.TransactionInput{
		Description:  description,
		Direction:    models.DirectionIncome,
		Amount:       decimal.NewFromInt(1000),
		UserIndustry: industry,
		AccountType:  models.AccountLimitedCompany,
	}
}

func hasNote(res models.AutoCatResult, fragment string) bool {
	for _, n := range res.Notes {
		if strings.Contains(n, fragment) {
			return true
		}
	}
	return false
}

func TestAutoCategorise_TradeSupplier(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("POS SCREWFIX IRELAND")
	in.UserIndustry = "carpentry_joinery"
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, models.CategoryMaterials, res.Category)
	assert.Equal(t, 95, res.Confidence)
	assert.True(t, res.VATDeductible)
	assert.Equal(t, models.Business, res.IsBusinessExpense)
	assert.False(t, res.NeedsReview)
	assert.Equal(t, "Screwfix", res.Vendor)
	assert.Equal(t, "exact", res.MatchSource)
	assert.Nil(t, res.LooksLikeBusinessExpense)
}

func TestAutoCategorise_TradeSupplierMismatch(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("POS SCREWFIX IRELAND")
	in.UserIndustry = "software"
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, models.CategoryMaterials, res.Category)
	assert.Equal(t, 65, res.Confidence)
	assert.Equal(t, models.Undetermined, res.IsBusinessExpense)
	assert.True(t, res.NeedsReview)
}

func TestAutoCategorise_TradeAlignedByBusinessType(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("POS SCREWFIX IRELAND")
	in.BusinessType = "Plumbing & Heating"
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, 95, res.Confidence)
	assert.Equal(t, models.Business, res.IsBusinessExpense)
}

func TestAutoCategorise_TechSupplier(t *testing.T) {
	c, _ := newTestCategorizer(t)

	tests := []struct {
		name       string
		industry   string
		confidence int
	}{
		{"aligned", "software", 95},
		{"not aligned", "plumbing", 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := expense("GITHUB INC")
			in.UserIndustry = tt.industry
			res := c.AutoCategorise(in, nil)

			assert.Equal(t, models.CategorySoftware, res.Category)
			assert.Equal(t, tt.confidence, res.Confidence)
			assert.Equal(t, models.Business, res.IsBusinessExpense)
			assert.True(t, res.VATDeductible)
		})
	}
}

func TestAutoCategorise_EntertainmentBeforeSoftware(t *testing.T) {
	c, _ := newTestCategorizer(t)

	res := c.AutoCategorise(expense("SPOTIFY PREMIUM"), nil)

	assert.Equal(t, models.CategoryOther, res.Category)
	assert.False(t, res.VATDeductible)
	assert.Equal(t, models.Personal, res.IsBusinessExpense)
}

func TestAutoCategorise_WordBoundaryIsolation(t *testing.T) {
	c, _ := newTestCategorizer(t)

	res := c.AutoCategorise(expense("BARNA RECYCLING"), nil)
	assert.Equal(t, models.CategoryWaste, res.Category)
	assert.True(t, res.VATDeductible)
	assert.Equal(t, models.Business, res.IsBusinessExpense)

	res = c.AutoCategorise(expense("The bar tab"), nil)
	assert.False(t, res.VATDeductible)
	assert.Equal(t, models.CategoryOther, res.Category)
	assert.Equal(t, models.Personal, res.IsBusinessExpense)
}

func TestAutoCategorise_VATRulesOverrideVendor(t *testing.T) {
	c, _ := newTestCategorizer(t)

	res := c.AutoCategorise(expense("APPLEGREEN NAAS"), nil)

	assert.Equal(t, "Applegreen", res.Vendor)
	assert.Equal(t, models.CategoryMotorTravel, res.Category)
	assert.False(t, res.VATDeductible)
	assert.True(t, res.NeedsReceipt)
	assert.Equal(t, models.Undetermined, res.IsBusinessExpense)
	assert.True(t, hasNote(res, "VAT rules override vendor deductibility"))
}

func TestAutoCategorise_RetailerNameInsideWord(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("SCREWFIX POWER TOOL ACCESSORIES")
	in.UserIndustry = "carpentry_joinery"
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, "Screwfix", res.Vendor)
	assert.Equal(t, models.CategoryMaterials, res.Category)
	assert.True(t, res.VATDeductible)
	assert.False(t, hasNote(res, "VAT rules override vendor deductibility"))

	res = c.AutoCategorise(expense("ESSO NAAS ROAD"), nil)
	assert.False(t, res.VATDeductible)
}

func TestAutoCategorise_ReceiptRefinement(t *testing.T) {
	c, _ := newTestCategorizer(t)

	tests := []struct {
		name        string
		description string
		receipt     string
		category    string
		deductible  bool
		business    models.BusinessExpense
		receiptFlag bool
	}{
		{"diesel", "APPLEGREEN NAAS", "DIESEL 40.5L EUR 70.00", models.CategoryMotorTravel, true, models.Business, false},
		{"petrol", "APPLEGREEN NAAS", "UNLEADED 95 30L", models.CategoryMotorTravel, false, models.Undetermined, false},
		{"no keyword", "APPLEGREEN NAAS", "CAR WASH", models.CategoryMotorTravel, false, models.Undetermined, true},
		{"materials", "TESCO", "PLYWOOD SHEET 18MM", models.CategoryMaterials, true, models.Business, false},
		{"tools", "WOODIES", "CORDLESS DRILL 18V", models.CategoryTools, true, models.Business, false},
		{"sand on word boundary", "TESCO", "SAND 25KG BAG", models.CategoryMaterials, true, models.Business, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := expense(tt.description)
			in.ReceiptText = tt.receipt
			res := c.AutoCategorise(in, nil)

			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, tt.deductible, res.VATDeductible)
			assert.Equal(t, tt.business, res.IsBusinessExpense)
			assert.Equal(t, tt.receiptFlag, res.NeedsReceipt)
			assert.GreaterOrEqual(t, res.Confidence, 80)
		})
	}
}

func TestAutoCategorise_NoReceiptLeavesResult(t *testing.T) {
	c, _ := newTestCategorizer(t)

	base := c.AutoCategorise(expense("TESCO"), nil)
	in := expense("TESCO")
	in.ReceiptText = "   "
	assert.Equal(t, base, c.AutoCategorise(in, nil))

	in.ReceiptText = "ONE THOUSAND POINTS EARNED"
	assert.Equal(t, base, c.AutoCategorise(in, nil))
}

func TestAutoCategorise_AmountRule(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("AMAZON PRIME")
	in.Amount = decimal.RequireFromString("-8.99")
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, models.CategorySubscriptions, res.Category)
	assert.False(t, res.VATDeductible)
	assert.Equal(t, 60, res.Confidence)
	assert.True(t, res.NeedsReview)
	assert.True(t, hasNote(res, "Amount rule applied"))
}

func TestAutoCategorise_MCCFallback(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("ZQXV HOLDINGS")
	in.MCCCode = "5812"
	res := c.AutoCategorise(in, nil)

	assert.Equal(t, models.CategoryMeals, res.Category)
	assert.Equal(t, 65, res.Confidence)
	assert.Equal(t, "mcc", res.MatchSource)
	assert.False(t, res.VATDeductible)
	assert.True(t, res.NeedsReview)
}

func TestAutoCategorise_Unmatched(t *testing.T) {
	c, _ := newTestCategorizer(t)

	for _, desc := range []string{"", "   ", "ZQXV HOLDINGS"} {
		t.Run(desc, func(t *testing.T) {
			res := c.AutoCategorise(expense(desc), nil)
			assert.Equal(t, models.CategoryOther, res.Category)
			assert.Equal(t, models.Undetermined, res.IsBusinessExpense)
			assert.True(t, res.NeedsReview)
			assert.Less(t, res.Confidence, models.ConfidenceLow)
			assert.True(t, hasNote(res, "No vendor match"))
		})
	}
}

func TestAutoCategorise_InternalTransfer(t *testing.T) {
	c, _ := newTestCategorizer(t)

	for _, in := range []models.TransactionInput{expense("Transfer to savings"), income("Internal transfer", "construction")} {
		res := c.AutoCategorise(in, nil)
		assert.Equal(t, models.CategoryInternalTransfer, res.Category)
		assert.Equal(t, models.Undetermined, res.IsBusinessExpense)
		assert.False(t, res.VATDeductible)
		assert.Equal(t, 90, res.Confidence)
	}
}

func TestAutoCategorise_TaxRefund(t *testing.T) {
	c, _ := newTestCategorizer(t)

	for _, desc := range []string{"REVENUE COMMISSIONERS REFUND", "Collector General", "VAT refund Q3"} {
		t.Run(desc, func(t *testing.T) {
			res := c.AutoCategorise(income(desc, "construction"), nil)
			assert.Equal(t, models.CategoryTaxRefund, res.Category)
			assert.Equal(t, 95, res.Confidence)
			assert.False(t, res.VATDeductible)
			assert.False(t, res.NeedsReview)
		})
	}

	res := c.AutoCategorise(expense("REVENUE COMMISSIONERS"), nil)
	assert.Equal(t, models.CategoryTaxes, res.Category)
}

func TestAutoCategorise_Income(t *testing.T) {
	c, _ := newTestCategorizer(t)

	tests := []struct {
		name       string
		desc       string
		industry   string
		category   string
		vatType    string
		confidence int
		business   models.BusinessExpense
	}{
		{"rct", "Payment from Murphy Construction Ltd", "construction", models.CategoryRCT, models.VATReverseCharge, 85, models.Business},
		{"commercial refund", "AMAZON REFUND", "software", models.CategoryInterestIncome, models.VATNotApplicable, 85, models.Undetermined},
		{"sales with signal", "STRIPE PAYOUT", "professional_services", models.CategorySales, models.VATStandard, 70, models.Business},
		{"generic sales", "ACME LTD", "professional_services", models.CategorySales, models.VATStandard, 80, models.Business},
		{"construction lodgement", "LODGEMENT", "construction", models.CategorySales, models.VATReduced, 70, models.Business},
		{"from outside construction", "Payment from client", "hospitality", models.CategorySales, models.VATSecondReduced, 80, models.Business},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.AutoCategorise(income(tt.desc, tt.industry), nil)
			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, tt.vatType, res.VATType)
			assert.Equal(t, tt.confidence, res.Confidence)
			assert.Equal(t, tt.business, res.IsBusinessExpense)
			assert.False(t, res.VATDeductible)
		})
	}
}

func TestAutoCategorise_IncomeNeverDeductible(t *testing.T) {
	c, _ := newTestCategorizer(t)

	cache := models.VendorCache{
		"acme": {Pattern: "acme", Category: models.CategorySales, VATDeductible: true, Confidence: 90},
	}
	res := c.AutoCategorise(income("ACME", "retail"), cache)
	assert.Equal(t, "cache", res.MatchSource)
	assert.False(t, res.VATDeductible)
}

func TestAutoCategorise_PaymentToIndividual(t *testing.T) {
	c, _ := newTestCategorizer(t)

	res := c.AutoCategorise(expense("TO JOHN MURPHY"), nil)
	assert.Equal(t, models.CategoryLabour, res.Category)
	assert.False(t, res.VATDeductible)
	assert.True(t, res.NeedsReview)
	assert.Equal(t, models.Undetermined, res.IsBusinessExpense)

	in := expense("TO JOHN MURPHY")
	in.DirectorNames = []string{"John Murphy"}
	res = c.AutoCategorise(in, nil)
	assert.Equal(t, models.CategoryDrawings, res.Category)
	assert.Equal(t, models.Personal, res.IsBusinessExpense)
	assert.False(t, res.VATDeductible)

	res = c.AutoCategorise(expense("TO MURPHY BUILDERS LTD"), nil)
	assert.Equal(t, models.CategoryOther, res.Category)
}

func TestAutoCategorise_ReliefTagging(t *testing.T) {
	c, _ := newTestCategorizer(t)

	tests := []struct {
		name     string
		account  models.AccountType
		reliefs  []models.ReliefType
		expected models.ReliefType
	}{
		{"company account", models.AccountLimitedCompany, nil, models.ReliefHealthInsurance},
		{"personal, reliefs not supplied", models.AccountDirectorsPersonalTax, nil, models.ReliefHealthInsurance},
		{"personal, relief claimed", models.AccountDirectorsPersonalTax, []models.ReliefType{models.ReliefHealthInsurance}, models.ReliefHealthInsurance},
		{"personal, other relief claimed", models.AccountDirectorsPersonalTax, []models.ReliefType{models.ReliefPension}, models.ReliefNone},
		{"personal, no reliefs claimed", models.AccountDirectorsPersonalTax, []models.ReliefType{}, models.ReliefNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := expense("VHI HEALTHCARE")
			in.AccountType = tt.account
			in.DirectorReliefs = tt.reliefs
			res := c.AutoCategorise(in, nil)

			assert.Equal(t, models.CategoryHealthInsurance, res.Category)
			assert.Equal(t, tt.expected, res.ReliefType)
		})
	}
}

func TestAutoCategorise_RentReliefOnUnmatched(t *testing.T) {
	c, _ := newTestCategorizer(t)

	res := c.AutoCategorise(expense("MONTHLY RENT JOHN"), nil)
	assert.Equal(t, models.ReliefRent, res.ReliefType)

	res = c.AutoCategorise(expense("CAR RENTAL DUBLIN AIRPORT"), nil)
	assert.Equal(t, models.ReliefNone, res.ReliefType)
}

func TestAutoCategorise_LooksLikeBusinessExpense(t *testing.T) {
	c, _ := newTestCategorizer(t)

	in := expense("POS SCREWFIX IRELAND")
	in.UserIndustry = "carpentry_joinery"
	in.AccountType = models.AccountDirectorsPersonalTax
	res := c.AutoCategorise(in, nil)
	require.NotNil(t, res.LooksLikeBusinessExpense)
	assert.True(t, *res.LooksLikeBusinessExpense)

	in = expense("SPOTIFY PREMIUM")
	in.AccountType = models.AccountDirectorsPersonalTax
	res = c.AutoCategorise(in, nil)
	assert.Nil(t, res.LooksLikeBusinessExpense)

	// Motor/travel is an indicator even when the verdict is undetermined.
	in = expense("APPLEGREEN NAAS")
	in.AccountType = models.AccountDirectorsPersonalTax
	res = c.AutoCategorise(in, nil)
	require.NotNil(t, res.LooksLikeBusinessExpense)
	assert.Equal(t, models.Undetermined, res.IsBusinessExpense)
}

func TestAutoCategorise_VendorCache(t *testing.T) {
	c, logger := newTestCategorizer(t)

	cache := models.VendorCache{
		"murphy": {
			Pattern: "murphy", VendorName: "Murphy", Category: models.CategoryLabour,
			VATType: models.VATNotApplicable, Confidence: 75,
		},
		"murphy plant hire": {
			Pattern: "murphy plant hire", VendorName: "Murphy Plant Hire", Category: models.CategoryEquipmentHire,
			VATType: models.VATStandard, VATDeductible: true, Confidence: 90, BusinessExpense: models.Business,
		},
	}

	tests := []struct {
		name   string
		desc   string
		vendor string
	}{
		{"exact key", "Murphy Plant Hire", "Murphy Plant Hire"},
		{"longest token run", "POS MURPHY PLANT HIRE NAAS", "Murphy Plant Hire"},
		{"shorter key", "MURPHY TRANSFER", "Murphy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.AutoCategorise(expense(tt.desc), cache)
			assert.Equal(t, "cache", res.MatchSource)
			assert.Equal(t, tt.vendor, res.Vendor)
			assert.True(t, hasNote(res, "Matched vendor"))
		})
	}

	res := c.AutoCategorise(expense("MURPHYS BAR"), cache)
	assert.NotEqual(t, "cache", res.MatchSource, "keys only match whole tokens")

	assert.NotEmpty(t, logger.GetEntriesByLevel("DEBUG"))
}

func TestAutoCategorise_CacheIsNotMutated(t *testing.T) {
	c, _ := newTestCategorizer(t)

	cache := models.VendorCache{"acme": {Pattern: "acme", Category: models.CategoryTools, Confidence: 90, HitCount: 3}}
	c.AutoCategorise(expense("ACME"), cache)
	assert.Equal(t, 3, cache["acme"].HitCount)
	assert.Len(t, cache, 1)
}

func TestAutoCategorise_ConfidenceBanding(t *testing.T) {
	c, _ := newTestCategorizer(t)

	descriptions := []string{
		"POS SCREWFIX IRELAND", "SPOTIFY PREMIUM", "APPLEGREEN NAAS", "The bar tab", "TO JOHN MURPHY",
		"ZQXV HOLDINGS", "AMAZON PRIME", "VHI HEALTHCARE", "GITHUB INC", "", "CAR RENTAL DUBLIN AIRPORT",
		"HEITON BUCKLY", "Transfer to savings",
	}
	for _, d := range descriptions {
		for _, in := range []models.TransactionInput{expense(d), income(d, "construction")} {
			res := c.AutoCategorise(in, nil)
			assert.GreaterOrEqual(t, res.Confidence, 0)
			assert.LessOrEqual(t, res.Confidence, 100)
			if res.Confidence < models.ConfidenceReview {
				assert.True(t, res.NeedsReview, "%q confidence %d", d, res.Confidence)
			}
			if !in.IsPersonalAccount() {
				assert.Nil(t, res.LooksLikeBusinessExpense)
			}
			if in.IsIncome() {
				assert.False(t, res.VATDeductible)
			}
		}
	}
}

func TestAutoCategorise_Deterministic(t *testing.T) {
	c, _ := newTestCategorizer(t)
	cache := models.VendorCache{"acme": {Pattern: "acme", Category: models.CategoryTools, Confidence: 90}}

	inputs := []models.TransactionInput{
		expense("POS SCREWFX IRELAND"),
		expense("APPLEGREEN NAAS"),
		expense("ACME SUPPLIES"),
		income("STRIPE PAYOUT", "retail"),
	}
	for _, in := range inputs {
		first := c.AutoCategorise(in, cache)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, c.AutoCategorise(in, cache))
		}
	}
}

func TestAutoCategorise_ConcurrentUse(t *testing.T) {
	c, _ := newTestCategorizer(t)
	in := expense("POS SCREWFIX IRELAND")
	want := c.AutoCategorise(in, nil)

	done := make(chan models.AutoCatResult, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- c.AutoCategorise(in, nil) }()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
