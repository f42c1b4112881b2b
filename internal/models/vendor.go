package models

import (
	"github.com/shopspring/decimal"
)

// AmountCondition is the comparison an AmountRule applies to |amount|.
type AmountCondition string

const (
	AmountLessThan     AmountCondition = "lt"
	AmountLessEqual    AmountCondition = "le"
	AmountGreaterEqual AmountCondition = "ge"
	AmountGreaterThan  AmountCondition = "gt"
)

// AmountRule adjusts a vendor match when the transaction amount meets a
// threshold. Zero-valued fields leave the base match untouched.
type AmountRule struct {
	Condition  AmountCondition `yaml:"condition"`
	Threshold  decimal.Decimal `yaml:"threshold"`
	Category   string          `yaml:"category,omitempty"`
	Confidence int             `yaml:"confidence,omitempty"`
	Purpose    string          `yaml:"purpose,omitempty"`
	Deductible *bool           `yaml:"deductible,omitempty"`
}

// Holds reports whether the rule's condition is met by amount. The sign of
// the amount is ignored.
func (r AmountRule) Holds(amount decimal.Decimal) bool {
	abs := amount.Abs()
	switch r.Condition {
	case AmountLessThan:
		return abs.LessThan(r.Threshold)
	case AmountLessEqual:
		return abs.LessThanOrEqual(r.Threshold)
	case AmountGreaterEqual:
		return abs.GreaterThanOrEqual(r.Threshold)
	case AmountGreaterThan:
		return abs.GreaterThan(r.Threshold)
	}
	return false
}

// VendorEntry is one row of the static vendor rule table.
type VendorEntry struct {
	Name            string       `yaml:"name"`
	Patterns        []string     `yaml:"patterns"`
	Category        string       `yaml:"category"`
	VATType         string       `yaml:"vat_type"`
	VATDeductible   bool         `yaml:"vat_deductible"`
	Purpose         string       `yaml:"purpose"`
	NeedsReceipt    bool         `yaml:"needs_receipt,omitempty"`
	IsTradeSupplier bool         `yaml:"trade_supplier,omitempty"`
	IsTechSupplier  bool         `yaml:"tech_supplier,omitempty"`
	ReliefType      ReliefType   `yaml:"relief_type,omitempty"`
	AmountRules     []AmountRule `yaml:"amount_rules,omitempty"`
	Sector          string       `yaml:"sector,omitempty"`
	MCCCodes        []string     `yaml:"mcc_codes,omitempty"`
}

// MCCMapping maps a merchant category code to a classification. It is only
// consulted when no name-based match exists.
type MCCMapping struct {
	Code          string `yaml:"code"`
	Description   string `yaml:"description"`
	Category      string `yaml:"category"`
	VATType       string `yaml:"vat_type"`
	VATDeductible bool   `yaml:"vat_deductible"`
	NeedsReceipt  bool   `yaml:"needs_receipt,omitempty"`
}

// VendorCacheEntry is a learned or previously confirmed vendor pattern.
type VendorCacheEntry struct {
	Pattern         string          `yaml:"pattern" json:"pattern"`
	VendorName      string          `yaml:"vendor_name" json:"vendor_name"`
	Category        string          `yaml:"category" json:"category"`
	VATType         string          `yaml:"vat_type" json:"vat_type"`
	VATDeductible   bool            `yaml:"vat_deductible" json:"vat_deductible"`
	Confidence      int             `yaml:"confidence" json:"confidence"`
	BusinessExpense BusinessExpense `yaml:"business_expense" json:"business_expense"`
	HitCount        int             `yaml:"hit_count" json:"hit_count"`
}

// VendorCache is owned and mutated by the caller; the engine only reads it.
// Keys are normalised vendor patterns.
type VendorCache map[string]VendorCacheEntry
