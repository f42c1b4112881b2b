// Package autocat is the public API of the categorisation engine. It wraps
// the internal packages over the rule tables embedded in the binary.
package autocat

import (
	"strings"
	"sync"

	"fjacquet/autocat/internal/categorizer"
	"fjacquet/autocat/internal/categorymap"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"
	"fjacquet/autocat/internal/vat"

	"github.com/shopspring/decimal"
)

// Re-exported types so callers need not import internal packages.
type (
	TransactionInput = models.TransactionInput
	AutoCatResult    = models.AutoCatResult
	VendorCache      = models.VendorCache
	VendorCacheEntry = models.VendorCacheEntry
	DBCategory       = models.DBCategory
	Deductibility    = vat.Deductibility
	Treatment        = vat.Treatment
	Breakdown        = vat.Breakdown
	TwoThirdsResult  = vat.TwoThirdsResult
)

var (
	engineOnce sync.Once
	engine     *categorizer.Categorizer
	resolver   *categorymap.Resolver
	engineErr  error
)

func defaultEngine() (*categorizer.Categorizer, *categorymap.Resolver, error) {
	engineOnce.Do(func() {
		tables, err := store.DefaultRuleTables()
		if err != nil {
			engineErr = err
			return
		}
		engine = categorizer.NewCategorizer(tables, nil)
		resolver = categorymap.NewResolver(tables.CategoryNames)
	})
	return engine, resolver, engineErr
}

// AutoCategorise classifies one transaction against the embedded tables.
// The cache is read, never written, and may be nil. It panics only if the
// embedded tables fail validation, which the package tests rule out.
func AutoCategorise(in TransactionInput, cache VendorCache) AutoCatResult {
	c, _, err := defaultEngine()
	if err != nil {
		panic(err)
	}
	return c.AutoCategorise(in, cache)
}

// FindMatchingCategory resolves an internal category label to one of the
// caller's category rows.
func FindMatchingCategory(label string, rows []DBCategory, direction models.Direction, accountType models.AccountType) (DBCategory, bool) {
	_, r, err := defaultEngine()
	if err != nil {
		panic(err)
	}
	return r.FindMatchingCategory(label, rows, direction, accountType)
}

// IsVATDeductible reports whether input VAT on a purchase can be reclaimed.
func IsVATDeductible(description, category, account string) Deductibility {
	return vat.IsVATDeductible(description, category, account)
}

// DetermineVatTreatment suggests the VAT treatment of a transaction.
func DetermineVatTreatment(description string, amount decimal.Decimal, industry string, direction models.Direction) Treatment {
	return vat.DetermineVatTreatment(description, amount, industry, direction)
}

// CalculateVATFromGross splits a VAT-inclusive amount. rate is either a VAT
// type label such as "standard_23" or a numeric percentage such as "13.5".
// Unknown labels use the standard rate.
func CalculateVATFromGross(gross decimal.Decimal, rate string) Breakdown {
	if percent, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(rate), "%")); err == nil {
		return vat.CalculateVATFromGrossRate(gross, percent)
	}
	return vat.CalculateVATFromGross(gross, rate)
}

// ApplyTwoThirdsRule picks the rate for a mixed supply of goods and services.
func ApplyTwoThirdsRule(partsValue, totalValue decimal.Decimal) TwoThirdsResult {
	return vat.ApplyTwoThirdsRule(partsValue, totalValue)
}
