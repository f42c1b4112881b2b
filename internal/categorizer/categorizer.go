// Package categorizer classifies bank transactions for Irish sole traders and
// limited companies. It composes the vendor cache, the vendor matcher and the
// VAT rules into a single deterministic decision per transaction:
//
//  1. A confirmed vendor from the caller's cache
//  2. Internal transfers and Revenue refunds
//  3. Income rules (RCT, refunds, sales)
//  4. Vendor match, VAT reconciliation and business-expense verdict
//  5. Relief tagging, payments to individuals and receipt refinement
//
// Every path ends in the same finalisation, which applies the personal
// account flag and confidence banding.
package categorizer

import (
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"
	"fjacquet/autocat/internal/textutils"
	"fjacquet/autocat/internal/vendormatch"
)

// Categorizer is stateless once built and safe for concurrent use.
type Categorizer struct {
	tables  *store.RuleTables
	matcher *vendormatch.Matcher
	logger  logging.Logger
}

// NewCategorizer builds a categorizer over the given rule tables.
func NewCategorizer(tables *store.RuleTables, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Categorizer{
		tables:  tables,
		matcher: vendormatch.NewMatcher(tables, logger),
		logger:  logger,
	}
}

// AutoCategorise classifies one transaction. The cache is read, never
// written, and may be nil. The result depends only on the input, the cache
// contents and the rule tables.
func (c *Categorizer) AutoCategorise(in models.TransactionInput, cache models.VendorCache) models.AutoCatResult {
	haystack := textutils.Haystack(in.Description, in.MerchantName)

	var res models.AutoCatResult
	if hit, ok := c.fromCache(in, cache); ok {
		res = hit
	} else if special, ok := c.detectTransferOrRefund(in, haystack); ok {
		res = special
	} else if in.IsIncome() {
		res = c.categoriseIncome(in, haystack)
	} else {
		res = c.categoriseExpense(in, haystack)
	}

	c.finalise(in, &res)

	c.logger.WithFields(
		logging.F(logging.FieldCategory, res.Category),
		logging.F(logging.FieldConfidence, res.Confidence),
		logging.F("match_source", res.MatchSource),
		logging.F("needs_review", res.NeedsReview),
	).Debug("Transaction categorised")
	return res
}

func (c *Categorizer) categoriseExpense(in models.TransactionInput, haystack string) models.AutoCatResult {
	match := c.matcher.Match(in.Description, in.MerchantName, in.Amount, in.MCCCode)

	var res models.AutoCatResult
	if match == nil {
		res = c.unmatched(in, haystack)
	} else {
		res = c.fromVendor(in, match)
	}

	c.tagRelief(in, haystack, match, &res)
	if match == nil {
		c.detectPaymentToIndividual(in, &res)
	}
	c.refineFromReceipt(in, &res)
	return res
}
