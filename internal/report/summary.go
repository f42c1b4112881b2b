// Package report summarises batch categorisation runs for review.
package report

import (
	"sort"
	"time"

	"fjacquet/autocat/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the number and gross value of transactions in a category.
type CategoryTotal struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
	Amount   string `json:"amount" yaml:"amount"`
}

// Summary aggregates the results of one or more batch runs.
type Summary struct {
	RunIDs       []string       `json:"run_ids" yaml:"run_ids"`
	GeneratedAt  time.Time      `json:"generated_at" yaml:"generated_at"`
	Files        []string       `json:"files,omitempty" yaml:"files,omitempty"`
	Total        int            `json:"total" yaml:"total"`
	Unreadable   int            `json:"unreadable" yaml:"unreadable"`
	NeedsReview  int            `json:"needs_review" yaml:"needs_review"`
	NeedsReceipt int            `json:"needs_receipt" yaml:"needs_receipt"`
	Business     int            `json:"business" yaml:"business"`
	Personal     int            `json:"personal" yaml:"personal"`
	Undetermined int            `json:"undetermined" yaml:"undetermined"`
	MatchSources map[string]int `json:"match_sources" yaml:"match_sources"`
	Reliefs      map[string]int `json:"reliefs,omitempty" yaml:"reliefs,omitempty"`
	// DeductibleVATBase is the gross spend on which input VAT is reclaimable.
	DeductibleVATBase string          `json:"deductible_vat_base" yaml:"deductible_vat_base"`
	Income            []CategoryTotal `json:"income" yaml:"income"`
	Expenses          []CategoryTotal `json:"expenses" yaml:"expenses"`

	deductible decimal.Decimal
	income     map[string]*total
	expenses   map[string]*total
}

type total struct {
	count  int
	amount decimal.Decimal
}

// NewSummary returns an empty summary stamped with now.
func NewSummary(now time.Time) *Summary {
	return &Summary{
		GeneratedAt:  now.UTC(),
		MatchSources: make(map[string]int),
		Reliefs:      make(map[string]int),
		income:       make(map[string]*total),
		expenses:     make(map[string]*total),
	}
}

// Add folds one run into the summary. inputs and results are parallel.
func (s *Summary) Add(runID, file string, inputs []models.TransactionInput, results []models.AutoCatResult, unreadable int) {
	if runID != "" {
		s.RunIDs = append(s.RunIDs, runID)
	}
	if file != "" {
		s.Files = append(s.Files, file)
	}
	s.Unreadable += unreadable
	s.Total += len(results) + unreadable

	for i, res := range results {
		in := inputs[i]
		if res.NeedsReview {
			s.NeedsReview++
		}
		if res.NeedsReceipt {
			s.NeedsReceipt++
		}
		switch res.IsBusinessExpense {
		case models.Business:
			s.Business++
		case models.Personal:
			s.Personal++
		default:
			s.Undetermined++
		}

		source := res.MatchSource
		if source == "" {
			source = "none"
		}
		s.MatchSources[source]++
		if res.ReliefType != models.ReliefNone {
			s.Reliefs[string(res.ReliefType)]++
		}

		amount := in.Amount.Abs()
		bucket := s.expenses
		if in.IsIncome() {
			bucket = s.income
		} else if res.VATDeductible {
			s.deductible = s.deductible.Add(amount)
		}
		t, ok := bucket[res.Category]
		if !ok {
			t = &total{}
			bucket[res.Category] = t
		}
		t.count++
		t.amount = t.amount.Add(amount)
	}

	s.DeductibleVATBase = s.deductible.StringFixed(2)
	s.Income = totals(s.income)
	s.Expenses = totals(s.expenses)
}

// totals orders categories by descending amount, then name.
func totals(m map[string]*total) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	amounts := make(map[string]decimal.Decimal, len(m))
	for name, t := range m {
		out = append(out, CategoryTotal{Category: name, Count: t.count, Amount: t.amount.StringFixed(2)})
		amounts[name] = t.amount
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := amounts[out[i].Category], amounts[out[j].Category]
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
