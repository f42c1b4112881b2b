// Package categorymap resolves the engine's internal category labels to a
// tenant's real category rows.
package categorymap

import (
	"strings"

	"fjacquet/autocat/internal/models"
)

// Row account types as stored by callers.
const (
	RowBusiness = "business"
	RowPersonal = "personal"
	RowBoth     = "both"
)

// Resolver looks up category rows using a label-to-candidates map.
type Resolver struct {
	names models.CategoryNameMap
}

// NewResolver returns a resolver over names. A nil map disables candidate
// lookups and leaves only exact name matching.
func NewResolver(names models.CategoryNameMap) *Resolver {
	return &Resolver{names: names}
}

// FindMatchingCategory returns the row best matching label. Rows are first
// narrowed to those usable on accountType; when that finds nothing and an
// account type was given, the whole list is searched again. Matching is
// exact and case-insensitive, either on the label itself or on one of its
// mapped names in priority order. An empty direction matches any row type.
func (r *Resolver) FindMatchingCategory(label string, rows []models.DBCategory, direction models.Direction, accountType models.AccountType) (models.DBCategory, bool) {
	label = strings.TrimSpace(label)
	if label == "" || len(rows) == 0 {
		return models.DBCategory{}, false
	}

	if row, ok := r.search(label, filterByAccount(rows, accountType), direction); ok {
		return row, true
	}
	if accountType != "" {
		return r.search(label, rows, direction)
	}
	return models.DBCategory{}, false
}

func (r *Resolver) search(label string, rows []models.DBCategory, direction models.Direction) (models.DBCategory, bool) {
	if row, ok := findByName(label, rows, direction); ok {
		return row, true
	}
	for _, candidate := range r.names.Candidates(label) {
		if row, ok := findByName(candidate, rows, direction); ok {
			return row, true
		}
	}
	return models.DBCategory{}, false
}

func findByName(name string, rows []models.DBCategory, direction models.Direction) (models.DBCategory, bool) {
	for _, row := range rows {
		if direction != "" && row.Type != "" && !strings.EqualFold(row.Type, string(direction)) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row.Name), name) {
			return row, true
		}
	}
	return models.DBCategory{}, false
}

// filterByAccount keeps rows usable on accountType. Rows without an account
// type are usable everywhere.
func filterByAccount(rows []models.DBCategory, accountType models.AccountType) []models.DBCategory {
	if accountType == "" {
		return rows
	}
	filtered := make([]models.DBCategory, 0, len(rows))
	for _, row := range rows {
		if usableOn(row.AccountType, accountType) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func usableOn(rowType string, accountType models.AccountType) bool {
	switch strings.ToLower(strings.TrimSpace(rowType)) {
	case "", RowBoth:
		return true
	case RowBusiness:
		return accountType == models.AccountLimitedCompany
	case RowPersonal:
		return accountType == models.AccountDirectorsPersonalTax
	}
	return false
}
