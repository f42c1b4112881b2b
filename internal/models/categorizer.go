// Package models provides the data structures used throughout the application.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionInput describes one bank transaction to classify. It is treated
// as immutable by the engine.
type TransactionInput struct {
	Amount              decimal.Decimal
	Date                time.Time
	Currency            string
	Description         string
	MerchantName        string
	Direction           Direction
	UserIndustry        string
	BusinessType        string
	ReceiptText         string
	AccountType         AccountType
	DirectorNames       []string
	// DirectorReliefs is nil when the caller did not supply an entitlement
	// set; an empty non-nil slice means no reliefs are claimed.
	DirectorReliefs     []ReliefType
	BusinessDescription string
	MCCCode             string
}

// IsIncome reports whether the transaction is an inflow.
func (t TransactionInput) IsIncome() bool {
	return t.Direction == DirectionIncome
}

// IsPersonalAccount reports whether the transaction sits on a director's
// personal tax account.
func (t TransactionInput) IsPersonalAccount() bool {
	return t.AccountType == AccountDirectorsPersonalTax
}

// HonoursRelief reports whether a relief tag may be attached for this input.
func (t TransactionInput) HonoursRelief(r ReliefType) bool {
	if r == ReliefNone {
		return false
	}
	if !t.IsPersonalAccount() || t.DirectorReliefs == nil {
		return true
	}
	for _, allowed := range t.DirectorReliefs {
		if allowed == r {
			return true
		}
	}
	return false
}

// DBCategory is a tenant's real category row, supplied by the caller when
// resolving internal labels.
type DBCategory struct {
	Name        string `csv:"name" yaml:"name" json:"name"`
	Type        string `csv:"type" yaml:"type" json:"type"`
	AccountType string `csv:"account_type" yaml:"account_type,omitempty" json:"account_type,omitempty"`
}

// CategoryNameMap maps an internal category label to candidate DB names in
// priority order.
type CategoryNameMap map[string][]string

// Candidates returns the mapped names for label, matching the label
// case-insensitively when no exact key exists. Keys are compared in sorted
// order so the fallback does not depend on map iteration.
func (m CategoryNameMap) Candidates(label string) []string {
	if names, ok := m[label]; ok {
		return names
	}
	for _, key := range m.Labels() {
		if strings.EqualFold(key, label) {
			return m[key]
		}
	}
	return nil
}

// Labels returns the map keys in sorted order.
func (m CategoryNameMap) Labels() []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
