package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// BusinessExpense is a tri-state verdict on whether an expense belongs to the
// business. Undetermined is a real outcome, not an error.
type BusinessExpense int

const (
	Undetermined BusinessExpense = iota
	Business
	Personal
)

// BusinessExpenseFromBool maps a definite verdict onto the tri-state.
func BusinessExpenseFromBool(b bool) BusinessExpense {
	if b {
		return Business
	}
	return Personal
}

// Bool returns the verdict and whether one exists.
func (b BusinessExpense) Bool() (value bool, known bool) {
	switch b {
	case Business:
		return true, true
	case Personal:
		return false, true
	}
	return false, false
}

func (b BusinessExpense) String() string {
	switch b {
	case Business:
		return "true"
	case Personal:
		return "false"
	}
	return "null"
}

// ParseBusinessExpense accepts true/false/null and common spellings.
func ParseBusinessExpense(s string) (BusinessExpense, error) {
	switch s {
	case "true", "yes", "business":
		return Business, nil
	case "false", "no", "personal":
		return Personal, nil
	case "", "null", "~", "undetermined", "uncertain":
		return Undetermined, nil
	}
	return Undetermined, fmt.Errorf("invalid business expense value %q", s)
}

// MarshalJSON renders the tri-state as true, false or null.
func (b BusinessExpense) MarshalJSON() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts true, false or null.
func (b *BusinessExpense) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*b = Undetermined
		return nil
	}
	*b = BusinessExpenseFromBool(*v)
	return nil
}

// MarshalYAML renders the tri-state as a YAML bool or null.
func (b BusinessExpense) MarshalYAML() (interface{}, error) {
	if v, ok := b.Bool(); ok {
		return v, nil
	}
	return nil, nil
}

// UnmarshalYAML accepts a YAML bool, null or one of the textual spellings.
func (b *BusinessExpense) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseBusinessExpense(node.Value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalCSV renders the tri-state for gocsv.
func (b BusinessExpense) MarshalCSV() (string, error) {
	if _, ok := b.Bool(); !ok {
		return "", nil
	}
	return b.String(), nil
}

// AutoCatResult is the engine's classification of one transaction.
type AutoCatResult struct {
	Category                 string          `json:"category"`
	VATType                  string          `json:"vat_type"`
	VATDeductible            bool            `json:"vat_deductible"`
	BusinessPurpose          string          `json:"business_purpose"`
	Confidence               int             `json:"confidence"`
	Notes                    []string        `json:"notes"`
	NeedsReview              bool            `json:"needs_review"`
	NeedsReceipt             bool            `json:"needs_receipt"`
	IsBusinessExpense        BusinessExpense `json:"is_business_expense"`
	ReliefType               ReliefType      `json:"relief_type,omitempty"`
	LooksLikeBusinessExpense *bool           `json:"looks_like_business_expense,omitempty"`
	Vendor                   string          `json:"vendor,omitempty"`
	MatchSource              string          `json:"match_source,omitempty"`
}

// AddNote appends an explanation to the result's trail.
func (r *AutoCatResult) AddNote(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
