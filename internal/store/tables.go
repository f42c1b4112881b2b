package store

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// RuleTables holds the three static tables the engine classifies against.
// Vendors and MCC keep the order they were authored in.
type RuleTables struct {
	Version       string
	Vendors       []models.VendorEntry
	MCC           []models.MCCMapping
	CategoryNames models.CategoryNameMap
}

type vendorsFile struct {
	Version string               `yaml:"version"`
	Vendors []models.VendorEntry `yaml:"vendors"`
}

type mccFile struct {
	Version string              `yaml:"version"`
	Codes   []models.MCCMapping `yaml:"codes"`
}

type categoryNamesFile struct {
	Version    string                 `yaml:"version"`
	Categories models.CategoryNameMap `yaml:"categories"`
}

var mccCode = regexp.MustCompile(`^[0-9]{4}$`)

// LoadRuleTables reads, decodes and validates all three tables. Every
// integrity failure is reported, not just the first.
func (s *RuleStore) LoadRuleTables() (*RuleTables, error) {
	vendorData, vendorSrc, err := s.readTable("vendor", s.VendorsFile, defaultVendorsFile)
	if err != nil {
		return nil, err
	}
	mccData, mccSrc, err := s.readTable("mcc", s.MCCFile, defaultMCCFile)
	if err != nil {
		return nil, err
	}
	namesData, namesSrc, err := s.readTable("category names", s.CategoryNamesFile, defaultCategoryNamesFile)
	if err != nil {
		return nil, err
	}

	tables, err := ParseRuleTables(vendorData, mccData, namesData)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(
		logging.F("vendors_source", vendorSrc),
		logging.F("mcc_source", mccSrc),
		logging.F("category_names_source", namesSrc),
		logging.F(logging.FieldCount, len(tables.Vendors)),
	).Debug("Loaded rule tables")
	return tables, nil
}

// ParseRuleTables decodes and validates raw YAML for the three tables.
func ParseRuleTables(vendorData, mccData, namesData []byte) (*RuleTables, error) {
	var vf vendorsFile
	if err := yaml.Unmarshal(vendorData, &vf); err != nil {
		return nil, &parsererror.ParseError{Source: "vendor table", Field: "yaml", Err: err}
	}
	var mf mccFile
	if err := yaml.Unmarshal(mccData, &mf); err != nil {
		return nil, &parsererror.ParseError{Source: "mcc table", Field: "yaml", Err: err}
	}
	var nf categoryNamesFile
	if err := yaml.Unmarshal(namesData, &nf); err != nil {
		return nil, &parsererror.ParseError{Source: "category names table", Field: "yaml", Err: err}
	}

	var errs parsererror.ValidationErrors
	errs = append(errs, ValidateVendors(vf.Vendors)...)
	errs = append(errs, ValidateMCC(mf.Codes)...)
	errs = append(errs, ValidateCategoryNames(nf.Categories)...)
	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("rule tables failed validation: %w", err)
	}

	return &RuleTables{
		Version:       vf.Version,
		Vendors:       vf.Vendors,
		MCC:           mf.Codes,
		CategoryNames: nf.Categories,
	}, nil
}

// ValidateVendors checks every vendor entry and returns all failures.
func ValidateVendors(entries []models.VendorEntry) parsererror.ValidationErrors {
	var errs parsererror.ValidationErrors
	fail := func(entry, format string, args ...interface{}) {
		errs = append(errs, &parsererror.ValidationError{
			Table:  "vendor",
			Entry:  entry,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	if len(entries) == 0 {
		fail("", "no entries")
		return errs
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		id := e.Name
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
			fail(id, "missing name")
		} else if seen[e.Name] {
			fail(id, "duplicate name")
		}
		seen[e.Name] = true

		if len(e.Patterns) == 0 {
			fail(id, "no patterns")
		}
		for _, p := range e.Patterns {
			switch {
			case strings.TrimSpace(p) == "":
				fail(id, "empty pattern")
			case p != strings.ToLower(p):
				fail(id, "pattern %q is not lowercase", p)
			case p != strings.TrimSpace(p):
				fail(id, "pattern %q has surrounding whitespace", p)
			}
		}
		if e.Category == "" {
			fail(id, "missing category")
		}
		if e.VATType == "" {
			fail(id, "missing vat_type")
		} else if !models.IsValidVATType(e.VATType) {
			fail(id, "unknown vat_type %q", e.VATType)
		}
		if e.VATType == models.VATExempt && e.VATDeductible {
			fail(id, "exempt vat_type cannot be deductible")
		}
		if !models.IsValidReliefType(e.ReliefType) {
			fail(id, "unknown relief_type %q", e.ReliefType)
		}
		for _, r := range e.AmountRules {
			switch r.Condition {
			case models.AmountLessThan, models.AmountLessEqual, models.AmountGreaterEqual, models.AmountGreaterThan:
			default:
				fail(id, "unknown amount rule condition %q", r.Condition)
			}
			if r.Threshold.IsNegative() {
				fail(id, "negative amount rule threshold %s", r.Threshold)
			}
		}
		for _, c := range e.MCCCodes {
			if !mccCode.MatchString(c) {
				fail(id, "invalid mcc code %q", c)
			}
		}
	}
	return errs
}

// ValidateMCC checks every MCC mapping and returns all failures.
func ValidateMCC(codes []models.MCCMapping) parsererror.ValidationErrors {
	var errs parsererror.ValidationErrors
	fail := func(entry, format string, args ...interface{}) {
		errs = append(errs, &parsererror.ValidationError{
			Table:  "mcc",
			Entry:  entry,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	seen := make(map[string]bool, len(codes))
	for _, m := range codes {
		if !mccCode.MatchString(m.Code) {
			fail(m.Code, "code must be four digits")
		}
		if seen[m.Code] {
			fail(m.Code, "duplicate code")
		}
		seen[m.Code] = true
		if m.Category == "" {
			fail(m.Code, "missing category")
		}
		if !models.IsValidVATType(m.VATType) {
			fail(m.Code, "unknown vat_type %q", m.VATType)
		}
		if m.VATType == models.VATExempt && m.VATDeductible {
			fail(m.Code, "exempt vat_type cannot be deductible")
		}
	}
	return errs
}

// ValidateCategoryNames rejects labels with no candidate names and labels
// that differ from another only in case.
func ValidateCategoryNames(names models.CategoryNameMap) parsererror.ValidationErrors {
	var errs parsererror.ValidationErrors
	seen := make(map[string]string, len(names))
	for _, label := range names.Labels() {
		if len(names[label]) == 0 {
			errs = append(errs, &parsererror.ValidationError{
				Table:  "category names",
				Entry:  label,
				Reason: "no candidate names",
			})
		}
		folded := strings.ToLower(label)
		if first, ok := seen[folded]; ok {
			errs = append(errs, &parsererror.ValidationError{
				Table:  "category names",
				Entry:  label,
				Reason: fmt.Sprintf("duplicates label %q ignoring case", first),
			})
			continue
		}
		seen[folded] = label
	}
	return errs
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *RuleTables
	defaultTablesErr  error
)

// DefaultRuleTables returns the embedded tables, decoded once per process.
func DefaultRuleTables() (*RuleTables, error) {
	defaultTablesOnce.Do(func() {
		defaultTables, defaultTablesErr = NewRuleStore("", "", "", "", nil).LoadRuleTables()
	})
	return defaultTables, defaultTablesErr
}
