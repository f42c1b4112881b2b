// Package currencyutils parses and formats the amounts found in Irish bank
// exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarks = regexp.MustCompile(`(?i)(EUR|GBP|USD|[€£$]|\s)`)
	debitSuffix   = regexp.MustCompile(`(?i)(DR|-)$`)
	creditSuffix  = regexp.MustCompile(`(?i)CR$`)
)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles "1,234.56", "1.234,56", "€1234.56", "(12.50)" and "12.50 DR".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized, negative := StandardizeAmount(amountStr)
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Abs().Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency marks and thousands separators so the
// result can be parsed by decimal.NewFromString. The flag reports a debit
// written with parentheses or a DR suffix.
func StandardizeAmount(amountStr string) (string, bool) {
	s := currencyMarks.ReplaceAllString(amountStr, "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}
	if debitSuffix.MatchString(s) && len(s) > 2 {
		s = debitSuffix.ReplaceAllString(s, "")
		negative = true
	}
	s = creditSuffix.ReplaceAllString(s, "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return strings.ReplaceAll(s, "'", ""), negative
}

// FormatAmount formats a decimal amount with two decimal places and the
// currency symbol, without thousands separators.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "EUR":
		return "€" + formatted
	case "GBP":
		return "£" + formatted
	case "USD":
		return "$" + formatted
	}
	return currency + " " + formatted
}
