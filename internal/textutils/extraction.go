package textutils

import (
	"regexp"
	"strings"
)

var (
	// Card and direct debit markers Irish banks put in front of the payee.
	channelPrefix = regexp.MustCompile(`^(?:(?:pos|vdp|vdc|vda|d/d|dd|sepa dd|sepa|contactless|debit card|apple pay|google pay|s/o)(?:\d{1,2}[a-z]{3}\d{0,4})?[\s\-:*]+)+`)
	// Dates like 12mar, 12mar25, 12/03, 12-03-2025 and bare card/reference numbers.
	dateToken = regexp.MustCompile(`^(?:\d{1,2}(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\d{0,4}|\d{1,2}[/\-.]\d{1,2}(?:[/\-.]\d{2,4})?)$`)
	refToken  = regexp.MustCompile(`^(?:\*+\d*|\d{4,}|[a-z]*\d{6,}[a-z\d]*)$`)
	// Trailing locations that add nothing to a vendor pattern.
	placeToken = map[string]bool{
		"ie": true, "irl": true, "dublin": true, "cork": true,
		"galway": true, "limerick": true, "waterford": true, "eur": true,
	}
)

// ExtractMerchant reduces a raw bank description to the words that name the
// payee, e.g. "VDP-SCREWFIX DUBLIN 12MAR" becomes "screwfix". It returns an
// empty string when nothing is left.
func ExtractMerchant(description string) string {
	s := Normalize(description)
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(channelPrefix.ReplaceAllString(s, ""))

	var kept []string
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, "*-:,.")
		if tok == "" || dateToken.MatchString(tok) || refToken.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	for len(kept) > 1 && placeToken[kept[len(kept)-1]] {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, " ")
}
