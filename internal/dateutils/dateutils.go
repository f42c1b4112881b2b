// Package dateutils parses the transaction dates found in bank exports.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts. Day-first layouts are tried before month-first ones.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutIrish    = "02/01/2006"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the ordered list of layouts ParseDate tries.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutIrish,
	DateLayoutEuropean,
	DateLayoutFull,
	time.RFC3339,
	"2/1/2006",
	"02-01-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2 January 2006",
	"02/01/06",
}

// ParseDate parses a date string using CommonFormats. An empty string yields
// the zero time and no error.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, nil
	}
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a date as YYYY-MM-DD, or "" for the zero time.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// CleanDateString trims whitespace and collapses inner runs of spaces.
func CleanDateString(dateStr string) string {
	return strings.Join(strings.Fields(dateStr), " ")
}
