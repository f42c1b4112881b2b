package categorizer

import (
	"strings"
	"unicode"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
)

const (
	confidenceLabour   = 60
	confidenceDrawings = 80
)

var corporateSuffixes = []string{
	"ltd", "limited", "group", "company", "co", "plc", "teoranta", "teo", "inc", "llc",
	"dac", "clg", "uc", "services", "holdings",
}

// personalName returns the payee when desc reads "to <name>" and the name
// looks like a person: two to four alphabetic words and no corporate suffix.
func personalName(desc string) (string, bool) {
	if !textutils.HasPrefixWord(desc, "to") {
		return "", false
	}
	words := strings.Fields(strings.TrimPrefix(desc, "to "))
	if len(words) < 2 || len(words) > 4 {
		return "", false
	}
	for _, w := range words {
		if contains(corporateSuffixes, strings.Trim(w, ".,")) {
			return "", false
		}
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' {
				return "", false
			}
		}
	}
	return strings.Join(words, " "), true
}

// isDirector matches a payee against the supplied director names.
func isDirector(name string, directors []string) bool {
	for _, d := range directors {
		if n := textutils.Normalize(d); n != "" && (n == name || strings.Contains(name, n)) {
			return true
		}
	}
	return false
}

// detectPaymentToIndividual recognises transfers to a named person. Payments
// to a director are drawings; anyone else is treated as casual labour for
// review. Transactions already tagged with a relief are left alone.
func (c *Categorizer) detectPaymentToIndividual(in models.TransactionInput, res *models.AutoCatResult) {
	if res.ReliefType != models.ReliefNone {
		return
	}
	name, ok := personalName(textutils.Normalize(in.Description))
	if !ok {
		return
	}

	res.VATType = models.VATNotApplicable
	res.VATDeductible = false
	res.NeedsReceipt = false
	res.MatchSource = "individual"

	if isDirector(name, in.DirectorNames) {
		res.Category = models.CategoryDrawings
		res.BusinessPurpose = "Payment to director"
		res.Confidence = confidenceDrawings
		res.IsBusinessExpense = models.Personal
		res.AddNote("Payment to director %s treated as drawings", name)
		c.logger.WithField(logging.FieldRule, "director_payment").Debug("Payment to individual detected")
		return
	}

	res.Category = models.CategoryLabour
	res.BusinessPurpose = "Payment to an individual, possibly casual labour"
	res.Confidence = confidenceLabour
	res.IsBusinessExpense = models.Undetermined
	res.NeedsReview = true
	res.AddNote("Payment to individual %s: confirm whether this is labour", name)
	c.logger.WithField(logging.FieldRule, "payment_to_individual").Debug("Payment to individual detected")
}
