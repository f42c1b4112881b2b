package categorizer

import (
	"regexp"
	"strings"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
	"fjacquet/autocat/internal/vendormatch"
)

// reliefFamilies are scanned in order; the first family with a keyword in the
// description wins. Rent is handled separately.
var reliefFamilies = []struct {
	relief   models.ReliefType
	keywords textutils.KeywordSet
}{
	{models.ReliefHealthInsurance, textutils.KeywordSet{
		Substring: []string{"health insurance", "vhi", "laya", "irish life health", "level health"},
	}},
	{models.ReliefMedical, textutils.KeywordSet{
		Substring: []string{
			"medical", "doctor", "dental", "dentist", "orthodont", "pharmacy", "chemist",
			"hospital", "physio", "prescription", "consultant fee", "clinic",
		},
		Boundary: []string{"gp"},
	}},
	{models.ReliefPension, textutils.KeywordSet{
		Substring: []string{"pension", "prsa"},
		Boundary:  []string{"avc"},
	}},
	{models.ReliefCharitable, textutils.KeywordSet{
		Substring: []string{
			"donation", "charity", "charitable", "trocaire", "concern worldwide",
			"barnardos", "st vincent de paul", "irish cancer society",
		},
		Boundary: []string{"svp"},
	}},
	{models.ReliefTuition, textutils.KeywordSet{
		Substring: []string{"tuition", "college fees", "university fees", "student contribution"},
	}},
}

var (
	rentWord = regexp.MustCompile(`\brent(al|s)?\b`)
	// rentSuppressors mark vehicle or equipment hire, which is not rent relief.
	rentSuppressors = []string{"car", "equipment"}
)

// scanRelief finds a relief family in text.
func scanRelief(text string) models.ReliefType {
	for _, f := range reliefFamilies {
		if f.keywords.Has(text) {
			return f.relief
		}
	}
	if hasRent(text) {
		return models.ReliefRent
	}
	return models.ReliefNone
}

// hasRent reports a rent keyword not directly preceded by a suppressor word.
func hasRent(text string) bool {
	for _, loc := range rentWord.FindAllStringIndex(text, -1) {
		before := strings.Fields(text[:loc[0]])
		if len(before) > 0 && contains(rentSuppressors, before[len(before)-1]) {
			continue
		}
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// tagRelief attaches a personal tax relief tag. The vendor's own tag wins
// over keywords, and on a director's personal account only reliefs the
// director claims are attached.
func (c *Categorizer) tagRelief(in models.TransactionInput, haystack string, match *vendormatch.MatchResult, res *models.AutoCatResult) {
	relief := models.ReliefNone
	if match != nil {
		relief = match.Vendor.ReliefType
	}
	if relief == models.ReliefNone {
		relief = scanRelief(haystack)
	}
	if relief == models.ReliefNone {
		return
	}

	if !in.HonoursRelief(relief) {
		res.AddNote("Relief %s not claimed by director, tag not applied", relief)
		c.logger.WithField("relief", string(relief)).Debug("Relief tag withheld")
		return
	}
	res.ReliefType = relief
	res.AddNote("Tagged for %s relief", relief)
	c.logger.WithFields(
		logging.F("relief", string(relief)),
		logging.F(logging.FieldCategory, res.Category),
	).Debug("Relief tagged")
}
