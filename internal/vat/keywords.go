package vat

import (
	"regexp"

	"fjacquet/autocat/internal/textutils"
)

// Keyword families for the deductibility rules. Boundary words match whole
// words only so that "bar" does not fire on "Barna".
var (
	foodDrinkAccommodation = textutils.KeywordSet{
		Substring: []string{
			"restaurant", "cafe", "café", "coffee", "takeaway", "take away", "bistro",
			"brasserie", "pizza", "burger", "eatery", "canteen", "catering", "lunch",
			"dinner", "breakfast", "food", "hotel", "accommodation", "guesthouse",
			"guest house", "hostel", "b&b", "airbnb", "booking.com", "deliveroo",
			"just eat", "uber eats", "starbucks", "mcdonalds", "supermacs",
		},
		Boundary: []string{"bar", "pub", "inn", "deli", "tavern"},
	}

	entertainment = textutils.KeywordSet{
		Substring: []string{
			"entertainment", "cinema", "cineworld", "odeon", "omniplex", "theatre",
			"theater", "concert", "netflix", "spotify", "disney+", "disney plus",
			"ticketmaster", "nightclub", "golf club", "bowling", "hospitality box",
		},
	}

	passengerVehicle = textutils.KeywordSet{
		Substring: []string{
			"car lease", "car leasing", "car purchase", "vehicle lease", "vehicle leasing",
			"vehicle purchase", "car dealer", "car dealership", "motor dealer",
		},
		Boundary: []string{"pcp"},
	}

	petrol = textutils.KeywordSet{Substring: []string{"petrol", "unleaded", "gasoline"}}

	diesel = textutils.KeywordSet{Substring: []string{"diesel", "derv"}}

	fuel = textutils.KeywordSet{Substring: []string{"fuel"}}

	mixedFuelRetailers = textutils.KeywordSet{
		Substring: []string{"applegreen", "circle k", "emo oil", "top oil"},
		Boundary:  []string{"maxol", "texaco", "topaz", "esso", "inver"},
	}

	personal = textutils.KeywordSet{
		Substring: []string{"personal", "private", "non-business", "non business", "household"},
	}

	bank = textutils.KeywordSet{Substring: []string{"bank"}}

	bankCharge = textutils.KeywordSet{Substring: []string{"fee", "charge"}}

	insurance = textutils.KeywordSet{
		Substring: []string{"insurance", "assurance", "insurer", "vhi", "laya"},
	}

	finesPenalties = []*regexp.Regexp{
		regexp.MustCompile(`\bfines?\b`),
		regexp.MustCompile(`\bpenalt(y|ies)\b`),
	}

	drawings = textutils.KeywordSet{
		Substring: []string{"drawings", "director's loan", "directors loan", "director loan"},
	}
)

// Rate families used to suggest a VAT rate for a purchase.
var (
	reducedRateSupplies = textutils.KeywordSet{
		Substring: []string{
			"electricity", "electric ireland", "gas", "heating oil", "kerosene",
			"waste", "recycling", "skip hire", "building work", "repairs", "cleaning",
		},
	}
	secondReducedSupplies = textutils.KeywordSet{
		Substring: []string{"hairdress", "barber", "newspaper", "admission"},
	}
	zeroRatedSupplies = textutils.KeywordSet{
		Substring: []string{"books", "bookshop", "children's clothing", "seeds", "medicine"},
	}
	exemptSupplies = textutils.KeywordSet{
		Substring: []string{
			"insurance", "bank", "medical", "dental", "doctor", "hospital",
			"tuition", "college", "university", "ryanair", "aer lingus", "irish rail",
			"bus eireann", "dublin bus", "luas", "taxi", "an post", "stamps",
		},
	}
)

func matchesAny(s string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
