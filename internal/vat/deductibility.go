// Package vat implements the Irish VAT rules used to decide whether input VAT
// on a purchase is recoverable and which rate applies.
package vat

import (
	"fmt"
	"strings"

	"fjacquet/autocat/internal/textutils"
)

// Rule identifies which deductibility rule decided the verdict.
type Rule string

const (
	RuleFoodDrink           Rule = "food_drink_accommodation"
	RuleEntertainment       Rule = "entertainment"
	RulePassengerVehicle    Rule = "passenger_vehicle"
	RulePetrol              Rule = "petrol"
	RuleDiesel              Rule = "diesel"
	RuleMixedFuelRetailer   Rule = "mixed_fuel_retailer"
	RuleMixedFuelWithSignal Rule = "mixed_fuel_retailer_fuel"
	RulePersonal            Rule = "personal"
	RuleBankFee             Rule = "bank_fee"
	RuleInsurance           Rule = "insurance"
	RuleMealsCategory       Rule = "meals_category"
	RuleFinesPenalties      Rule = "fines_penalties"
	RuleDrawings            Rule = "drawings"
	RuleDefault             Rule = "default"
)

// Irish VAT Consolidation Act 2010 references.
const (
	SectionFoodDrink        = "Section 60(2)(a)(i)"
	SectionEntertainment    = "Section 60(2)(a)(iii)"
	SectionPassengerVehicle = "Section 60(2)(a)(iv)"
	SectionPetrol           = "Section 60(2)(a)(v)"
	SectionNonBusiness      = "Section 59"
)

// Deductibility is the verdict on whether input VAT can be reclaimed.
type Deductibility struct {
	IsDeductible bool
	Reason       string
	Section      string
	Rule         Rule
}

// Specific reports whether a rule other than the default decided the verdict.
func (d Deductibility) Specific() bool {
	return d.Rule != RuleDefault
}

// IsVATDeductible applies the deductibility rules in precedence order to the
// combined description, category and account text. The first rule that fires
// decides.
func IsVATDeductible(description, category, account string) Deductibility {
	text := textutils.Haystack(description, category, account)
	cat := textutils.Normalize(category)

	if kw, ok := foodDrinkAccommodation.Find(text); ok {
		return blocked(RuleFoodDrink, SectionFoodDrink, "food, drink or accommodation (%s)", kw)
	}
	if kw, ok := entertainment.Find(text); ok {
		return blocked(RuleEntertainment, SectionEntertainment, "entertainment (%s)", kw)
	}
	if kw, ok := passengerVehicle.Find(text); ok {
		return blocked(RulePassengerVehicle, SectionPassengerVehicle, "passenger vehicle purchase or lease (%s)", kw)
	}

	hasDiesel, hasPetrol := diesel.Has(text), petrol.Has(text)
	if hasPetrol && !hasDiesel {
		return blocked(RulePetrol, SectionPetrol, "petrol is not deductible")
	}
	if hasDiesel {
		return allowed(RuleDiesel, "diesel for business use")
	}

	if kw, ok := mixedFuelRetailers.Find(text); ok {
		if fuel.Has(text) {
			return allowed(RuleMixedFuelWithSignal, fmt.Sprintf("fuel purchase at %s", kw))
		}
		return Deductibility{
			IsDeductible: false,
			Reason:       fmt.Sprintf("mixed retailer (%s), no receipt showing diesel", kw),
			Rule:         RuleMixedFuelRetailer,
		}
	}

	if kw, ok := personal.Find(text); ok {
		return blocked(RulePersonal, SectionNonBusiness, "not for business purposes (%s)", kw)
	}
	if bank.Has(text) && bankCharge.Has(text) {
		return Deductibility{Reason: "bank charges are a VAT-exempt supply", Rule: RuleBankFee}
	}
	if insurance.Has(text) && !strings.Contains(text, "motor tax") {
		return Deductibility{Reason: "insurance is a VAT-exempt supply", Rule: RuleInsurance}
	}
	if strings.Contains(cat, "meals") || cat == "entertainment" {
		return blocked(RuleMealsCategory, SectionFoodDrink, "meals and entertainment category")
	}
	if matchesAny(text, finesPenalties) {
		return Deductibility{Reason: "fines and penalties carry no VAT", Rule: RuleFinesPenalties}
	}
	if drawings.Has(cat) {
		return Deductibility{Reason: "director's drawings or loan is a capital movement, not an expense", Rule: RuleDrawings}
	}

	return allowed(RuleDefault, "business expense")
}

func blocked(rule Rule, section, format string, args ...interface{}) Deductibility {
	return Deductibility{
		IsDeductible: false,
		Reason:       fmt.Sprintf(format, args...),
		Section:      section,
		Rule:         rule,
	}
}

func allowed(rule Rule, reason string) Deductibility {
	return Deductibility{IsDeductible: true, Reason: reason, Rule: rule}
}

// Fuel is the fuel type evidenced by a receipt or description.
type Fuel int

const (
	FuelUnknown Fuel = iota
	FuelDiesel
	FuelPetrol
)

// FuelType reports which fuel text evidences. Diesel wins when both appear.
func FuelType(text string) Fuel {
	norm := textutils.Normalize(text)
	switch {
	case diesel.Has(norm):
		return FuelDiesel
	case petrol.Has(norm):
		return FuelPetrol
	}
	return FuelUnknown
}
