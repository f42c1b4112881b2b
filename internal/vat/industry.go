package vat

import (
	"strings"

	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
)

// IndustryGroup buckets a free-text industry for rate and alignment purposes.
type IndustryGroup string

const (
	GroupConstruction IndustryGroup = "construction"
	GroupProfessional IndustryGroup = "professional_services"
	GroupTechnology   IndustryGroup = "technology"
	GroupHospitality  IndustryGroup = "hospitality"
	GroupRetail       IndustryGroup = "retail"
	GroupUnknown      IndustryGroup = "unknown"
)

var industryGroups = []struct {
	group    IndustryGroup
	keywords []string
}{
	{GroupConstruction, []string{
		"construction", "carpentry", "joinery", "electrical", "electrician", "plumbing",
		"plumber", "building", "builder", "roofing", "plastering", "painting", "decorating",
		"tiling", "bricklaying", "groundworks", "landscaping", "civil_engineering", "trades",
	}},
	{GroupTechnology, []string{
		"technology", "software", "it_services", "saas", "web_development", "developer",
		"data", "digital", "tech",
	}},
	{GroupProfessional, []string{
		"professional", "consulting", "consultancy", "accounting", "accountant", "legal",
		"solicitor", "architecture", "engineering", "design", "marketing", "finance",
	}},
	{GroupHospitality, []string{
		"hospitality", "restaurant", "cafe", "catering", "hotel", "accommodation", "food_service",
	}},
	{GroupRetail, []string{"retail", "ecommerce", "e_commerce", "shop", "wholesale"}},
}

// normalizeIndustry turns "Carpentry & Joinery" into "carpentry_&_joinery".
func normalizeIndustry(industry string) string {
	return strings.ReplaceAll(strings.ReplaceAll(textutils.Normalize(industry), " ", "_"), "-", "_")
}

// ClassifyIndustry maps a free-text industry to its group.
func ClassifyIndustry(industry string) IndustryGroup {
	norm := normalizeIndustry(industry)
	if norm == "" {
		return GroupUnknown
	}
	for _, g := range industryGroups {
		for _, kw := range g.keywords {
			if strings.Contains(norm, kw) {
				return g.group
			}
		}
	}
	return GroupUnknown
}

// IndustryDefaultRate is the usual output VAT rate for an industry's sales.
func IndustryDefaultRate(industry string) string {
	switch ClassifyIndustry(industry) {
	case GroupConstruction:
		return models.VATReduced
	case GroupHospitality:
		return models.VATSecondReduced
	}
	return models.VATStandard
}
