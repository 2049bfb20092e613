package model

import "time"

// PolicyCategory is one of the fixed policy areas the impact report covers.
type PolicyCategory string

const (
	CategoryTax            PolicyCategory = "Tax Policies"
	CategoryEducation      PolicyCategory = "Education"
	CategoryHealthcare     PolicyCategory = "Healthcare"
	CategoryHousing        PolicyCategory = "Housing"
	CategoryEmployment     PolicyCategory = "Employment"
	CategoryTransportation PolicyCategory = "Transportation"
	CategorySocialServices PolicyCategory = "Social Services"
)

// PolicyCategories lists every category in report order.
var PolicyCategories = []PolicyCategory{
	CategoryTax,
	CategoryEducation,
	CategoryHealthcare,
	CategoryHousing,
	CategoryEmployment,
	CategoryTransportation,
	CategorySocialServices,
}

// PolicyImpact is one parsed policy effect for a demographic group.
type PolicyImpact struct {
	Category    PolicyCategory `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Source      string         `json:"source,omitempty"`
}

// Location pins a demographic profile to a place. State is required.
type Location struct {
	State  string `json:"state"`
	County string `json:"county,omitempty"`
	City   string `json:"city,omitempty"`
}

// DemographicProfile describes the person the impact analysis is run for.
type DemographicProfile struct {
	AgeRange       string   `json:"age_range"`
	IncomeRange    string   `json:"income_range"`
	RaceEthnicity  string   `json:"race_ethnicity"`
	EducationLevel string   `json:"education_level"`
	Location       Location `json:"location"`
}

// Form option sets for the demographic profile fields.
var (
	AgeRanges       = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
	IncomeRanges    = []string{"<25k", "25-50k", "50-75k", "75-100k", "100-150k", "150k+"}
	EducationLevels = []string{"High School or Less", "Some College", "Bachelor's Degree", "Graduate Degree"}
)

// Citation is a source URL attached to a research response.
type Citation struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
}

// ImpactAnalysisResult is the full output of a demographic policy analysis.
type ImpactAnalysisResult struct {
	Demographics DemographicProfile `json:"demographics"`
	Impacts      []PolicyImpact     `json:"impacts"`
	Summary      string             `json:"summary"`
	Citations    []Citation         `json:"citations"`
	Timestamp    time.Time          `json:"timestamp"`
}
