package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whoisrunning/civic-research/internal/model"
)

func TestSearchPrompt(t *testing.T) {
	tests := []struct {
		name   string
		params model.SearchParams
		want   []string
		absent []string
	}{
		{
			name:   "name search overrides location filters",
			params: model.SearchParams{Name: "Jane Doe", State: "Georgia"},
			want:   []string{"Find information about political candidate Jane Doe"},
			absent: []string{"Georgia"},
		},
		{
			name:   "full location filters",
			params: model.SearchParams{State: "Texas", County: "Travis", City: "Austin", Office: "Mayor"},
			want: []string{
				"List current political candidates running for Mayor in Austin in Travis County in Texas",
			},
		},
		{
			name:   "bare search",
			params: model.SearchParams{},
			want:   []string{"List current political candidates."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchPrompt(tt.params)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
			assert.Contains(t, got, "full name, political party")
		})
	}
}

func TestFormatIncomeRange(t *testing.T) {
	assert.Equal(t, "Less than $25,000", FormatIncomeRange("<25k"))
	assert.Equal(t, "$25,000 - $50,000", FormatIncomeRange("25-50k"))
	assert.Equal(t, "$100,000 - $150,000", FormatIncomeRange("100-150k"))
	assert.Equal(t, "$150,000 or more", FormatIncomeRange("150k+"))
	// Unknown codes pass through untouched.
	assert.Equal(t, "whatever", FormatIncomeRange("whatever"))
}

func TestImpactPromptCoversEveryCategory(t *testing.T) {
	prompt := impactPrompt(model.DemographicProfile{
		AgeRange:       "25-34",
		IncomeRange:    "50-75k",
		RaceEthnicity:  "Hispanic",
		EducationLevel: "Bachelor's Degree",
		Location:       model.Location{State: "Texas", County: "Travis", City: "Austin"},
	})

	for _, cat := range model.PolicyCategories {
		assert.Contains(t, prompt, "**"+string(cat)+"**")
	}
	assert.Contains(t, prompt, "Austin, Travis, Texas")
	assert.Contains(t, prompt, "$50,000 - $75,000")
	assert.Contains(t, prompt, "25-34 years old")
}

func TestOfficialsPrompt(t *testing.T) {
	prompt := officialsPrompt("Austin, Travis County, Texas")
	assert.True(t, strings.HasPrefix(prompt, "List ALL current elected officials serving in Austin, Travis County, Texas."))
	assert.Contains(t, prompt, "Format as a numbered list.")
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "Texas", locationString(model.Location{State: "Texas"}))
	assert.Equal(t, "Austin, Texas", locationString(model.Location{State: "Texas", City: "Austin"}))
	assert.Equal(t, "", locationString(model.Location{}))
}
