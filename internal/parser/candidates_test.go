package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisrunning/civic-research/internal/model"
)

func TestParseCandidates(t *testing.T) {
	content := `1. **Jane Doe** - Office: Governor of Texas
2. **John Roe** (R), running for State Senate`

	params := model.SearchParams{State: "Texas", County: "Travis", City: "Austin"}
	got := ParseCandidates(content, params)
	require.Len(t, got, 2)

	assert.Equal(t, "jane-doe", got[0].ID)
	assert.Equal(t, "Governor of Texas", got[0].Office)
	assert.Equal(t, "Texas", got[0].State)
	assert.Equal(t, "Travis", got[0].County)
	assert.Equal(t, "Austin", got[0].City)

	assert.Equal(t, model.PartyRepublican, got[1].Party)
	assert.Contains(t, got[1].Office, "State Senate")
}

func TestParseCandidatesBackfillsFromParams(t *testing.T) {
	got := ParseCandidates("1. **Jane Doe**", model.SearchParams{State: "Ohio", Office: "Mayor"})
	require.Len(t, got, 1)
	assert.Equal(t, "Ohio", got[0].State)
	assert.Equal(t, "Mayor", got[0].Office)
}

func TestParseCandidatesDefaults(t *testing.T) {
	got := ParseCandidates("1. **Jane Doe**", model.SearchParams{})
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown", got[0].State)
	assert.Equal(t, "Unknown Office", got[0].Office)
	assert.Equal(t, model.PartyUnknown, got[0].Party)
}

func TestParseCandidatesEmptyResponse(t *testing.T) {
	assert.Empty(t, ParseCandidates("A narrative with no list items.", model.SearchParams{}))
}

func TestParseDetail(t *testing.T) {
	profile := `Jane Doe is a Democrat currently serves as Lieutenant Governor of California. ` +
		`She began her career as a teacher in Oakland. She later led the state education board.`
	ideology := `She supports expanding healthcare coverage to all residents of the state. ` +
		`On climate, she has proposed aggressive emission targets for the energy sector. ` +
		`"We must invest in public education for every child in this state," she said on March 3, 2025. ` +
		`She believes criminal justice reform should prioritize rehabilitation programs.`
	resources := `Watch https://www.youtube.com/watch?v=abc123 and read ` +
		`https://news.example.com/jane-doe-profile plus https://paper.example.org/interview.`

	c := ParseDetail("jane-doe", "Jane Doe", profile, ideology, resources)

	assert.Equal(t, "jane-doe", c.ID)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, model.PartyDemocrat, c.Party)
	assert.Equal(t, "Lieutenant Governor of California", c.Office)
	assert.Equal(t, "California", c.State)
	assert.NotEmpty(t, c.Bio)

	assert.Contains(t, c.Ideology, "Healthcare Reform")
	assert.Contains(t, c.Ideology, "Environmental Protection")
	assert.Contains(t, c.Ideology, "Education")
	assert.Contains(t, c.Ideology, "Criminal Justice Reform")

	assert.NotEmpty(t, c.KeyPositions)
	require.Len(t, c.Quotes, 1)
	assert.Contains(t, c.Quotes[0].Text, "public education")
	assert.Equal(t, "2025-03-03", c.Quotes[0].Date)

	require.Len(t, c.Resources, 3)
	assert.Equal(t, model.ResourceVideo, c.Resources[0].Type)
	assert.Equal(t, model.ResourceArticle, c.Resources[1].Type)
}

func TestParseDetailEmptyBlocks(t *testing.T) {
	c := ParseDetail("x-y", "Some Name", "", "", "")
	assert.Equal(t, "x-y", c.ID)
	assert.Equal(t, model.PartyUnknown, c.Party)
	assert.Equal(t, "Political Office", c.Office)
	assert.Equal(t, "United States", c.State)
	assert.Equal(t, []string{"Public Service"}, c.Ideology)
	assert.Empty(t, c.Quotes)
	assert.Empty(t, c.Resources)
}

func TestParseDetailArticleCap(t *testing.T) {
	resources := "https://a.example/1 https://b.example/2 https://c.example/3 https://d.example/4"
	c := ParseDetail("id", "Name Here", "", "", resources)
	assert.Len(t, c.Resources, 3, "article resources are capped")
}
