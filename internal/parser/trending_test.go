package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisrunning/civic-research/internal/model"
)

func TestParseTrending(t *testing.T) {
	content := `1. **Jane Doe** - Governor - Party: Democrat
2. **Michael Chen** - running for US Senate in New York (R)`

	got := ParseTrending(content)
	require.Len(t, got, 2)

	assert.Equal(t, "jane-doe", got[0].ID)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Contains(t, got[0].Office, "Governor")
	assert.Equal(t, model.PartyDemocrat, got[0].Party)
	assert.Equal(t, "United States", got[0].State, "no state in text falls back")
	assert.True(t, got[0].Estimated)
	assert.GreaterOrEqual(t, got[0].SearchCount, 5000)
	assert.Equal(t, model.TrendUp, got[0].Trend)

	assert.Equal(t, "michael-chen", got[1].ID)
	assert.Equal(t, model.PartyRepublican, got[1].Party)
	assert.Equal(t, "New York", got[1].State)
}

func TestParseTrendingExplicitPercent(t *testing.T) {
	got := ParseTrending("1. **Jane Doe** - Governor - searches up 34.5% this week")
	require.Len(t, got, 1)
	assert.Equal(t, 34.5, got[0].PercentChange)
	assert.False(t, got[0].Estimated, "extracted numbers are not placeholders")
}

func TestParseTrendingRandomnessDoesNotAffectIdentity(t *testing.T) {
	content := "1. **Jane Doe** - Governor\n2. **John Roe** - Mayor"
	a := ParseTrending(content)
	b := ParseTrending(content)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Office, b[i].Office)
	}
}

func TestParseTrendingNoLists(t *testing.T) {
	assert.Empty(t, ParseTrending("No structured data in this narrative response."))
}

func TestParseWinners(t *testing.T) {
	content := `1. **Glenn Youngkin**
   - Party: Republican
   - Office Won: Governor
   - State: Virginia
   - Election Date: November 2, 2021
   - Vote Percentage: 51%
2. **Eric Adams**
   - Party: Democrat
   - Office Won: Mayor
   - State: New York`

	got := ParseWinners(content)
	require.Len(t, got, 2)

	assert.Equal(t, "glenn-youngkin", got[0].ID)
	assert.Equal(t, "Governor", got[0].Office)
	assert.Equal(t, "November 2, 2021", got[0].ElectionDate)
	assert.Equal(t, 51.0, got[0].VotePercentage)
	assert.False(t, got[0].Estimated)

	// Missing date and vote share get synthetic values and the flag.
	assert.True(t, got[1].Estimated)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), got[1].ElectionDate)
	assert.GreaterOrEqual(t, got[1].VotePercentage, 50.0)
}

func TestParseOfficials(t *testing.T) {
	content := `1. **Alexandra Smith** - Office: U.S. Senator (D)
2. **James Lee** - Title: Mayor - Party: Republican
3. **Dana Fox** - City Council Member`

	got := ParseOfficials(content)
	require.Len(t, got, 3)
	assert.Equal(t, "alexandra-smith", got[0].ID)
	assert.Equal(t, "U.S. Senator (D)", got[0].Office)
	assert.Equal(t, model.PartyDemocrat, got[0].Party)
	assert.Equal(t, model.PartyRepublican, got[1].Party)
	assert.Equal(t, model.PartyUnknown, got[2].Party)
}
