package research

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/whoisrunning/civic-research/internal/model"
)

const (
	candidateSystemPrompt = "You are a political research assistant providing factual, unbiased information about political candidates."
	officialsSystemPrompt = "You are a political research assistant providing factual information about current elected officials."
	impactSystemPrompt    = "You are a policy analysis assistant that provides factual, unbiased information about how local and state policies affect different demographic groups. Focus on objective policy impacts without political bias. Always cite sources when possible. Structure your response with clear category headers and specific impacts."
)

const (
	trendingPrompt = "List the top 5 most talked about political candidates in the news right now in the United States. Include their name, party, office they're running for or currently hold, state, and why they're trending."
	winnersPrompt  = "List the most recent election winners in the United States (within the last 3 months). Include candidate name, party, office won, state/location, election date, and vote percentage if available."

	profilePrompt   = "Provide a comprehensive profile including: political party, current office or race, voting record highlights if applicable, education and career background, and recent news."
	ideologyPrompt  = "What are the key ideological positions and political philosophy? List specific policy stances on: healthcare, economy, climate/environment, education, criminal justice, immigration. Also provide 2-3 notable quotes with sources and dates."
	resourcesPrompt = "Find recent interviews, speeches, debates, or campaign videos with YouTube links. Also find recent news articles from major publications."
)

// searchPrompt builds the candidate search query from the caller's filters.
// A name search overrides the geographic filters.
func searchPrompt(params model.SearchParams) string {
	var b strings.Builder
	if params.Name != "" {
		b.WriteString("Find information about political candidate " + params.Name)
	} else {
		b.WriteString("List current political candidates")
		if params.Office != "" {
			b.WriteString(" running for " + params.Office)
		}
		if params.City != "" {
			b.WriteString(" in " + params.City)
		}
		if params.County != "" {
			b.WriteString(" in " + params.County + " County")
		}
		if params.State != "" {
			b.WriteString(" in " + params.State)
		}
	}
	b.WriteString(". For each candidate provide: full name, political party, office they're running for, current position (if any), 3-5 key political positions/ideology tags, brief bio (2-3 sentences), website URL if available, and recent news.")
	return b.String()
}

// officialsPrompt builds the elected-officials query for a location string
// such as "Austin, Travis County, Texas".
func officialsPrompt(location string) string {
	return `List ALL current elected officials serving in ` + location + `. Include:
- U.S. Senators (if state level)
- U.S. House Representatives (district specific)
- Governor (if state level)
- State Senators and Representatives (if city/county provided)
- Mayor (if city provided)
- County Commissioners or Board Members (if county provided)
- City Council members (if city provided)

For each official provide:
1. Full name
2. Exact office/title
3. Political party

Format as a numbered list. Focus on currently serving officials, not candidates.`
}

var usd = message.NewPrinter(language.AmericanEnglish)

// incomeBounds maps form income codes to dollar bounds. A zero upper bound
// means open-ended.
var incomeBounds = map[string][2]int{
	"<25k":     {0, 25_000},
	"25-50k":   {25_000, 50_000},
	"50-75k":   {50_000, 75_000},
	"75-100k":  {75_000, 100_000},
	"100-150k": {100_000, 150_000},
	"150k+":    {150_000, 0},
}

// FormatIncomeRange renders a form income code as prose, e.g.
// "25-50k" becomes "$25,000 - $50,000". Unknown codes pass through.
func FormatIncomeRange(code string) string {
	bounds, ok := incomeBounds[code]
	if !ok {
		return code
	}
	switch {
	case bounds[0] == 0:
		return usd.Sprintf("Less than $%d", bounds[1])
	case bounds[1] == 0:
		return usd.Sprintf("$%d or more", bounds[0])
	default:
		return usd.Sprintf("$%d - $%d", bounds[0], bounds[1])
	}
}

// locationString joins the populated parts of a location, most specific
// first.
func locationString(loc model.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.County, loc.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// impactPrompt builds the demographic policy analysis query. The prompt
// enumerates every policy category so the response comes back with headers
// the impact parser can section on.
func impactPrompt(profile model.DemographicProfile) string {
	loc := locationString(profile.Location)
	income := FormatIncomeRange(profile.IncomeRange)

	var b strings.Builder
	b.WriteString("Analyze how local and state policies in " + loc + " specifically impact people with these demographics:\n")
	b.WriteString("- Age: " + profile.AgeRange + " years old\n")
	b.WriteString("- Income: " + income + "\n")
	b.WriteString("- Race/Ethnicity: " + profile.RaceEthnicity + "\n")
	b.WriteString("- Education: " + profile.EducationLevel + "\n\n")
	b.WriteString("Focus on these policy areas and explain how current policies affect this demographic group:\n\n")
	b.WriteString("1. **Tax Policies**: State income tax, property tax, sales tax - how do rates and exemptions affect someone in this income bracket and location?\n\n")
	b.WriteString("2. **Education**: School funding, public education quality, college affordability programs, scholarships - how does this impact families or individuals at this age and education level?\n\n")
	b.WriteString("3. **Healthcare**: Healthcare access, Medicaid eligibility, insurance costs, health programs - what's available for someone at this income level and age?\n\n")
	b.WriteString("4. **Housing**: Rent control, property taxes, housing assistance programs, zoning laws - how affordable is housing for this income bracket in this area?\n\n")
	b.WriteString("5. **Employment**: Minimum wage laws, worker protections, job training programs, unemployment benefits - what protections and opportunities exist?\n\n")
	b.WriteString("6. **Transportation**: Public transit access, infrastructure quality, commute costs - what options and costs exist for someone at this income level?\n\n")
	b.WriteString("7. **Social Services**: Food assistance, childcare support, senior programs, disability services - what programs are available based on age, income, and location?\n\n")
	b.WriteString("For each policy area:\n")
	b.WriteString("- Name the specific policy or program\n")
	b.WriteString("- Explain how it directly affects someone with these exact demographics\n")
	b.WriteString("- Include dollar amounts, percentages, or concrete impacts when possible\n")
	b.WriteString("- Mention any recent changes (2023-2025)\n")
	b.WriteString("- Be specific to " + loc + "\n\n")
	b.WriteString("Focus on factual, objective impacts without political bias. Cite sources where possible.")
	return b.String()
}
