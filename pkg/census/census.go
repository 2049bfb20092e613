// Package census looks up county and place population data from the US
// Census Bureau open-data API. No API key is required.
package census

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.census.gov/data/2021/pep/population"

// stateFIPS maps USPS state codes to Census FIPS codes.
var stateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06", "CO": "08",
	"CT": "09", "DE": "10", "DC": "11", "FL": "12", "GA": "13", "HI": "15",
	"ID": "16", "IL": "17", "IN": "18", "IA": "19", "KS": "20", "KY": "21",
	"LA": "22", "ME": "23", "MD": "24", "MA": "25", "MI": "26", "MN": "27",
	"MS": "28", "MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38", "OH": "39",
	"OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45", "SD": "46",
	"TN": "47", "TX": "48", "UT": "49", "VT": "50", "VA": "51", "WA": "53",
	"WV": "54", "WI": "55", "WY": "56",
}

// StateFIPS returns the FIPS code for a USPS state abbreviation.
func StateFIPS(state string) (string, bool) {
	fips, ok := stateFIPS[strings.ToUpper(state)]
	return fips, ok
}

// County is one county within a state.
type County struct {
	Name     string `json:"name"`
	FIPS     string `json:"fips"`
	FullName string `json:"fullName"`
}

// City is one Census place, with its latest population estimate.
type City struct {
	Name       string `json:"name"`
	Population int    `json:"population"`
	FIPS       string `json:"fips"`
	FullName   string `json:"fullName"`
}

const (
	// minCityPopulation drops hamlets and CDPs too small to have local
	// elected offices worth surfacing.
	minCityPopulation = 5000
	maxCitiesPerState = 100
)

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit overrides the default request rate (5 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// Client calls the Census population API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Census API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(5, 5),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Counties returns all counties in a state, sorted by name.
func (c *Client) Counties(ctx context.Context, state string) ([]County, error) {
	fips, ok := StateFIPS(state)
	if !ok {
		return nil, eris.Errorf("census: unknown state code %q", state)
	}

	rows, err := c.get(ctx, "?get=NAME&for=county:*&in=state:"+fips)
	if err != nil {
		return nil, err
	}

	counties := make([]County, 0, len(rows))
	for _, row := range rows {
		// Row layout: [NAME, state, county].
		if len(row) < 3 {
			continue
		}
		counties = append(counties, County{
			Name:     cleanCountyName(row[0]),
			FIPS:     row[2],
			FullName: row[0],
		})
	}
	sort.Slice(counties, func(i, j int) bool { return counties[i].Name < counties[j].Name })
	return counties, nil
}

// Cities returns the largest Census places in a state, sorted by
// population descending. Places below minCityPopulation are dropped and
// the result is capped at maxCitiesPerState. The Census place dataset has
// no county dimension, so results always span the whole state.
func (c *Client) Cities(ctx context.Context, state string) ([]City, error) {
	fips, ok := StateFIPS(state)
	if !ok {
		return nil, eris.Errorf("census: unknown state code %q", state)
	}

	rows, err := c.get(ctx, "?get=NAME,POP&for=place:*&in=state:"+fips)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(rows))
	for _, row := range rows {
		// Row layout: [NAME, POP, state, place].
		if len(row) < 4 {
			continue
		}
		pop, err := strconv.Atoi(row[1])
		if err != nil || pop <= minCityPopulation {
			continue
		}
		cities = append(cities, City{
			Name:       cleanCityName(row[0]),
			Population: pop,
			FIPS:       row[3],
			FullName:   row[0],
		})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Population > cities[j].Population })
	if len(cities) > maxCitiesPerState {
		cities = cities[:maxCitiesPerState]
	}
	return cities, nil
}

// get fetches one query and decodes the Census row-of-strings layout,
// dropping the header row.
func (c *Client) get(ctx context.Context, query string) ([][]string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "census: rate limit wait")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+query, nil)
	if err != nil {
		return nil, eris.Wrap(err, "census: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "census: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "census: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("census: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, eris.Wrap(err, "census: unmarshal response")
	}
	if len(rows) == 0 {
		return nil, eris.New("census: empty response")
	}
	return rows[1:], nil
}

// cleanCountyName turns "Fulton County, Georgia" into "Fulton".
func cleanCountyName(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSuffix(name, " County")
}

// cleanCityName turns "Atlanta city, Georgia" into "Atlanta". Census
// place names carry a legal-entity suffix (city, town, village, CDP).
func cleanCityName(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	for _, suffix := range []string{" city", " town", " village", " CDP"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
