// Package research orchestrates queries against the research backend and
// turns the free-text answers into structured records. Every public lookup
// runs through the same pipeline: cache, circuit breaker, retry, parse,
// quality gate.
package research

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/whoisrunning/civic-research/internal/cost"
	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/parser"
	"github.com/whoisrunning/civic-research/internal/resilience"
	"github.com/whoisrunning/civic-research/pkg/research"
)

// DefaultMinRecords is the quality gate threshold: a parse that yields
// fewer records than this is treated as a failed extraction and replaced
// with fallback data.
const DefaultMinRecords = 2

// Config tunes the research service.
type Config struct {
	// MinRecords overrides the quality gate threshold. Default: 2.
	MinRecords int

	// CacheTTL overrides how long responses are cached. Default: 24h.
	CacheTTL time.Duration

	// Retry controls retries of upstream calls.
	Retry resilience.RetryConfig

	// Breaker controls the upstream circuit breaker.
	Breaker resilience.CircuitBreakerConfig
}

// Service answers civic lookups by querying the research backend and
// parsing its responses.
type Service struct {
	client  research.Client
	cache   *Cache
	tracker *cost.Tracker
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig

	minRecords int
}

// NewService creates a Service around a research backend.
func NewService(client research.Client, tracker *cost.Tracker, cfg Config) *Service {
	minRecords := cfg.MinRecords
	if minRecords <= 0 {
		minRecords = DefaultMinRecords
	}
	return &Service{
		client:     client,
		cache:      NewCache(cfg.CacheTTL),
		tracker:    tracker,
		breaker:    resilience.NewCircuitBreaker(cfg.Breaker),
		retry:      cfg.Retry,
		minRecords: minRecords,
	}
}

// do runs one research request through cache, circuit breaker and retry.
func (s *Service) do(ctx context.Context, req research.Request) (*research.Response, error) {
	if cached := s.cache.Get(req); cached != nil {
		if s.tracker != nil {
			s.tracker.RecordCacheHit()
		}
		zap.L().Debug("research cache hit", zap.String("query", req.Query))
		return cached, nil
	}

	retryCfg := s.retry
	if retryCfg.OnRetry == nil {
		retryCfg.OnRetry = resilience.RetryLogger("research", "query")
	}

	resp, err := resilience.Call(ctx, s.breaker, func(ctx context.Context) (*research.Response, error) {
		return resilience.Do(ctx, retryCfg, func(ctx context.Context) (*research.Response, error) {
			return s.client.Research(ctx, req)
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "research: query backend")
	}

	s.recordCost(resp)
	s.cache.Put(req, resp)
	return resp, nil
}

func (s *Service) recordCost(resp *research.Response) {
	if s.tracker == nil {
		return
	}
	if strings.HasPrefix(resp.Model, "claude") {
		s.tracker.RecordClaude(resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		return
	}
	s.tracker.RecordPerplexity()
}

// Trending returns the most talked about candidates. Backend failures and
// thin parses both degrade to the fallback list, whose entries are marked
// Estimated.
func (s *Service) Trending(ctx context.Context) []model.TrendingEntry {
	resp, err := s.do(ctx, research.Request{Query: trendingPrompt, System: candidateSystemPrompt})
	if err != nil {
		zap.L().Warn("trending lookup failed, serving fallback", zap.Error(err))
		return parser.FallbackTrending()
	}

	entries := parser.ParseTrending(resp.Content)
	if len(entries) < s.minRecords {
		zap.L().Warn("trending parse below quality gate, serving fallback",
			zap.Int("parsed", len(entries)),
			zap.Int("min", s.minRecords))
		return parser.FallbackTrending()
	}
	return entries
}

// RecentWinners returns recent election winners, degrading to fallback
// data the same way Trending does.
func (s *Service) RecentWinners(ctx context.Context) []model.WinnerEntry {
	resp, err := s.do(ctx, research.Request{Query: winnersPrompt, System: candidateSystemPrompt})
	if err != nil {
		zap.L().Warn("winners lookup failed, serving fallback", zap.Error(err))
		return parser.FallbackWinners()
	}

	entries := parser.ParseWinners(resp.Content)
	if len(entries) < s.minRecords {
		zap.L().Warn("winners parse below quality gate, serving fallback",
			zap.Int("parsed", len(entries)),
			zap.Int("min", s.minRecords))
		return parser.FallbackWinners()
	}
	return entries
}

// SearchCandidates looks up candidates matching the given filters. Unlike
// the landing-page lists there is no fallback data set for an arbitrary
// search, so errors propagate.
func (s *Service) SearchCandidates(ctx context.Context, params model.SearchParams) ([]model.Candidate, error) {
	resp, err := s.do(ctx, research.Request{
		Query:   searchPrompt(params),
		Context: "Format the response as a structured list of candidates.",
		System:  candidateSystemPrompt,
	})
	if err != nil {
		return nil, err
	}
	return parser.ParseCandidates(resp.Content, params), nil
}

// CandidateDetail assembles a full candidate profile from three parallel
// research queries: biography, ideology, and media resources.
func (s *Service) CandidateDetail(ctx context.Context, id, name string) (*model.Candidate, error) {
	var profile, ideology, resources *research.Response

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = s.do(gctx, research.Request{Query: profilePrompt, CandidateName: name, System: candidateSystemPrompt})
		return err
	})
	g.Go(func() (err error) {
		ideology, err = s.do(gctx, research.Request{Query: ideologyPrompt, CandidateName: name, System: candidateSystemPrompt})
		return err
	})
	g.Go(func() (err error) {
		resources, err = s.do(gctx, research.Request{Query: resourcesPrompt, CandidateName: name, System: candidateSystemPrompt})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "research: candidate detail for %s", name)
	}

	candidate := parser.ParseDetail(id, name, profile.Content, ideology.Content, resources.Content)
	return &candidate, nil
}

// OfficialsByLocation lists currently serving elected officials for a
// location string such as "Austin, Travis County, Texas".
func (s *Service) OfficialsByLocation(ctx context.Context, location string) ([]model.ElectedOfficial, error) {
	if strings.TrimSpace(location) == "" {
		return nil, eris.New("research: location is required")
	}

	resp, err := s.do(ctx, research.Request{Query: officialsPrompt(location), System: officialsSystemPrompt})
	if err != nil {
		return nil, err
	}
	return parser.ParseOfficials(resp.Content), nil
}

// AnalyzeImpacts runs the demographic policy analysis. The profile must
// carry at least a state.
func (s *Service) AnalyzeImpacts(ctx context.Context, profile model.DemographicProfile) (*model.ImpactAnalysisResult, error) {
	if profile.Location.State == "" {
		return nil, eris.New("research: location state is required")
	}

	resp, err := s.do(ctx, research.Request{Query: impactPrompt(profile), System: impactSystemPrompt})
	if err != nil {
		return nil, err
	}

	impacts := parser.ParseImpacts(resp.Content)
	zap.L().Info("impact analysis parsed",
		zap.String("state", profile.Location.State),
		zap.Int("impacts", len(impacts)))

	citations := make([]model.Citation, 0, len(resp.Citations))
	for _, url := range resp.Citations {
		citations = append(citations, model.Citation{URL: url, Title: url})
	}

	return &model.ImpactAnalysisResult{
		Demographics: profile,
		Impacts:      impacts,
		Summary:      Summary(profile, impacts),
		Citations:    citations,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// CacheSize reports the number of cached research responses.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}

// BreakerState reports the upstream circuit breaker state.
func (s *Service) BreakerState() string {
	return s.breaker.State().String()
}

// Summary renders a one-paragraph recap of an impact analysis.
func Summary(profile model.DemographicProfile, impacts []model.PolicyImpact) string {
	seen := make(map[model.PolicyCategory]bool, len(impacts))
	for _, impact := range impacts {
		seen[impact.Category] = true
	}
	categories := make([]string, 0, len(seen))
	for _, cat := range model.PolicyCategories {
		if seen[cat] {
			categories = append(categories, string(cat))
		}
	}

	var b strings.Builder
	b.WriteString("Based on your demographic profile (")
	b.WriteString(profile.AgeRange)
	b.WriteString(", ")
	b.WriteString(FormatIncomeRange(profile.IncomeRange))
	b.WriteString(") in ")
	b.WriteString(locationString(profile.Location))
	b.WriteString(", we found ")
	b.WriteString(usd.Sprintf("%d relevant policy impacts across %d categories", len(impacts), len(categories)))
	if len(categories) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(categories, ", "))
	}
	b.WriteString(". These policies directly affect your daily life, from taxes and healthcare to education and employment.")
	return b.String()
}
