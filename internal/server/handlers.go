package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/payment"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	entries := s.deps.Research.Trending(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"trending": entries})
}

func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	winners := s.deps.Research.RecentWinners(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"winners": winners})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := model.SearchParams{
		Name:   strings.TrimSpace(q.Get("name")),
		State:  strings.TrimSpace(q.Get("state")),
		County: strings.TrimSpace(q.Get("county")),
		City:   strings.TrimSpace(q.Get("city")),
		Office: strings.TrimSpace(q.Get("office")),
	}
	if params == (model.SearchParams{}) {
		respondError(w, http.StatusBadRequest, "at least one search parameter is required")
		return
	}

	candidates, err := s.deps.Research.SearchCandidates(r.Context(), params)
	if err != nil {
		zap.L().Error("candidate search failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "candidate search failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (s *Server) handleCandidateDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		// Recover a display name from the slug when the client did not
		// send one.
		name = cases.Title(language.AmericanEnglish).String(strings.ReplaceAll(id, "-", " "))
	}

	candidate, err := s.deps.Research.CandidateDetail(r.Context(), id, name)
	if err != nil {
		zap.L().Error("candidate detail failed", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusBadGateway, "candidate lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, candidate)
}

func (s *Server) handlePoliticians(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location string `json:"location"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		respondError(w, http.StatusBadRequest, "location is required")
		return
	}

	officials, err := s.deps.Research.OfficialsByLocation(r.Context(), req.Location)
	if err != nil {
		zap.L().Error("officials lookup failed", zap.String("location", req.Location), zap.Error(err))
		respondError(w, http.StatusBadGateway, "officials lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"politicians": officials})
}

func (s *Server) handleCounties(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		respondError(w, http.StatusBadRequest, "state query parameter is required")
		return
	}

	counties, err := s.deps.Census.Counties(r.Context(), state)
	if err != nil {
		zap.L().Error("county lookup failed", zap.String("state", state), zap.Error(err))
		respondError(w, http.StatusBadGateway, "county lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"counties": counties})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		respondError(w, http.StatusBadRequest, "state query parameter is required")
		return
	}

	cities, err := s.deps.Census.Cities(r.Context(), state)
	if err != nil {
		zap.L().Error("city lookup failed", zap.String("state", state), zap.Error(err))
		respondError(w, http.StatusBadGateway, "city lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (s *Server) handleImpactAnalyze(w http.ResponseWriter, r *http.Request) {
	var profile model.DemographicProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	if profile.Location.State == "" {
		respondError(w, http.StatusBadRequest, "location.state is required")
		return
	}

	result, err := s.deps.Research.AnalyzeImpacts(r.Context(), profile)
	if err != nil {
		zap.L().Error("impact analysis failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "impact analysis failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req payment.CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	checkout, err := s.deps.Payments.CreateCheckout(r.Context(), req)
	if err != nil {
		zap.L().Error("checkout failed", zap.Error(err))
		respondError(w, http.StatusBadRequest, "could not create checkout session")
		return
	}
	respondJSON(w, http.StatusOK, checkout)
}

func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read payload")
		return
	}

	if err := s.deps.Payments.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		zap.L().Error("stripe webhook failed", zap.Error(err))
		respondError(w, http.StatusBadRequest, "webhook rejected")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (s *Server) handleErrorReport(w http.ResponseWriter, r *http.Request) {
	var report model.ErrorReport
	if !decodeBody(w, r, &report) {
		return
	}

	if err := s.deps.Community.SubmitReport(r.Context(), &report); err != nil {
		respondError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Error report submitted successfully",
	})
}

type statsResponse struct {
	Contributions *model.ContributionStats `json:"contributions"`
	Research      struct {
		Queries      int     `json:"queries"`
		CacheHits    int     `json:"cache_hits"`
		CacheEntries int     `json:"cache_entries"`
		CostUSD      float64 `json:"cost_usd"`
		BreakerState string  `json:"breaker_state"`
	} `json:"research"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Store.ContributionStats(r.Context())
	if err != nil {
		zap.L().Error("contribution stats failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	var resp statsResponse
	resp.Contributions = stats
	totals := s.deps.Tracker.Totals()
	resp.Research.Queries = totals.Queries
	resp.Research.CacheHits = totals.CacheHits
	resp.Research.CacheEntries = s.deps.Research.CacheSize()
	resp.Research.CostUSD = totals.USD
	resp.Research.BreakerState = s.deps.Research.BreakerState()
	respondJSON(w, http.StatusOK, resp)
}
