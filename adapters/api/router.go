// Package api exposes the recommendation, profile and explanation
// services over HTTP, thin pass-through handlers around app's services
// (SPEC_FULL.md §11.4).
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"

	"fragrancerater/app"
	"fragrancerater/domain/core"
)

// Server wires the application services to a chi.Mux.
type Server struct {
	router       *chi.Mux
	recommend    *app.RecommendationService
	profiles     *app.ProfileService
	explanations *app.ExplanationService
	ratingStats  *app.RatingStatsService
}

// NewServer builds a Server with every service it depends on.
func NewServer(recommend *app.RecommendationService, profiles *app.ProfileService, explanations *app.ExplanationService, ratingStats *app.RatingStatsService) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		recommend:    recommend,
		profiles:     profiles,
		explanations: explanations,
		ratingStats:  ratingStats,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/reviewers/{id}/recommendations", s.handleRecommendations)
	s.router.Get("/reviewers/{id}/profile", s.handleProfile)
	s.router.Get("/reviewers/{id}/explanations/{fragranceId}", s.handleExplainRecommendation)
	s.router.Get("/reviewers/{id}/explanations/{fragranceId}.html", s.handleExplainRecommendationHTML)
	s.router.Get("/reviewers/{id}/summary", s.handleExplainProfile)
	s.router.Get("/reviewers/{id}/ratings/distribution", s.handleRatingDistribution)

	return s
}

// ServeHTTP satisfies http.Handler so Server can be passed to http.Server
// directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	excludeRated := r.URL.Query().Get("exclude_rated") != "false"

	recs, err := s.recommend.Recommend(r.Context(), app.RecommendationRequest{
		ReviewerID:   reviewerID,
		Limit:        limit,
		ExcludeRated: excludeRated,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))

	summary, err := s.profiles.GetProfile(r.Context(), reviewerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExplainRecommendation(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))
	fragranceID := core.FragranceID(chi.URLParam(r, "fragranceId"))

	explanation, err := s.explanations.ExplainRecommendation(r.Context(), reviewerID, fragranceID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, explanation)
}

// handleExplainRecommendationHTML renders the explanation text as HTML
// via gomarkdown, for embedding in a web view rather than consuming as
// raw JSON.
func (s *Server) handleExplainRecommendationHTML(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))
	fragranceID := core.FragranceID(chi.URLParam(r, "fragranceId"))

	explanation, err := s.explanations.ExplainRecommendation(r.Context(), reviewerID, fragranceID)
	if err != nil {
		writeError(w, err)
		return
	}

	html := markdown.ToHTML([]byte(explanation.Text), nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (s *Server) handleExplainProfile(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))

	explanation, err := s.explanations.ExplainProfile(r.Context(), reviewerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, explanation)
}

func (s *Server) handleRatingDistribution(w http.ResponseWriter, r *http.Request) {
	reviewerID := core.ReviewerID(chi.URLParam(r, "id"))

	dist, err := s.ratingStats.Distribution(r.Context(), reviewerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dist)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case app.IsNotFound(err):
		status = http.StatusNotFound
	case app.IsInsufficientData(err):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
