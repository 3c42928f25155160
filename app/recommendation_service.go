// Package app orchestrates the domain/recommend core against the
// repository ports, translating domain sentinel errors into the
// application-level AppError taxonomy at the service boundary.
package app

import (
	"context"
	"errors"

	"fragrancerater/domain/core"
	"fragrancerater/domain/recommend"
	apperrors "fragrancerater/internal/errors"
	"fragrancerater/ports"
)

// RecommendationService wires the Affinity Aggregator, Scorer and Ranker
// against the Catalog and Ratings ports (spec §2 "Components, leaf first").
type RecommendationService struct {
	catalog ports.Catalog
	ratings ports.Ratings
	cfg     recommend.Config
}

// NewRecommendationService wires the ports with a fixed scoring Config.
func NewRecommendationService(catalog ports.Catalog, ratings ports.Ratings, cfg recommend.Config) *RecommendationService {
	return &RecommendationService{catalog: catalog, ratings: ratings, cfg: cfg}
}

// RecommendationRequest is the caller-facing input to Recommend.
type RecommendationRequest struct {
	ReviewerID   core.ReviewerID
	Limit        int
	ExcludeRated bool
}

// Recommend produces the top-N ranked recommendations for a reviewer
// (spec §4.3). It surfaces InsufficientData, NotFound, or Storage per
// spec §6's error surface.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendationRequest) ([]recommend.Recommendation, error) {
	exists, err := s.ratings.ReviewerExists(ctx, req.ReviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !exists {
		return nil, apperrors.NotFound("reviewer")
	}

	evaluations, err := s.ratings.EvaluationsOf(ctx, req.ReviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	profile := recommend.BuildProfile(reviewerFromID(req.ReviewerID), evaluations, s.cfg)

	if profile.EvaluationCount < s.cfg.MinEvaluations {
		return nil, apperrors.InsufficientData(profile.EvaluationCount, s.cfg.MinEvaluations)
	}

	exclude := map[core.FragranceID]struct{}{}
	if req.ExcludeRated {
		exclude, err = s.ratings.RatedFragranceIDs(ctx, req.ReviewerID)
		if err != nil {
			return nil, apperrors.Storage(err)
		}
	}

	candidates, err := s.catalog.IterCandidates(ctx, exclude)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	return recommend.Rank(profile, candidates, s.cfg, limit), nil
}

// IsNotFound reports whether err is the AppError produced when a
// reviewer or fragrance id is unknown, so callers at the HTTP boundary
// can map it to a 404 without depending on internal/errors directly.
func IsNotFound(err error) bool {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == apperrors.CodeNotFound
	}
	return false
}

// IsInsufficientData reports whether err is the AppError produced when a
// reviewer has too few evaluations (spec §6/§7), so callers at the HTTP
// boundary can map it to a client-visible status rather than a 500.
func IsInsufficientData(err error) bool {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == apperrors.CodeInsufficientData
	}
	return false
}
