package app

import (
	"context"

	"fragrancerater/ai"
	"fragrancerater/domain/core"
	"fragrancerater/domain/recommend"
	apperrors "fragrancerater/internal/errors"
	"fragrancerater/ports"
)

// ExplanationService gathers the context an Explanation Adapter needs
// (a reviewer's Profile, the candidate fragrance, its match result) and
// wraps ai.ExplanationAdapter (spec §4.5).
type ExplanationService struct {
	catalog  ports.Catalog
	ratings  ports.Ratings
	profiles *ProfileService
	adapter  *ai.ExplanationAdapter
	cfg      recommend.Config
}

// NewExplanationService wires the catalog and ratings ports, the profile
// service, and the adapter together. The ratings port supplies the
// reviewer's actual display name (spec §4.5's "<name>" fallback clause),
// rather than leaving callers to pass the bare reviewer id.
func NewExplanationService(catalog ports.Catalog, ratings ports.Ratings, profiles *ProfileService, adapter *ai.ExplanationAdapter, cfg recommend.Config) *ExplanationService {
	return &ExplanationService{catalog: catalog, ratings: ratings, profiles: profiles, adapter: adapter, cfg: cfg}
}

// ExplainRecommendation scores fragranceID against reviewerID's profile
// and returns an explanation for that match. A missing reviewer or
// fragrance, or a storage failure, is returned as an AppError (distinct
// from the adapter's own never-failing contract, spec §4.5); once both
// are resolved the adapter's fallback guarantees a result.
func (s *ExplanationService) ExplainRecommendation(ctx context.Context, reviewerID core.ReviewerID, fragranceID core.FragranceID) (*ai.Explanation, error) {
	p, err := s.profiles.buildProfile(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	f, err := s.catalog.GetFragrance(ctx, fragranceID)
	if err != nil {
		return nil, apperrors.NotFound("fragrance")
	}

	reviewerName, err := s.reviewerName(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	match := recommend.Score(p, *f, s.cfg)
	explanation := s.adapter.ExplainRecommendation(ctx, p, reviewerName, *f, match)
	return &explanation, nil
}

// ExplainProfile returns a natural-language summary of reviewerID's
// preferences.
func (s *ExplanationService) ExplainProfile(ctx context.Context, reviewerID core.ReviewerID) (*ai.Explanation, error) {
	p, err := s.profiles.buildProfile(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	reviewerName, err := s.reviewerName(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	explanation := s.adapter.ExplainProfile(ctx, p, reviewerName)
	return &explanation, nil
}

func (s *ExplanationService) reviewerName(ctx context.Context, reviewerID core.ReviewerID) (string, error) {
	rv, err := s.ratings.GetReviewer(ctx, reviewerID)
	if err != nil {
		return "", apperrors.Storage(err)
	}
	return rv.Name, nil
}
