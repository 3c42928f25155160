package app

import (
	"context"

	"fragrancerater/domain/core"
	"fragrancerater/domain/profile"
	"fragrancerater/domain/recommend"
	apperrors "fragrancerater/internal/errors"
	"fragrancerater/ports"
)

// ProfileSummary is the Profile Query's caller-facing shape (spec §4.4).
type ProfileSummary struct {
	ReviewerID      core.ReviewerID
	EvaluationCount int
	TopLikedNotes   []profile.NoteScore
	TopDislikedNotes []profile.NoteScore
	TopAccords      []profile.KeyScore
	TopFamilies     []profile.KeyScore
}

// ProfileService exposes the derived Profile for display (spec §4.4).
type ProfileService struct {
	ratings ports.Ratings
	cfg     recommend.Config
}

// NewProfileService wires the ratings port with a fixed scoring Config.
func NewProfileService(ratings ports.Ratings, cfg recommend.Config) *ProfileService {
	return &ProfileService{ratings: ratings, cfg: cfg}
}

// GetProfile returns the profile summary for reviewerID, or NotFound if
// the reviewer is unknown.
func (s *ProfileService) GetProfile(ctx context.Context, reviewerID core.ReviewerID) (*ProfileSummary, error) {
	exists, err := s.ratings.ReviewerExists(ctx, reviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !exists {
		return nil, apperrors.NotFound("reviewer")
	}

	evaluations, err := s.ratings.EvaluationsOf(ctx, reviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	p := recommend.BuildProfile(reviewerFromID(reviewerID), evaluations, s.cfg)

	return &ProfileSummary{
		ReviewerID:       reviewerID,
		EvaluationCount:  p.EvaluationCount,
		TopLikedNotes:    recommend.TopLiked(p),
		TopDislikedNotes: recommend.TopDisliked(p),
		TopAccords:       recommend.TopKeys(p.AccordAffinity),
		TopFamilies:      recommend.TopKeys(p.FamilyAffinity),
	}, nil
}

// buildProfile is shared with ExplanationService, which needs the raw
// *profile.Profile rather than the flattened ProfileSummary.
func (s *ProfileService) buildProfile(ctx context.Context, reviewerID core.ReviewerID) (*profile.Profile, error) {
	exists, err := s.ratings.ReviewerExists(ctx, reviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !exists {
		return nil, apperrors.NotFound("reviewer")
	}

	evaluations, err := s.ratings.EvaluationsOf(ctx, reviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	return recommend.BuildProfile(reviewerFromID(reviewerID), evaluations, s.cfg), nil
}
