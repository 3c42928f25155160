package ports

import (
	"context"

	"fragrancerater/domain/core"
	"fragrancerater/domain/reviewer"
)

// Ratings is the read-only view of a reviewer's evaluations spec §6 requires.
type Ratings interface {
	// ReviewerExists reports whether reviewerID is known, so the app layer
	// can surface ReviewerNotFound (spec §6) rather than silently treating
	// an unknown reviewer as a zero-evaluation one (SPEC_FULL.md §12).
	ReviewerExists(ctx context.Context, reviewerID core.ReviewerID) (bool, error)

	// GetReviewer returns the reviewer record itself, so callers that need
	// more than existence (the reviewer's display name, for explanation
	// text) don't have to re-derive it from evaluations.
	GetReviewer(ctx context.Context, reviewerID core.ReviewerID) (*reviewer.Reviewer, error)

	// EvaluationsOf returns every (Evaluation, Fragrance) pair for a
	// reviewer, Fragrance pre-loaded with notes and accords (spec §6).
	EvaluationsOf(ctx context.Context, reviewerID core.ReviewerID) ([]reviewer.RatedEvaluation, error)

	// RatedFragranceIDs returns the set of fragrance ids a reviewer has
	// already evaluated, for ranker exclusion (spec §4.3).
	RatedFragranceIDs(ctx context.Context, reviewerID core.ReviewerID) (map[core.FragranceID]struct{}, error)
}

// EvaluationWriter lets a caller record or update a rating (SPEC_FULL.md
// §12, grounded in original_source's api/evaluations.py). Not consumed by
// the core; the core only ever reads ratings (spec §6).
type EvaluationWriter interface {
	RecordEvaluation(ctx context.Context, e reviewer.Evaluation) error
}
