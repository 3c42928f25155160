package memory

import (
	"context"
	"sync"

	"fragrancerater/domain/core"
	"fragrancerater/domain/reviewer"
)

// Ratings is an in-memory ports.Ratings backed by a per-reviewer slice of
// evaluations. It holds a Catalog reference so RecordEvaluation can
// hydrate each stored RatedEvaluation's Fragrance, matching the
// postgres adapter's eager-load contract (spec §6).
type Ratings struct {
	mu          sync.RWMutex
	catalog     *Catalog
	reviewers   map[core.ReviewerID]reviewer.Reviewer
	evaluations map[core.ReviewerID][]reviewer.RatedEvaluation
}

// NewRatings returns an empty Ratings store backed by catalog.
func NewRatings(catalog *Catalog) *Ratings {
	return &Ratings{
		catalog:     catalog,
		reviewers:   make(map[core.ReviewerID]reviewer.Reviewer),
		evaluations: make(map[core.ReviewerID][]reviewer.RatedEvaluation),
	}
}

func (r *Ratings) ReviewerExists(ctx context.Context, reviewerID core.ReviewerID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.reviewers[reviewerID]
	return ok, nil
}

func (r *Ratings) GetReviewer(ctx context.Context, reviewerID core.ReviewerID) (*reviewer.Reviewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.reviewers[reviewerID]
	if !ok {
		return nil, core.ErrReviewerNotFound
	}
	return &rv, nil
}

func (r *Ratings) EvaluationsOf(ctx context.Context, reviewerID core.ReviewerID) ([]reviewer.RatedEvaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	evals := r.evaluations[reviewerID]
	out := make([]reviewer.RatedEvaluation, len(evals))
	copy(out, evals)
	return out, nil
}

func (r *Ratings) RatedFragranceIDs(ctx context.Context, reviewerID core.ReviewerID) (map[core.FragranceID]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[core.FragranceID]struct{})
	for _, re := range r.evaluations[reviewerID] {
		out[re.Evaluation.FragranceID] = struct{}{}
	}
	return out, nil
}

func (r *Ratings) RecordEvaluation(ctx context.Context, e reviewer.Evaluation) error {
	f, err := r.catalog.GetFragrance(ctx, e.FragranceID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviewers[e.ReviewerID]; !ok {
		r.reviewers[e.ReviewerID] = reviewer.Reviewer{ID: e.ReviewerID}
	}

	rated := reviewer.RatedEvaluation{Evaluation: e, Fragrance: *f}

	evals := r.evaluations[e.ReviewerID]
	for i, existing := range evals {
		if existing.Evaluation.FragranceID == e.FragranceID {
			evals[i] = rated
			r.evaluations[e.ReviewerID] = evals
			return nil
		}
	}

	r.evaluations[e.ReviewerID] = append(evals, rated)
	return nil
}

// RegisterReviewer seeds a reviewer so ReviewerExists reports true without
// requiring a prior evaluation (used by test fixtures).
func (r *Ratings) RegisterReviewer(rv reviewer.Reviewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviewers[rv.ID] = rv
}
