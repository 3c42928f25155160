package memory

import (
	"context"
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/reviewer"
)

func TestReviewerExistsRequiresRegistration(t *testing.T) {
	cat := NewCatalogFrom(sampleFragrances())
	r := NewRatings(cat)

	exists, err := r.ReviewerExists(context.Background(), core.ReviewerID("rev-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected unregistered reviewer to not exist")
	}

	r.RegisterReviewer(reviewer.Reviewer{ID: core.ReviewerID("rev-1")})
	exists, err = r.ReviewerExists(context.Background(), core.ReviewerID("rev-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected registered reviewer to exist")
	}
}

func TestRecordEvaluationHydratesFragrance(t *testing.T) {
	cat := NewCatalogFrom(sampleFragrances())
	r := NewRatings(cat)

	eval := reviewer.Evaluation{
		ID:          core.EvaluationID("e1"),
		FragranceID: core.FragranceID("f1"),
		ReviewerID:  core.ReviewerID("rev-1"),
		Rating:      5,
	}
	if err := r.RecordEvaluation(context.Background(), eval); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evals, err := r.EvaluationsOf(context.Background(), core.ReviewerID("rev-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("expected 1 evaluation, got %d", len(evals))
	}
	if evals[0].Fragrance.Name != "Alpha" {
		t.Fatalf("expected hydrated fragrance name Alpha, got %q", evals[0].Fragrance.Name)
	}
}

func TestRecordEvaluationUpsertsByFragrance(t *testing.T) {
	cat := NewCatalogFrom(sampleFragrances())
	r := NewRatings(cat)

	base := reviewer.Evaluation{ID: core.EvaluationID("e1"), FragranceID: core.FragranceID("f1"), ReviewerID: core.ReviewerID("rev-1"), Rating: 3}
	if err := r.RecordEvaluation(context.Background(), base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := base
	updated.Rating = 5
	if err := r.RecordEvaluation(context.Background(), updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evals, err := r.EvaluationsOf(context.Background(), core.ReviewerID("rev-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("expected upsert to keep a single evaluation, got %d", len(evals))
	}
	if evals[0].Evaluation.Rating != 5 {
		t.Fatalf("expected updated rating 5, got %d", evals[0].Evaluation.Rating)
	}
}

func TestRatedFragranceIDsReflectsRecordedEvaluations(t *testing.T) {
	cat := NewCatalogFrom(sampleFragrances())
	r := NewRatings(cat)

	_ = r.RecordEvaluation(context.Background(), reviewer.Evaluation{FragranceID: core.FragranceID("f1"), ReviewerID: core.ReviewerID("rev-1"), Rating: 4})
	_ = r.RecordEvaluation(context.Background(), reviewer.Evaluation{FragranceID: core.FragranceID("f2"), ReviewerID: core.ReviewerID("rev-1"), Rating: 2})

	rated, err := r.RatedFragranceIDs(context.Background(), core.ReviewerID("rev-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rated) != 2 {
		t.Fatalf("expected 2 rated fragrances, got %d", len(rated))
	}
	if _, ok := rated[core.FragranceID("f3")]; ok {
		t.Fatal("f3 was never rated")
	}
}
