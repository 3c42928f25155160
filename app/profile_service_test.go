package app

import (
	"context"
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/recommend"
)

func TestGetProfileUnknownReviewerIsNotFound(t *testing.T) {
	_, cat, ratings := newFixture(t, 5)
	_ = cat

	svc := NewProfileService(ratings, recommend.DefaultConfig())
	_, err := svc.GetProfile(context.Background(), core.ReviewerID("ghost"))
	if !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetProfileReflectsEvaluationCount(t *testing.T) {
	reviewerID, _, ratings := newFixture(t, 6)

	svc := NewProfileService(ratings, recommend.DefaultConfig())
	summary, err := svc.GetProfile(context.Background(), reviewerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.EvaluationCount != 6 {
		t.Fatalf("expected 6 evaluations, got %d", summary.EvaluationCount)
	}
}

func TestGetProfileZeroEvaluationsYieldsEmptyTopLists(t *testing.T) {
	reviewerID, _, ratings := newFixture(t, 0)

	svc := NewProfileService(ratings, recommend.DefaultConfig())
	summary, err := svc.GetProfile(context.Background(), reviewerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.TopLikedNotes) != 0 || len(summary.TopDislikedNotes) != 0 {
		t.Fatalf("expected no top notes for a zero-evaluation reviewer, got liked=%v disliked=%v", summary.TopLikedNotes, summary.TopDislikedNotes)
	}
}
