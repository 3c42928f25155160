package ai

import (
	"context"
	"errors"
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
	"fragrancerater/domain/recommend"
	"fragrancerater/ports"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) ChatCompletion(ctx context.Context, req ports.ChatRequest) (*ports.ChatResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ports.ChatResponse{Content: f.response}, nil
}

func testProfile() *profile.Profile {
	p := profile.NewEmpty(core.ReviewerID("rev-1"))
	p.EvaluationCount = 4
	p.NoteAffinity[core.NoteID("rose")] = 2.5
	p.NoteNames[core.NoteID("rose")] = "rose"
	p.NoteAffinity[core.NoteID("oud")] = -3.5
	p.NoteNames[core.NoteID("oud")] = "oud"
	return p
}

func testFragrance() fragrance.Fragrance {
	return fragrance.Fragrance{
		ID:            core.FragranceID("frag-1"),
		Name:          "Midnight Bloom",
		Brand:         "House of Test",
		PrimaryFamily: "floral",
		Notes: []fragrance.PositionedNote{
			{Note: fragrance.Note{Name: "rose"}, Position: fragrance.PositionHeart},
		},
	}
}

func TestExplainRecommendationUnconfiguredFallsBack(t *testing.T) {
	adapter := NewExplanationAdapter(nil, Config{}, nil)
	p := testProfile()
	f := testFragrance()
	match := recommend.Score(p, f, recommend.DefaultConfig())

	exp := adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	if exp.ModelName != "fallback" {
		t.Fatalf("expected fallback, got %q", exp.ModelName)
	}
	if exp.Text == "" {
		t.Fatal("expected non-empty fallback text")
	}
}

func TestExplainRecommendationVetoedUsesVetoFallback(t *testing.T) {
	adapter := NewExplanationAdapter(nil, Config{}, nil)
	p := testProfile()
	f := testFragrance()
	match := recommend.MatchResult{Vetoed: true, VetoNote: "oud", Score: 0.1, ScorePercent: 10}

	exp := adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	if exp.ModelName != "fallback" {
		t.Fatalf("expected fallback, got %q", exp.ModelName)
	}
}

func TestExplainRecommendationCachesSuccessfulCall(t *testing.T) {
	client := &fakeClient{response: "a great match"}
	adapter := NewExplanationAdapter(client, Config{Enabled: true, Model: "m1"}, nil)
	p := testProfile()
	f := testFragrance()
	match := recommend.Score(p, f, recommend.DefaultConfig())

	first := adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	if first.Cached {
		t.Fatal("first call should not be served from cache")
	}
	if first.Text != "a great match" {
		t.Fatalf("expected client text, got %q", first.Text)
	}

	second := adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	if !second.Cached {
		t.Fatal("second call should be served from cache")
	}
	if client.calls != 1 {
		t.Fatalf("expected one client call, got %d", client.calls)
	}
}

func TestExplainRecommendationFallsBackOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	adapter := NewExplanationAdapter(client, Config{Enabled: true, Model: "m1"}, nil)
	p := testProfile()
	f := testFragrance()
	match := recommend.Score(p, f, recommend.DefaultConfig())

	exp := adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	if exp.ModelName != "fallback" {
		t.Fatalf("expected fallback after client error, got %q", exp.ModelName)
	}
	if exp.Error == "" {
		t.Fatal("expected Error populated with the underlying failure")
	}
}

func TestClearEmptiesCache(t *testing.T) {
	client := &fakeClient{response: "cached text"}
	adapter := NewExplanationAdapter(client, Config{Enabled: true, Model: "m1"}, nil)
	p := testProfile()
	f := testFragrance()
	match := recommend.Score(p, f, recommend.DefaultConfig())

	adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)
	adapter.Clear()
	adapter.ExplainRecommendation(context.Background(), p, "Test", f, match)

	if client.calls != 2 {
		t.Fatalf("expected a fresh call after Clear, got %d total calls", client.calls)
	}
}

func TestInvalidateForReviewerOnlyRemovesThatReviewersEntries(t *testing.T) {
	client := &fakeClient{response: "text"}
	adapter := NewExplanationAdapter(client, Config{Enabled: true, Model: "m1"}, nil)

	f := testFragrance()
	match := recommend.Score(testProfile(), f, recommend.DefaultConfig())

	p1 := testProfile()
	p1.ReviewerID = core.ReviewerID("rev-1")
	p2 := testProfile()
	p2.ReviewerID = core.ReviewerID("rev-2")

	adapter.ExplainRecommendation(context.Background(), p1, "One", f, match)
	adapter.ExplainRecommendation(context.Background(), p2, "Two", f, match)
	if client.calls != 2 {
		t.Fatalf("expected two distinct calls before invalidation, got %d", client.calls)
	}

	adapter.InvalidateForReviewer(core.ReviewerID("rev-1"))

	adapter.ExplainRecommendation(context.Background(), p1, "One", f, match)
	if client.calls != 3 {
		t.Fatalf("expected rev-1's entry to be invalidated, got %d calls", client.calls)
	}

	adapter.ExplainRecommendation(context.Background(), p2, "Two", f, match)
	if client.calls != 3 {
		t.Fatalf("expected rev-2's entry to remain cached, got %d calls", client.calls)
	}
}
