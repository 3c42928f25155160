package recommend

import (
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/reviewer"
)

func rated(rating int, f fragrance.Fragrance) reviewer.RatedEvaluation {
	return reviewer.RatedEvaluation{
		Evaluation: reviewer.Evaluation{Rating: rating, FragranceID: f.ID},
		Fragrance:  f,
	}
}

func TestBuildProfileEmptyEvaluationsYieldsZeroProfile(t *testing.T) {
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, nil, DefaultConfig())
	if p.EvaluationCount != 0 {
		t.Fatalf("expected evaluation count 0, got %d", p.EvaluationCount)
	}
	if len(p.NoteAffinity) != 0 || len(p.AccordAffinity) != 0 || len(p.FamilyAffinity) != 0 {
		t.Fatalf("expected all empty affinity maps, got %+v", p)
	}
}

func TestBuildProfileSingleFiveStarRating(t *testing.T) {
	f := noteFragrance("f1", "woody", "woody", []string{"sandalwood"})
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, []reviewer.RatedEvaluation{rated(5, f)}, DefaultConfig())

	if p.NoteAffinity["sandalwood"] != 2 {
		t.Fatalf("expected note affinity 2 for a single 5-star rating, got %v", p.NoteAffinity["sandalwood"])
	}
	// family == subfamily: full weight plus half weight on the same key.
	if p.FamilyAffinity["woody"] != 3 {
		t.Fatalf("expected family affinity 1.5*weight == 3 when family==subfamily, got %v", p.FamilyAffinity["woody"])
	}
	if p.EvaluationCount != 1 {
		t.Fatalf("expected evaluation count 1, got %d", p.EvaluationCount)
	}
}

func TestBuildProfileDistinctFamilySubfamily(t *testing.T) {
	f := noteFragrance("f1", "woody", "aromatic", nil)
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, []reviewer.RatedEvaluation{rated(4, f)}, DefaultConfig())

	if p.FamilyAffinity["woody"] != 1 {
		t.Fatalf("expected primary family affinity 1, got %v", p.FamilyAffinity["woody"])
	}
	if p.FamilyAffinity["aromatic"] != 0.5 {
		t.Fatalf("expected subfamily affinity 0.5, got %v", p.FamilyAffinity["aromatic"])
	}
}

func TestBuildProfileNeutralRatingContributesNothing(t *testing.T) {
	f := noteFragrance("f1", "citrus", "citrus", []string{"lemon"})
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, []reviewer.RatedEvaluation{rated(3, f)}, DefaultConfig())

	if p.NoteAffinity["lemon"] != 0 {
		t.Fatalf("expected neutral rating to contribute 0, got %v", p.NoteAffinity["lemon"])
	}
}

func TestBuildProfileAccordIntensityWeighting(t *testing.T) {
	f := fragrance.Fragrance{
		ID:            "f1",
		PrimaryFamily: "floral",
		Subfamily:     "floral",
		Accords:       []fragrance.Accord{{Type: "sweet", Intensity: 0.5}},
	}
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, []reviewer.RatedEvaluation{rated(5, f)}, DefaultConfig())

	if p.AccordAffinity["sweet"] != 1 { // weight(2) * intensity(0.5)
		t.Fatalf("expected accord affinity 1, got %v", p.AccordAffinity["sweet"])
	}
}

func TestTopLikedAndTopDisliked(t *testing.T) {
	f := fragrance.Fragrance{
		ID:            "f1",
		PrimaryFamily: "x",
		Subfamily:     "x",
		Notes: []fragrance.PositionedNote{
			{Note: fragrance.Note{ID: core.NoteID("rose"), Name: "rose"}},
			{Note: fragrance.Note{ID: core.NoteID("civet"), Name: "civet"}},
		},
	}
	evals := []reviewer.RatedEvaluation{
		rated(5, fragrance.Fragrance{ID: "f1", PrimaryFamily: "x", Subfamily: "x",
			Notes: []fragrance.PositionedNote{{Note: fragrance.Note{ID: "rose", Name: "rose"}}}}),
		rated(1, fragrance.Fragrance{ID: "f2", PrimaryFamily: "x", Subfamily: "x",
			Notes: []fragrance.PositionedNote{{Note: fragrance.Note{ID: "civet", Name: "civet"}}}}),
	}
	_ = f
	p := BuildProfile(reviewer.Reviewer{ID: "r1"}, evals, DefaultConfig())

	liked := TopLiked(p)
	if len(liked) != 1 || liked[0].Name != "rose" {
		t.Fatalf("expected top liked [rose], got %+v", liked)
	}

	disliked := TopDisliked(p)
	if len(disliked) != 1 || disliked[0].Name != "civet" {
		t.Fatalf("expected top disliked [civet], got %+v", disliked)
	}
}

func TestTopKeysTiesBrokenByKeyAscending(t *testing.T) {
	affinity := map[string]float64{"b": 1.0, "a": 1.0, "c": 2.0}
	top := TopKeys(affinity)
	if top[0].Key != "c" || top[1].Key != "a" || top[2].Key != "b" {
		t.Fatalf("expected order [c a b], got %+v", top)
	}
}
