package recommend

import (
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
)

func TestRankOrdersVetoedLast(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.NoteAffinity["rue"] = -5

	vetoed := noteFragrance("v1", "green", "green", []string{"rue"})
	clean := noteFragrance("c1", "citrus", "citrus", nil)

	recs := Rank(p, []fragrance.Fragrance{vetoed, clean}, DefaultConfig(), 0)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Fragrance.ID != "c1" || recs[1].Fragrance.ID != "v1" {
		t.Fatalf("expected non-vetoed first, vetoed last, got order %v, %v", recs[0].Fragrance.ID, recs[1].Fragrance.ID)
	}
}

func TestRankTieBreaksByNameThenID(t *testing.T) {
	p := profile.NewEmpty("r1")

	a := fragrance.Fragrance{ID: "id-b", Name: "Alpha", PrimaryFamily: "x", Subfamily: "x"}
	b := fragrance.Fragrance{ID: "id-a", Name: "Alpha", PrimaryFamily: "x", Subfamily: "x"}
	c := fragrance.Fragrance{ID: "id-c", Name: "Beta", PrimaryFamily: "x", Subfamily: "x"}

	recs := Rank(p, []fragrance.Fragrance{c, a, b}, DefaultConfig(), 0)

	if recs[0].Fragrance.ID != "id-a" || recs[1].Fragrance.ID != "id-b" || recs[2].Fragrance.ID != "id-c" {
		t.Fatalf("expected tie-break by name then id, got %v, %v, %v",
			recs[0].Fragrance.ID, recs[1].Fragrance.ID, recs[2].Fragrance.ID)
	}
}

func TestRankLimitTruncates(t *testing.T) {
	p := profile.NewEmpty("r1")
	candidates := []fragrance.Fragrance{
		{ID: "f1", Name: "A", PrimaryFamily: "x", Subfamily: "x"},
		{ID: "f2", Name: "B", PrimaryFamily: "x", Subfamily: "x"},
		{ID: "f3", Name: "C", PrimaryFamily: "x", Subfamily: "x"},
	}

	recs := Rank(p, candidates, DefaultConfig(), 2)
	if len(recs) != 2 {
		t.Fatalf("expected limit to truncate to 2, got %d", len(recs))
	}
}

func TestRankScoreDescendingMonotonicPrefix(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.NoteAffinity["musk"] = 5
	p.NoteAffinity["tar"] = -1

	high := noteFragrance("high", "musky", "musky", []string{"musk"})
	low := noteFragrance("low", "musky", "musky", []string{"tar"})

	recs := Rank(p, []fragrance.Fragrance{low, high}, DefaultConfig(), 0)
	for i := 1; i < len(recs); i++ {
		if !recs[i-1].Match.Vetoed && !recs[i].Match.Vetoed && recs[i-1].Match.Score < recs[i].Match.Score {
			t.Fatalf("expected non-increasing score prefix, got %v then %v", recs[i-1].Match.Score, recs[i].Match.Score)
		}
	}
}

func TestExcludeRatedFiltersOut(t *testing.T) {
	candidates := []fragrance.Fragrance{
		{ID: "f1"}, {ID: "f2"}, {ID: "f3"},
	}
	rated := map[core.FragranceID]struct{}{"f2": {}}

	out := ExcludeRated(candidates, rated)
	if len(out) != 2 {
		t.Fatalf("expected 2 remaining candidates, got %d", len(out))
	}
	for _, f := range out {
		if f.ID == "f2" {
			t.Fatalf("expected f2 to be excluded")
		}
	}
}
