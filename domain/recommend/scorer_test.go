package recommend

import (
	"math"
	"testing"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
)

func noteFragrance(id core.FragranceID, family, subfamily string, notes []string) fragrance.Fragrance {
	f := fragrance.Fragrance{
		ID:            id,
		Name:          string(id),
		PrimaryFamily: family,
		Subfamily:     subfamily,
	}
	for _, n := range notes {
		f.Notes = append(f.Notes, fragrance.PositionedNote{
			Note:     fragrance.Note{ID: core.NoteID(n), Name: n},
			Position: fragrance.PositionTop,
		})
	}
	return f
}

func TestScoreVetoTriggersOnFirstNoteNameAscending(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.NoteAffinity["bergamot"] = -5
	p.NoteAffinity["oud"] = -5

	f := noteFragrance("f1", "woody", "woody", []string{"oud", "bergamot"})
	cfg := DefaultConfig()

	result := Score(p, f, cfg)

	if !result.Vetoed {
		t.Fatalf("expected vetoed result")
	}
	if result.VetoNote != "bergamot" {
		t.Fatalf("expected veto note 'bergamot' (name-ascending first), got %q", result.VetoNote)
	}
	if result.Score != vetoFloor {
		t.Fatalf("expected vetoed score %v, got %v", vetoFloor, result.Score)
	}
	if result.ScorePercent != 10 {
		t.Fatalf("expected vetoed score_percent 10, got %d", result.ScorePercent)
	}
}

func TestScoreNoVetoAboveThreshold(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.NoteAffinity["vanilla"] = -2.9 // just above VetoThreshold(-3.0)

	f := noteFragrance("f1", "oriental", "oriental", []string{"vanilla"})
	cfg := DefaultConfig()

	result := Score(p, f, cfg)
	if result.Vetoed {
		t.Fatalf("expected no veto at exactly above threshold")
	}
}

func TestScoreFamilySubfamilyWart(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.FamilyAffinity["woody"] = 3.0 // family == subfamily accumulation landed here

	f := noteFragrance("f1", "woody", "woody", nil)
	cfg := DefaultConfig()

	result := Score(p, f, cfg)
	if result.Components.Family != 3.0 || result.Components.Subfamily != 3.0 {
		t.Fatalf("expected both family and subfamily components to read the same accumulated key, got %+v", result.Components)
	}
}

func TestScoreLogisticRange(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.NoteAffinity["amber"] = 10
	f := noteFragrance("f1", "oriental", "spicy", []string{"amber"})
	cfg := DefaultConfig()

	result := Score(p, f, cfg)
	if result.Score <= 0 || result.Score >= 1 {
		t.Fatalf("expected logistic score strictly in (0,1), got %v", result.Score)
	}
	expectedPercent := int(math.Floor(result.Score * 100))
	if result.ScorePercent != expectedPercent {
		t.Fatalf("expected score_percent %d, got %d", expectedPercent, result.ScorePercent)
	}
}

func TestScoreEmptyProfileIsNeutral(t *testing.T) {
	p := profile.NewEmpty("r1")
	f := noteFragrance("f1", "citrus", "citrus", []string{"lemon"})
	cfg := DefaultConfig()

	result := Score(p, f, cfg)
	if result.Vetoed {
		t.Fatalf("empty profile must never veto")
	}
	if result.Score != 0.5 {
		t.Fatalf("expected neutral logistic(0) == 0.5, got %v", result.Score)
	}
}

func TestScoreAccordIntensityAppliedTwice(t *testing.T) {
	p := profile.NewEmpty("r1")
	p.AccordAffinity["smoky"] = 4.0 // already weight*intensity at accumulation time

	f := fragrance.Fragrance{
		ID:            "f1",
		Name:          "f1",
		PrimaryFamily: "woody",
		Subfamily:     "woody",
		Accords:       []fragrance.Accord{{Type: "smoky", Intensity: 0.5}},
	}
	cfg := DefaultConfig()

	result := Score(p, f, cfg)
	want := p.AccordAffinity["smoky"] * 0.5
	if result.Components.Accords != want {
		t.Fatalf("expected accords component %v (intensity applied again), got %v", want, result.Components.Accords)
	}
}
