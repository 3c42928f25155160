package recommend

import (
	"fmt"
	"math"
	"sort"

	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
)

// Components is the per-component breakdown of a match score, returned
// only when the candidate was not vetoed (spec §4.2).
type Components struct {
	Notes     float64
	Accords   float64
	Family    float64
	Subfamily float64
	Raw       float64
}

// MatchResult is the Scorer's output for a single (profile, fragrance)
// pair (spec §4.2).
type MatchResult struct {
	Score        float64
	ScorePercent int
	Vetoed       bool
	VetoNote     string
	VetoReason   string
	Components   Components
}

// vetoFloor is the fixed score spec §4.2 mandates for a vetoed candidate —
// a floor, not a computed value.
const vetoFloor = 0.1

// Score computes the MatchResult for a candidate fragrance against a
// reviewer's Profile (spec §4.2). It performs no I/O and mutates no shared
// state (spec §4.2 "Side-effect-free scoring").
func Score(p *profile.Profile, f fragrance.Fragrance, cfg Config) MatchResult {
	if note, vetoed := checkVeto(p, f, cfg); vetoed {
		return MatchResult{
			Score:        vetoFloor,
			ScorePercent: int(vetoFloor * 100),
			Vetoed:       true,
			VetoNote:     note,
			VetoReason:   fmt.Sprintf("Contains %s which you dislike", note),
		}
	}

	notesComponent := meanNoteAffinity(p, f)
	accordsComponent := meanAccordAffinity(p, f)
	familyComponent := p.FamilyAffinity[f.PrimaryFamily]
	subfamilyComponent := p.FamilyAffinity[f.Subfamily]

	w := cfg.ComponentWeights
	raw := w.Notes*notesComponent + w.Accords*accordsComponent +
		w.Family*familyComponent + w.Subfamily*subfamilyComponent

	score := logistic(raw)

	return MatchResult{
		Score:        score,
		ScorePercent: int(math.Floor(score * 100)),
		Components: Components{
			Notes:     notesComponent,
			Accords:   accordsComponent,
			Family:    familyComponent,
			Subfamily: subfamilyComponent,
			Raw:       raw,
		},
	}
}

// checkVeto iterates positioned notes in deterministic order (by note name
// ascending) and returns the first note whose affinity is below the veto
// threshold (spec §4.2 "Veto rule (checked first)").
func checkVeto(p *profile.Profile, f fragrance.Fragrance, cfg Config) (string, bool) {
	notes := make([]fragrance.PositionedNote, len(f.Notes))
	copy(notes, f.Notes)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Note.Name < notes[j].Note.Name
	})

	for _, pn := range notes {
		if p.NoteAffinity[pn.Note.ID] < cfg.VetoThreshold {
			return pn.Note.Name, true
		}
	}
	return "", false
}

// meanNoteAffinity is the mean over positioned notes of the reviewer's
// note affinity, 0 for a missing note and 0 for an empty note set
// (spec §4.2).
func meanNoteAffinity(p *profile.Profile, f fragrance.Fragrance) float64 {
	if len(f.Notes) == 0 {
		return 0
	}
	var sum float64
	for _, pn := range f.Notes {
		sum += p.NoteAffinity[pn.Note.ID]
	}
	return sum / float64(len(f.Notes))
}

// meanAccordAffinity is the mean over accords of affinity * intensity —
// intensity is applied again here, on top of the accumulation-time
// multiplication (spec §9 "Open question — intensity semantics of
// accords"): intentional, not a double-counting bug.
func meanAccordAffinity(p *profile.Profile, f fragrance.Fragrance) float64 {
	if len(f.Accords) == 0 {
		return 0
	}
	var sum float64
	for _, acc := range f.Accords {
		sum += p.AccordAffinity[acc.Type] * acc.Intensity
	}
	return sum / float64(len(f.Accords))
}

func logistic(raw float64) float64 {
	return 1 / (1 + math.Exp(-raw))
}
