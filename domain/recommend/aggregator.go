package recommend

import (
	"sort"

	"fragrancerater/domain/profile"
	"fragrancerater/domain/reviewer"
)

// BuildProfile converts a reviewer's evaluations into a Profile, per spec
// §4.1. It is a pure function of (reviewerID, evaluations, config): no I/O,
// no shared state, deterministic modulo floating-point summation order
// (spec §4.1 "Determinism").
func BuildProfile(reviewerID reviewer.Reviewer, evaluations []reviewer.RatedEvaluation, cfg Config) *profile.Profile {
	p := profile.NewEmpty(reviewerID.ID)

	for _, re := range evaluations {
		weight, ok := cfg.RatingWeights[re.Evaluation.Rating]
		if !ok {
			// An out-of-range rating contributes nothing, consistent with
			// spec §4.1's "rating of 3 is neutral" treatment of unmapped
			// input — the repository layer is responsible for only ever
			// persisting ratings in 1..5 (spec §3 invariant).
			continue
		}

		f := re.Fragrance
		for _, pn := range f.Notes {
			p.NoteAffinity[pn.Note.ID] += weight
			p.NoteNames[pn.Note.ID] = pn.Note.Name
		}

		for _, acc := range f.Accords {
			p.AccordAffinity[acc.Type] += weight * acc.Intensity
		}

		// Subfamily folds into the same map under its own key at half
		// weight (spec §4.1). When primary_family == subfamily the two
		// additions land on one key and sum to 1.5*w — spec §9 mandates
		// this, it is not a bug to deduplicate.
		p.FamilyAffinity[f.PrimaryFamily] += weight
		p.FamilyAffinity[f.Subfamily] += 0.5 * weight

		p.EvaluationCount++
	}

	return p
}

// TopLiked returns up to 5 notes with strictly positive affinity,
// descending, ties broken by name ascending (spec §4.1 "Top lists").
func TopLiked(p *profile.Profile) []profile.NoteScore {
	return topNotes(p, true)
}

// TopDisliked returns up to 5 notes with strictly negative affinity,
// ascending (most negative first), ties broken by name ascending.
func TopDisliked(p *profile.Profile) []profile.NoteScore {
	return topNotes(p, false)
}

func topNotes(p *profile.Profile, liked bool) []profile.NoteScore {
	var scored []profile.NoteScore
	for id, score := range p.NoteAffinity {
		if liked && score <= 0 {
			continue
		}
		if !liked && score >= 0 {
			continue
		}
		scored = append(scored, profile.NoteScore{
			NoteID: id,
			Name:   p.NoteNames[id],
			Score:  score,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			if liked {
				return scored[i].Score > scored[j].Score
			}
			return scored[i].Score < scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})

	if len(scored) > 5 {
		scored = scored[:5]
	}
	return scored
}

// TopKeys returns the top 5 entries of an affinity map (accords or
// families), descending, ties broken by key ascending (spec §4.4).
func TopKeys(affinity map[string]float64) []profile.KeyScore {
	scored := make([]profile.KeyScore, 0, len(affinity))
	for k, v := range affinity {
		scored = append(scored, profile.KeyScore{Key: k, Score: v})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Key < scored[j].Key
	})

	if len(scored) > 5 {
		scored = scored[:5]
	}
	return scored
}
