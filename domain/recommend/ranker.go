package recommend

import (
	"sort"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
)

// Recommendation is one ranked candidate (spec §4.3): the scored fragrance
// plus its MatchResult.
type Recommendation struct {
	Fragrance fragrance.Fragrance
	Match     MatchResult
}

// Rank scores every candidate against p and returns them ordered per
// spec §4.3's sort key: vetoed last, score descending, fragrance name
// ascending, fragrance id ascending. candidates must already exclude
// whatever the caller wants excluded (spec §4.3 "exclude_rated" is the
// app layer's concern, not the ranker's); Rank itself is pure and
// performs no filtering of its own beyond scoring and ordering.
func Rank(p *profile.Profile, candidates []fragrance.Fragrance, cfg Config, limit int) []Recommendation {
	recs := make([]Recommendation, len(candidates))
	for i, f := range candidates {
		recs[i] = Recommendation{
			Fragrance: f,
			Match:     Score(p, f, cfg),
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Match.Vetoed != b.Match.Vetoed {
			return !a.Match.Vetoed
		}
		if a.Match.Score != b.Match.Score {
			return a.Match.Score > b.Match.Score
		}
		if a.Fragrance.Name != b.Fragrance.Name {
			return a.Fragrance.Name < b.Fragrance.Name
		}
		return a.Fragrance.ID < b.Fragrance.ID
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// ExcludeRated removes any fragrance already rated by the reviewer from
// the candidate set (spec §4.3 "exclude_rated"), preserving order.
func ExcludeRated(candidates []fragrance.Fragrance, rated map[core.FragranceID]struct{}) []fragrance.Fragrance {
	out := make([]fragrance.Fragrance, 0, len(candidates))
	for _, f := range candidates {
		if _, skip := rated[f.ID]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}
