// Package ai wraps the external text service behind the Explanation
// Adapter contract of spec §4.5: two operations, each returning
// {text, model_name, cached, error?}, backed by a process-wide cache and
// falling back to a rule-based template whenever the service is
// unconfigured or fails.
package ai

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
	"fragrancerater/domain/profile"
	"fragrancerater/domain/recommend"
	"fragrancerater/internal"
	"fragrancerater/ports"
)

// Explanation is the Explanation Adapter's response shape (spec §4.5).
type Explanation struct {
	Text      string
	ModelName string
	Cached    bool
	Error     string
}

// Config controls whether the adapter is enabled and which model it asks
// for (spec §6 "llm_enabled", "llm_model").
type Config struct {
	Enabled     bool
	Model       string
	MaxTokens   int
	Temperature float64
}

// ExplanationAdapter implements spec §4.5's state machine: configured? →
// cache hit? → external call → success/fallback. The cache is the only
// mutable shared state in the core (spec §5 "Shared resources"); a
// singleflight.Group gives concurrent callers for the same key
// atomic insert-if-absent semantics without a lost duplicate call.
type ExplanationAdapter struct {
	client ports.LLMClient
	cfg    Config
	log    *internal.Logger

	cache  sync.Map // core.Hash -> string
	owners sync.Map // core.Hash -> core.ReviewerID, populated alongside cache
	group  singleflight.Group
}

// NewExplanationAdapter constructs an adapter. A nil client or a disabled
// config both degrade to permanent fallback (spec §6 "Absent or empty
// token disables the adapter").
func NewExplanationAdapter(client ports.LLMClient, cfg Config, log *internal.Logger) *ExplanationAdapter {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ExplanationAdapter{client: client, cfg: cfg, log: log}
}

func (a *ExplanationAdapter) configured() bool {
	return a.client != nil && a.cfg.Enabled
}

// ExplainRecommendation produces an explanation for a single (profile,
// fragrance) recommendation (spec §4.5 "a single recommendation").
func (a *ExplanationAdapter) ExplainRecommendation(ctx context.Context, p *profile.Profile, reviewerName string, f fragrance.Fragrance, match recommend.MatchResult) Explanation {
	key := core.NewContentKey("rec", f.ID.String(), p.ReviewerID.String())

	if !a.configured() {
		return a.fallbackRecommendation(p, f, match)
	}
	if cached, ok := a.cache.Load(key); ok {
		return Explanation{Text: cached.(string), ModelName: a.cfg.Model, Cached: true}
	}

	liked := recommend.TopLiked(p)
	disliked := recommend.TopDisliked(p)
	families := recommend.TopKeys(p.FamilyAffinity)

	var prompt string
	if match.Vetoed {
		prompt = buildVetoedPrompt(liked, disliked, f.Name, f.Brand, match.VetoNote, noteNames(f))
	} else {
		prompt = buildRecommendationPrompt(liked, disliked, families, f.Name, f.Brand, match.ScorePercent, f.PrimaryFamily, noteNames(f), accordTypes(f))
	}

	text, err := a.call(ctx, key.String(), prompt)
	if err != nil {
		a.log.Warn("explanation call failed for fragrance %s: %v", f.ID, err)
		fallback := a.fallbackRecommendation(p, f, match)
		fallback.Error = err.Error()
		return fallback
	}

	a.cache.Store(key, text)
	a.owners.Store(key, p.ReviewerID)
	return Explanation{Text: text, ModelName: a.cfg.Model}
}

// ExplainProfile produces a natural-language summary of a reviewer's
// preferences (spec §4.5 "a profile summary").
func (a *ExplanationAdapter) ExplainProfile(ctx context.Context, p *profile.Profile, reviewerName string) Explanation {
	key := core.NewContentKey("profile", p.ReviewerID.String())

	if !a.configured() {
		return a.fallbackProfile(p, reviewerName)
	}
	if cached, ok := a.cache.Load(key); ok {
		return Explanation{Text: cached.(string), ModelName: a.cfg.Model, Cached: true}
	}

	liked := recommend.TopLiked(p)
	disliked := recommend.TopDisliked(p)
	accords := recommend.TopKeys(p.AccordAffinity)
	families := recommend.TopKeys(p.FamilyAffinity)

	prompt := buildProfileSummaryPrompt(reviewerName, p.EvaluationCount, liked, disliked, accords, families)

	text, err := a.call(ctx, key.String(), prompt)
	if err != nil {
		a.log.Warn("profile explanation call failed for reviewer %s: %v", p.ReviewerID, err)
		fallback := a.fallbackProfile(p, reviewerName)
		fallback.Error = err.Error()
		return fallback
	}

	a.cache.Store(key, text)
	a.owners.Store(key, p.ReviewerID)
	return Explanation{Text: text, ModelName: a.cfg.Model}
}

// call issues the external request, deduplicating concurrent callers for
// the same cache key via singleflight so only one HTTP round trip happens
// per key even under a cache-miss stampede (spec §5 "atomic insert-if-
// absent semantics").
func (a *ExplanationAdapter) call(ctx context.Context, key, prompt string) (string, error) {
	v, err, _ := a.group.Do(key, func() (interface{}, error) {
		resp, err := a.client.ChatCompletion(ctx, ports.ChatRequest{
			Model:       a.cfg.Model,
			Messages:    []ports.ChatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   a.cfg.MaxTokens,
			Temperature: a.cfg.Temperature,
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(resp.Content), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Clear empties the explanation cache entirely (spec §4.5).
func (a *ExplanationAdapter) Clear() {
	a.cache.Range(func(k, _ interface{}) bool {
		a.cache.Delete(k)
		a.owners.Delete(k)
		return true
	})
}

// InvalidateForReviewer removes every cache entry derived from
// reviewerID. The cache key is a content hash (spec §4.5), so
// reviewerID can't be recovered from the key itself; owners records
// which reviewer produced each key at Store time so invalidation
// doesn't need to re-derive every possible key.
func (a *ExplanationAdapter) InvalidateForReviewer(reviewerID core.ReviewerID) {
	a.owners.Range(func(k, v interface{}) bool {
		if v.(core.ReviewerID) == reviewerID {
			a.cache.Delete(k)
			a.owners.Delete(k)
		}
		return true
	})
}

func (a *ExplanationAdapter) fallbackRecommendation(p *profile.Profile, f fragrance.Fragrance, match recommend.MatchResult) Explanation {
	if match.Vetoed {
		return Explanation{
			Text:      "This fragrance contains notes you typically dislike. You might want to explore other options first.",
			ModelName: "fallback",
		}
	}

	liked := recommend.TopLiked(p)
	fragranceNotes := make(map[string]struct{}, len(f.Notes))
	for _, pn := range f.Notes {
		fragranceNotes[strings.ToLower(pn.Note.Name)] = struct{}{}
	}

	var matching []string
	for i, n := range liked {
		if i >= 3 {
			break
		}
		if _, ok := fragranceNotes[strings.ToLower(n.Name)]; ok {
			matching = append(matching, n.Name)
		}
	}

	var text string
	if len(matching) > 0 {
		text = "This " + strconv.Itoa(match.ScorePercent) + "% match contains " + strings.Join(matching, ", ") +
			" which you've enjoyed in other fragrances."
	} else {
		text = "With a " + strconv.Itoa(match.ScorePercent) + "% match score, this fragrance aligns well with your general preferences for " + f.PrimaryFamily + " scents."
	}

	return Explanation{Text: text, ModelName: "fallback"}
}

func (a *ExplanationAdapter) fallbackProfile(p *profile.Profile, reviewerName string) Explanation {
	liked := recommend.TopLiked(p)
	disliked := recommend.TopDisliked(p)

	parts := []string{reviewerName + " has rated " + strconv.Itoa(p.EvaluationCount) + " fragrances."}

	if len(liked) > 0 {
		parts = append(parts, "They tend to enjoy notes like "+joinNoteScores(limitNotes(liked, 3), "")+".")
	}
	if len(disliked) > 0 {
		parts = append(parts, "They generally avoid "+joinNoteScores(limitNotes(disliked, 3), "")+".")
	}
	if len(liked) == 0 && len(disliked) == 0 {
		parts = append(parts, "More evaluations needed to identify clear preferences.")
	}

	return Explanation{Text: strings.Join(parts, " "), ModelName: "fallback"}
}

func limitNotes(scores []profile.NoteScore, n int) []profile.NoteScore {
	if len(scores) > n {
		return scores[:n]
	}
	return scores
}

func noteNames(f fragrance.Fragrance) []string {
	notes := make([]fragrance.PositionedNote, len(f.Notes))
	copy(notes, f.Notes)
	sort.Slice(notes, func(i, j int) bool { return notes[i].Note.Name < notes[j].Note.Name })

	out := make([]string, len(notes))
	for i, pn := range notes {
		out[i] = pn.Note.Name
	}
	return out
}

func accordTypes(f fragrance.Fragrance) []string {
	out := make([]string, len(f.Accords))
	for i, acc := range f.Accords {
		out[i] = acc.Type
	}
	return out
}
