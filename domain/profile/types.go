// Package profile holds the derived, per-reviewer Profile (spec §3):
// scalar affinities over notes, accords, families and subfamilies, plus
// the top-K summaries spec §4.1 and §4.4 require. A Profile is recomputed
// from scratch per request; it has no identity of its own.
package profile

import "fragrancerater/domain/core"

// NoteScore pairs a note's display name with its affinity score, used for
// the top-liked/top-disliked lists (spec §4.1 "Top lists").
type NoteScore struct {
	NoteID core.NoteID
	Name   string
	Score  float64
}

// KeyScore pairs an accord type or family/subfamily key with its affinity,
// used for the top-accords/top-families lists (spec §4.4).
type KeyScore struct {
	Key   string
	Score float64
}

// Profile is the derived preference bundle spec §3 describes. FamilyAffinity
// holds both family and subfamily keys in one map — spec §4.1 is explicit
// that the subfamily is folded additively into the same dictionary, not a
// separate map (spec §9 "Family vs subfamily").
type Profile struct {
	ReviewerID       core.ReviewerID
	NoteAffinity     map[core.NoteID]float64
	NoteNames        map[core.NoteID]string
	AccordAffinity   map[string]float64
	FamilyAffinity   map[string]float64
	EvaluationCount  int
}

// NewEmpty returns a zero-evaluation profile: empty affinity maps and
// EvaluationCount 0 (spec §8 invariant 1).
func NewEmpty(reviewerID core.ReviewerID) *Profile {
	return &Profile{
		ReviewerID:     reviewerID,
		NoteAffinity:   make(map[core.NoteID]float64),
		NoteNames:      make(map[core.NoteID]string),
		AccordAffinity: make(map[string]float64),
		FamilyAffinity: make(map[string]float64),
	}
}
