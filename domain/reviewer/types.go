// Package reviewer holds the rating-side entities of spec §3: Reviewer and
// Evaluation, plus the default rating-weight table of spec §4.1. The
// aggregator reads its weights from recommend.Config.RatingWeights, not
// from this table.
package reviewer

import (
	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
)

// Reviewer is a person who rates fragrances.
type Reviewer struct {
	ID   core.ReviewerID
	Name string
}

// Evaluation is a single (fragrance, rating) pair by a reviewer.
type Evaluation struct {
	ID           core.EvaluationID
	FragranceID  core.FragranceID
	ReviewerID   core.ReviewerID
	Rating       int // 1..5
	EvaluatedAt  core.Timestamp
}

// RatedEvaluation pairs an Evaluation with its (eagerly loaded) fragrance,
// matching ports.Ratings.EvaluationsOf's return shape (spec §6).
type RatedEvaluation struct {
	Evaluation Evaluation
	Fragrance  fragrance.Fragrance
}

// DefaultRatingWeights is the rating → signed weight table of spec §4.1.
// A rating of 3 is neutral and contributes nothing.
var DefaultRatingWeights = map[int]float64{
	1: -2,
	2: -1,
	3: 0,
	4: 1,
	5: 2,
}
