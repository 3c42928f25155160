package app

import (
	"context"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"fragrancerater/domain/core"
	apperrors "fragrancerater/internal/errors"
	"fragrancerater/ports"
)

// RatingDistribution is a diagnostic summary of a reviewer's raw rating
// values. It is deliberately outside the scoring core (SPEC_FULL.md
// §11.6): nothing here feeds into domain/recommend, and it is served on its
// own endpoint rather than as part of the Profile Query response.
type RatingDistribution struct {
	Count    int
	Mean     float64
	StdDev   float64
	Median   float64
	Variance float64
}

// RatingStatsService computes rating-distribution diagnostics from raw
// evaluation values.
type RatingStatsService struct {
	ratings ports.Ratings
}

// NewRatingStatsService wires the ratings port.
func NewRatingStatsService(ratings ports.Ratings) *RatingStatsService {
	return &RatingStatsService{ratings: ratings}
}

// Distribution computes summary statistics over a reviewer's raw star
// ratings (1..5), independent of the weighted-affinity scoring core.
func (s *RatingStatsService) Distribution(ctx context.Context, reviewerID core.ReviewerID) (*RatingDistribution, error) {
	evaluations, err := s.ratings.EvaluationsOf(ctx, reviewerID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if len(evaluations) == 0 {
		return &RatingDistribution{}, nil
	}

	values := make([]float64, len(evaluations))
	for i, e := range evaluations {
		values[i] = float64(e.Evaluation.Rating)
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	median, _ := stats.Median(values)
	variance := stat.Variance(values, nil)

	return &RatingDistribution{
		Count:    len(values),
		Mean:     mean,
		StdDev:   stdDev,
		Median:   median,
		Variance: variance,
	}, nil
}
