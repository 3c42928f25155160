package recommend

import (
	"fmt"
	"math"

	"fragrancerater/domain/core"
)

// ComponentWeights is the fixed weighting of spec §4.2, the (notes, accords,
// family, subfamily) tuple that must sum to 1.0 (spec §6).
type ComponentWeights struct {
	Notes     float64
	Accords   float64
	Family    float64
	Subfamily float64
}

// DefaultComponentWeights is spec §4.2's 40/30/20/10 split.
var DefaultComponentWeights = ComponentWeights{
	Notes:     0.40,
	Accords:   0.30,
	Family:    0.20,
	Subfamily: 0.10,
}

// Config is the fixed scoring configuration spec §2 says is one of the
// engine's only observable inputs. All fields recognized in spec §6.
type Config struct {
	MinEvaluations   int
	VetoThreshold    float64
	ComponentWeights ComponentWeights
	RatingWeights    map[int]float64
	DefaultLimit     int
}

// DefaultConfig matches every default named in spec §6.
func DefaultConfig() Config {
	return Config{
		MinEvaluations:   3,
		VetoThreshold:    -3.0,
		ComponentWeights: DefaultComponentWeights,
		RatingWeights: map[int]float64{
			1: -2, 2: -1, 3: 0, 4: 1, 5: 2,
		},
		DefaultLimit: 10,
	}
}

// Validate checks spec §7's Configuration rules: invalid weights
// (negative, not summing to 1 within 1e-6), a non-monotonic rating mapping,
// a negative min_evaluations, or a default_limit outside (0, 50] is
// returned as an error wrapping core.ErrInvalidConfig.
func (c Config) Validate() error {
	w := c.ComponentWeights
	if w.Notes < 0 || w.Accords < 0 || w.Family < 0 || w.Subfamily < 0 {
		return fmt.Errorf("%w: component weights must be non-negative", core.ErrInvalidConfig)
	}
	sum := w.Notes + w.Accords + w.Family + w.Subfamily
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("%w: component weights must sum to 1.0, got %v", core.ErrInvalidConfig, sum)
	}

	if len(c.RatingWeights) == 0 {
		return fmt.Errorf("%w: rating weights must be provided", core.ErrInvalidConfig)
	}
	if !isMonotonic(c.RatingWeights) {
		return fmt.Errorf("%w: rating weights must be monotonic in rating", core.ErrInvalidConfig)
	}

	if c.MinEvaluations < 0 {
		return fmt.Errorf("%w: min_evaluations must be non-negative", core.ErrInvalidConfig)
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > 50 {
		return fmt.Errorf("%w: default_limit must be in (0, 50]", core.ErrInvalidConfig)
	}
	return nil
}

func isMonotonic(weights map[int]float64) bool {
	prev, have := 0.0, false
	for rating := 1; rating <= 5; rating++ {
		w, ok := weights[rating]
		if !ok {
			return false
		}
		if have && w < prev {
			return false
		}
		prev, have = w, true
	}
	return true
}
