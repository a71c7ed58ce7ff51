package matching

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Dimension names accepted in a priority vector.
const (
	DimensionSkills   = "skills"
	DimensionLocation = "location"
	DimensionSector   = "sector"
)

// Weights remapped onto a valid priority vector, highest priority first.
const (
	primaryWeight   = 0.5
	secondaryWeight = 0.3
	tertiaryWeight  = 0.2
)

// Weights configures the contribution of each scoring dimension to the total.
// All weights must be non-negative and sum to at most 1.
type Weights struct {
	Skills   float64 `json:"skills" validate:"gte=0,lte=1"`
	Location float64 `json:"location" validate:"gte=0,lte=1"`
	Sector   float64 `json:"sector" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard weighting. Persisted scores always
// correspond to this configuration so they stay comparable across candidates.
func DefaultWeights() Weights {
	return Weights{Skills: 0.6, Location: 0.2, Sector: 0.2}
}

// Validate checks field ranges and the sum constraint.
func (w Weights) Validate() error {
	if err := validator.New().Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if sum := w.Skills + w.Location + w.Sector; sum > 1 {
		return fmt.Errorf("invalid weights: sum %.2f exceeds 1", sum)
	}
	return nil
}

// IsDefault reports whether w equals DefaultWeights.
func (w Weights) IsDefault() bool {
	return w == DefaultWeights()
}

// NormalizePriority validates a caller-supplied priority vector and returns
// its lowercased form. A valid vector names each of the three dimensions
// exactly once.
func NormalizePriority(priority []string) ([]string, error) {
	if len(priority) != 3 {
		return nil, fmt.Errorf("priority must name exactly 3 dimensions, got %d", len(priority))
	}

	normalized := make([]string, 3)
	seen := make(map[string]bool, 3)
	for i, p := range priority {
		dim := strings.ToLower(strings.TrimSpace(p))
		switch dim {
		case DimensionSkills, DimensionLocation, DimensionSector:
		default:
			return nil, fmt.Errorf("unknown priority dimension %q", p)
		}
		if seen[dim] {
			return nil, fmt.Errorf("duplicate priority dimension %q", dim)
		}
		seen[dim] = true
		normalized[i] = dim
	}
	return normalized, nil
}

// WeightsForPriority remaps weights 50/30/20 onto the named dimensions,
// highest priority first. The vector must already be normalized.
func WeightsForPriority(priority []string) Weights {
	var w Weights
	assign := []float64{primaryWeight, secondaryWeight, tertiaryWeight}
	for i, dim := range priority {
		switch dim {
		case DimensionSkills:
			w.Skills = assign[i]
		case DimensionLocation:
			w.Location = assign[i]
		case DimensionSector:
			w.Sector = assign[i]
		}
	}
	return w
}
