package analysis

import (
	"github.com/omarshaarawi/valuebot/internal/models"
)

// PositionFeatures describes the three feature slots of one position.
type PositionFeatures struct {
	Labels  models.FeatureLabels
	Inverse [3]bool
	Impact  [3]float64
}

// FeatureConfig is an immutable per-position lookup table. The zero value
// answers every position with the generic fallback.
type FeatureConfig struct {
	positions map[string]PositionFeatures
}

var fallbackLabels = models.FeatureLabels{"Feature 1", "Feature 2", "Feature 3"}

// DefaultFeatureConfig returns the built-in NFL position table.
func DefaultFeatureConfig() FeatureConfig {
	return NewFeatureConfig(map[string]PositionFeatures{
		"QB": {
			Labels: models.FeatureLabels{"Completion %", "Passing Yards", "Touchdowns"},
			Impact: [3]float64{0.35, 0.45, 0.20},
		},
		"RB": {
			Labels: models.FeatureLabels{"Yards Per Carry", "Rushing Yards", "Touchdowns"},
			Impact: [3]float64{0.50, 0.30, 0.20},
		},
		"WR": {
			Labels: models.FeatureLabels{"Catch %", "Receiving Yards", "Touchdowns"},
			Impact: [3]float64{0.40, 0.45, 0.15},
		},
		"TE": {
			Labels: models.FeatureLabels{"Catch %", "Receiving Yards", "Touchdowns"},
			Impact: [3]float64{0.35, 0.40, 0.25},
		},
		"OL": {
			Labels: models.FeatureLabels{"PFF Grade", "Penalties", "Sacks Allowed"},
			// penalties and sacks allowed: lower is better
			Inverse: [3]bool{false, true, true},
			Impact:  [3]float64{0.60, 0.25, 0.15},
		},
	})
}

// NewFeatureConfig copies positions into a new table.
func NewFeatureConfig(positions map[string]PositionFeatures) FeatureConfig {
	m := make(map[string]PositionFeatures, len(positions))
	for k, v := range positions {
		m[k] = v
	}
	return FeatureConfig{positions: m}
}

func (c FeatureConfig) Known(position string) bool {
	_, ok := c.positions[position]
	return ok
}

// Labels returns the position's feature labels, or "Feature 1/2/3".
func (c FeatureConfig) Labels(position string) models.FeatureLabels {
	if pf, ok := c.positions[position]; ok {
		return pf.Labels
	}
	return fallbackLabels
}

// Inverse returns which slots score lower-is-better. Unknown positions
// have none.
func (c FeatureConfig) Inverse(position string) [3]bool {
	return c.positions[position].Inverse
}

// Impact returns the labelled model weights as percentages.
func (c FeatureConfig) Impact(position string) ([3]models.FeatureImpact, bool) {
	var out [3]models.FeatureImpact
	pf, ok := c.positions[position]
	if !ok {
		return out, false
	}
	for i := range out {
		out[i] = models.FeatureImpact{Feature: pf.Labels[i], Impact: pf.Impact[i] * 100}
	}
	return out, true
}
