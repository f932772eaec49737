package analysis

import (
	"math"

	"github.com/omarshaarawi/valuebot/internal/models"
)

// NoBaseline is the score used when a position has no usable mean.
const NoBaseline = 50.0

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return NoBaseline
	}
	return math.Max(0, math.Min(100, v))
}

// NormalizeValue scores one feature value against its group mean on 0-100.
func NormalizeValue(value, mean float64, inverse bool) float64 {
	if mean == 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return NoBaseline
	}
	if inverse {
		return clamp((1 - value/(mean*2)) * 100)
	}
	return clamp(value / (mean * 1.5) * 100)
}

// Normalize builds the three radar points for a player against the mean of
// the player's own position. A missing position mean scores every slot 50.
func Normalize(p models.ClassifiedPlayer, labels models.FeatureLabels, inverse [3]bool, averages map[string]models.AverageRecord) [3]models.RadarPoint {
	var points [3]models.RadarPoint
	avg, ok := averages[p.Position]
	values := p.Features()
	means := avg.Features()

	for i := range points {
		points[i].Feature = labels[i]
		if !ok {
			points[i].Value = NoBaseline
			continue
		}
		points[i].Value = NormalizeValue(values[i], means[i], inverse[i])
	}
	return points
}

// Normalize uses the table's labels and inverse flags for the player's position.
func (c FeatureConfig) Normalize(p models.ClassifiedPlayer, averages map[string]models.AverageRecord) [3]models.RadarPoint {
	return Normalize(p, c.Labels(p.Position), c.Inverse(p.Position), averages)
}
