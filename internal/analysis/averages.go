package analysis

import (
	"github.com/montanaflynn/stats"

	"github.com/omarshaarawi/valuebot/internal/models"
)

// Positions returns the distinct positions in first-seen order.
func Positions(players []models.ClassifiedPlayer) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range players {
		if !seen[p.Position] {
			seen[p.Position] = true
			out = append(out, p.Position)
		}
	}
	return out
}

func groupByPosition(players []models.ClassifiedPlayer) map[string][]models.ClassifiedPlayer {
	groups := make(map[string][]models.ClassifiedPlayer)
	for _, p := range players {
		groups[p.Position] = append(groups[p.Position], p)
	}
	return groups
}

func mean(group []models.ClassifiedPlayer, field func(models.ClassifiedPlayer) float64) float64 {
	data := make(stats.Float64Data, len(group))
	for i, p := range group {
		data[i] = field(p)
	}
	m, err := data.Mean()
	if err != nil {
		return 0
	}
	return m
}

// Averages computes per-position means over the given players. Positions
// with no players never appear in the result.
func Averages(players []models.ClassifiedPlayer) map[string]models.AverageRecord {
	out := make(map[string]models.AverageRecord)
	for position, group := range groupByPosition(players) {
		if len(group) == 0 {
			continue
		}
		out[position] = models.AverageRecord{
			Count:           len(group),
			Feature1:        mean(group, func(p models.ClassifiedPlayer) float64 { return p.Feature1 }),
			Feature2:        mean(group, func(p models.ClassifiedPlayer) float64 { return p.Feature2 }),
			Feature3:        mean(group, func(p models.ClassifiedPlayer) float64 { return p.Feature3 }),
			ActualSalary:    mean(group, func(p models.ClassifiedPlayer) float64 { return p.ActualSalary }),
			PredictedSalary: mean(group, func(p models.ClassifiedPlayer) float64 { return p.PredictedSalary }),
			Height:          mean(group, func(p models.ClassifiedPlayer) float64 { return float64(p.Height) }),
			Weight:          mean(group, func(p models.ClassifiedPlayer) float64 { return float64(p.Weight) }),
		}
	}
	return out
}
