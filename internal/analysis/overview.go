package analysis

import (
	"github.com/omarshaarawi/valuebot/internal/models"
)

// Overview summarises each position's market in first-seen order.
func Overview(players []models.ClassifiedPlayer) []models.PositionSummary {
	averages := Averages(players)
	groups := groupByPosition(players)

	var out []models.PositionSummary
	for _, position := range Positions(players) {
		avg := averages[position]
		summary := models.PositionSummary{
			Position:           position,
			Count:              avg.Count,
			AvgActualSalary:    avg.ActualSalary,
			AvgPredictedSalary: avg.PredictedSalary,
		}
		for _, p := range groups[position] {
			switch p.ValuationCategory {
			case models.Undervalued:
				summary.Undervalued++
			case models.Overvalued:
				summary.Overvalued++
			case models.FairValue:
				summary.FairValue++
			default:
				summary.Undefined++
			}
		}
		out = append(out, summary)
	}
	return out
}

// ByCategory returns the players in one category, order preserved.
func ByCategory(players []models.ClassifiedPlayer, category models.ValuationCategory) []models.ClassifiedPlayer {
	var out []models.ClassifiedPlayer
	for _, p := range players {
		if p.ValuationCategory == category {
			out = append(out, p)
		}
	}
	return out
}
