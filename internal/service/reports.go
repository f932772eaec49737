package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/valuebot/internal/analysis"
	"github.com/omarshaarawi/valuebot/internal/models"
)

var categoryEmoji = map[models.ValuationCategory]string{
	models.Undervalued: "🟢",
	models.FairValue:   "🟡",
	models.Overvalued:  "🔴",
	models.Undefined:   "⚪",
}

func formatDiff(p models.ClassifiedPlayer) string {
	sign := "+"
	if p.ValuationDiff < 0 {
		sign = "-"
	}
	if !p.PercentDefined {
		return fmt.Sprintf("%s$%.1fM", sign, math.Abs(p.ValuationDiff))
	}
	return fmt.Sprintf("%s$%.1fM (%s%.1f%%)", sign, math.Abs(p.ValuationDiff), sign, math.Abs(p.ValuationPercent))
}

func writePlayerLine(sb *strings.Builder, p models.ClassifiedPlayer) {
	sb.WriteString(fmt.Sprintf("%s %s *%s* - $%.1fM vs $%.1fM %s\n",
		categoryEmoji[p.ValuationCategory],
		p.Position,
		p.Name,
		p.ActualSalary,
		p.PredictedSalary,
		formatDiff(p)))
}

func (s *ValuationService) PlayersReport(v View) string {
	players := s.Players(v)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Player Valuations* (%s", v.position()))
	if v.Query != "" {
		sb.WriteString(fmt.Sprintf(", \"%s\"", v.Query))
	}
	sb.WriteString(")\n\n")

	if len(players) == 0 {
		sb.WriteString("No players match.")
		return sb.String()
	}

	for _, p := range players {
		writePlayerLine(&sb, p)
	}
	return sb.String()
}

func (s *ValuationService) PlayerReport(name string) (string, error) {
	p, err := s.FindPlayer(name)
	if err != nil {
		return "", err
	}

	labels := s.features.Labels(p.Position)
	features := p.Features()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s)\n", p.Name, p.Position))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Height: %d in, Weight: %d lbs\n", p.Height, p.Weight))
	for i, label := range labels {
		sb.WriteString(fmt.Sprintf("%s: %g\n", label, features[i]))
	}
	sb.WriteString(fmt.Sprintf("\nActual Salary: $%.1fM\n", p.ActualSalary))
	sb.WriteString(fmt.Sprintf("Predicted Salary: $%.1fM\n", p.PredictedSalary))
	sb.WriteString(fmt.Sprintf("Difference: %s\n", formatDiff(p)))
	sb.WriteString(fmt.Sprintf("%s %s", categoryEmoji[p.ValuationCategory], p.ValuationCategory))

	return sb.String(), nil
}

func (s *ValuationService) OverviewReport() string {
	overview := s.Overview()

	var sb strings.Builder
	sb.WriteString("📊 *Position Market Overview*\n\n")
	if len(overview) == 0 {
		sb.WriteString("No player data loaded.")
		return sb.String()
	}

	for _, o := range overview {
		sb.WriteString(fmt.Sprintf("*%s* (%d players)\n", o.Position, o.Count))
		sb.WriteString(fmt.Sprintf("   Avg. Actual: $%.1fM, Avg. Predicted: $%.1fM\n", o.AvgActualSalary, o.AvgPredictedSalary))
		sb.WriteString(fmt.Sprintf("   🟢 %d  🟡 %d  🔴 %d", o.Undervalued, o.FairValue, o.Overvalued))
		if o.Undefined > 0 {
			sb.WriteString(fmt.Sprintf("  ⚪ %d", o.Undefined))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (s *ValuationService) ImpactReport(position string) (string, error) {
	position = strings.ToUpper(strings.TrimSpace(position))
	impact, err := s.FeatureImpact(position)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚖️ *How Features Impact %s Valuation*\n\n", position))
	for _, fi := range impact {
		sb.WriteString(fmt.Sprintf("• *%s*: %.0f%% impact on predicted salary\n", fi.Feature, fi.Impact))
	}
	return sb.String(), nil
}

// UndervaluedReport lists undervalued players, biggest percent gap first.
func (s *ValuationService) UndervaluedReport() string {
	players := analysis.ByCategory(s.Classified(), models.Undervalued)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ValuationPercent > players[j].ValuationPercent
	})

	ds := s.Dataset()

	var sb strings.Builder
	sb.WriteString("💰 *Undervalued Players*\n")
	if ds.Origin == models.OriginSynthetic {
		sb.WriteString("_sample data_\n")
	}
	sb.WriteString("\n")

	if len(players) == 0 {
		sb.WriteString("No undervalued players right now.")
		return sb.String()
	}
	for _, p := range players {
		writePlayerLine(&sb, p)
	}
	return sb.String()
}

func (s *ValuationService) RadarReport(name string, scope Scope, v View) (string, error) {
	p, err := s.FindPlayer(name)
	if err != nil {
		return "", err
	}
	radar, err := s.Radar(p.Key(), scope, v)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📡 *%s* vs %s average (%s)\n\n", p.Name, p.Position, scope))
	for _, pt := range radar.Points {
		filled := int(pt.Value / 10)
		sb.WriteString(fmt.Sprintf("%-16s %s%s %.0f\n",
			pt.Feature,
			strings.Repeat("█", filled),
			strings.Repeat("░", 10-filled),
			pt.Value))
	}
	return sb.String(), nil
}

func (s *ValuationService) SelectionReport(session string) string {
	selected := s.Selected(session)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Selected Players* (%d)\n\n", len(selected)))
	if len(selected) == 0 {
		sb.WriteString("Nothing selected. Use /select <player>.")
		return sb.String()
	}
	for _, p := range selected {
		writePlayerLine(&sb, p)
	}
	return sb.String()
}
