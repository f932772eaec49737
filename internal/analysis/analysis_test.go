package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/valuebot/internal/models"
	"github.com/omarshaarawi/valuebot/internal/valuation"
)

func roster() []models.ClassifiedPlayer {
	return valuation.ClassifyAll([]models.PlayerRow{
		{Name: "Patrick Mahomes", Position: "QB", Height: 75, Weight: 225, Feature1: 66, Feature2: 4200, Feature3: 30, ActualSalary: 45, PredictedSalary: 52},
		{Name: "Josh Allen", Position: "QB", Height: 77, Weight: 237, Feature1: 64, Feature2: 4000, Feature3: 28, ActualSalary: 43, PredictedSalary: 42},
		{Name: "Derrick Henry", Position: "RB", Height: 75, Weight: 247, Feature1: 5.1, Feature2: 1400, Feature3: 12, ActualSalary: 8, PredictedSalary: 12},
		{Name: "Quenton Nelson", Position: "OL", Height: 77, Weight: 330, Feature1: 85, Feature2: 4, Feature3: 2, ActualSalary: 20, PredictedSalary: 16},
		{Name: "Zack Martin", Position: "OL", Height: 76, Weight: 315, Feature1: 75, Feature2: 2, Feature3: 6, ActualSalary: 18, PredictedSalary: 18},
	})
}

func TestAveragesScenario(t *testing.T) {
	players := valuation.ClassifyAll([]models.PlayerRow{
		{Name: "A", Position: "QB", ActualSalary: 20, PredictedSalary: 24},
		{Name: "B", Position: "QB", ActualSalary: 20, PredictedSalary: 16},
	})

	avg := Averages(players)
	require.Contains(t, avg, "QB")
	assert.InDelta(t, 20, avg["QB"].ActualSalary, 1e-9)
	assert.InDelta(t, 20, avg["QB"].PredictedSalary, 1e-9)
	assert.Equal(t, 2, avg["QB"].Count)
}

func TestAverages(t *testing.T) {
	avg := Averages(roster())

	assert.Len(t, avg, 3)
	ol := avg["OL"]
	assert.Equal(t, 2, ol.Count)
	assert.InDelta(t, 80, ol.Feature1, 1e-9)
	assert.InDelta(t, 3, ol.Feature2, 1e-9)
	assert.InDelta(t, 4, ol.Feature3, 1e-9)
	assert.InDelta(t, 19, ol.ActualSalary, 1e-9)
	assert.InDelta(t, 76.5, ol.Height, 1e-9)
	assert.InDelta(t, 322.5, ol.Weight, 1e-9)
}

func TestAveragesEmpty(t *testing.T) {
	assert.Empty(t, Averages(nil))

	onlyQB := Filter(roster(), "QB", "")
	avg := Averages(onlyQB)
	_, ok := avg["RB"]
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	cfg := DefaultFeatureConfig()
	players := roster()
	avg := Averages(players)

	nelson := players[3]
	points := cfg.Normalize(nelson, avg)

	assert.Equal(t, "PFF Grade", points[0].Feature)
	assert.Equal(t, "Penalties", points[1].Feature)
	assert.Equal(t, "Sacks Allowed", points[2].Feature)

	// 85 / (80*1.5) * 100
	assert.InDelta(t, 70.8333, points[0].Value, 1e-3)
	// (1 - 4/(3*2)) * 100
	assert.InDelta(t, 33.3333, points[1].Value, 1e-3)
	// (1 - 2/(4*2)) * 100
	assert.InDelta(t, 75, points[2].Value, 1e-9)
}

func TestNormalizeClampsAndDefaults(t *testing.T) {
	cfg := DefaultFeatureConfig()

	high := models.ClassifiedPlayer{PlayerRow: models.PlayerRow{Position: "QB", Feature1: 500, Feature2: 0, Feature3: -5}}
	avg := map[string]models.AverageRecord{"QB": {Feature1: 10, Feature2: 10, Feature3: 10}}
	points := cfg.Normalize(high, avg)
	assert.Equal(t, 100.0, points[0].Value)
	assert.Equal(t, 0.0, points[1].Value)
	assert.Equal(t, 0.0, points[2].Value)

	missing := cfg.Normalize(models.ClassifiedPlayer{PlayerRow: models.PlayerRow{Position: "K", Feature1: 3}}, avg)
	for i, p := range missing {
		assert.Equal(t, NoBaseline, p.Value)
		assert.Equal(t, fallbackLabels[i], p.Feature)
	}

	zeroMean := cfg.Normalize(high, map[string]models.AverageRecord{"QB": {}})
	for _, p := range zeroMean {
		assert.Equal(t, NoBaseline, p.Value)
	}
}

func TestNormalizeAlwaysInRange(t *testing.T) {
	cfg := DefaultFeatureConfig()
	players := roster()
	avg := Averages(players[:1])

	for _, p := range players {
		points := cfg.Normalize(p, avg)
		require.Len(t, points, 3)
		for _, pt := range points {
			assert.GreaterOrEqual(t, pt.Value, 0.0)
			assert.LessOrEqual(t, pt.Value, 100.0)
		}
	}
}

func TestFeatureConfig(t *testing.T) {
	cfg := DefaultFeatureConfig()

	assert.True(t, cfg.Known("TE"))
	assert.False(t, cfg.Known("K"))
	assert.Equal(t, models.FeatureLabels{"Yards Per Carry", "Rushing Yards", "Touchdowns"}, cfg.Labels("RB"))
	assert.Equal(t, fallbackLabels, cfg.Labels(""))
	assert.Equal(t, [3]bool{false, true, true}, cfg.Inverse("OL"))
	assert.Equal(t, [3]bool{}, cfg.Inverse("QB"))

	impact, ok := cfg.Impact("WR")
	require.True(t, ok)
	assert.Equal(t, "Catch %", impact[0].Feature)
	assert.InDelta(t, 40, impact[0].Impact, 1e-9)
	assert.InDelta(t, 45, impact[1].Impact, 1e-9)
	assert.InDelta(t, 15, impact[2].Impact, 1e-9)

	_, ok = cfg.Impact("K")
	assert.False(t, ok)

	var zero FeatureConfig
	assert.Equal(t, fallbackLabels, zero.Labels("QB"))
}

func TestFilter(t *testing.T) {
	players := roster()

	all := Filter(players, AllPositions, "")
	assert.Equal(t, players, all)

	qb := Filter(players, "QB", "mahomes")
	require.Len(t, qb, 1)
	assert.Equal(t, "Patrick Mahomes", qb[0].Name)

	byPosition := Filter(players, AllPositions, "ol")
	require.Len(t, byPosition, 2)
	assert.Equal(t, "Quenton Nelson", byPosition[0].Name)
	assert.Equal(t, "Zack Martin", byPosition[1].Name)

	assert.Empty(t, Filter(players, "RB", "allen"))
	assert.Empty(t, Filter(players, "TE", ""))
}

func TestFilterKeepsDuplicates(t *testing.T) {
	players := valuation.ClassifyAll([]models.PlayerRow{
		{Name: "Josh Allen", Position: "QB", ActualSalary: 40, PredictedSalary: 40},
		{Name: "Josh Allen", Position: "OL", ActualSalary: 10, PredictedSalary: 10},
	})

	assert.Len(t, Filter(players, AllPositions, "josh"), 2)
}

func TestOverview(t *testing.T) {
	summary := Overview(roster())

	require.Len(t, summary, 3)
	assert.Equal(t, []string{"QB", "RB", "OL"}, []string{summary[0].Position, summary[1].Position, summary[2].Position})

	qb := summary[0]
	assert.Equal(t, 2, qb.Count)
	assert.Equal(t, 1, qb.Undervalued)
	assert.Equal(t, 1, qb.FairValue)
	assert.InDelta(t, 44, qb.AvgActualSalary, 1e-9)

	ol := summary[2]
	assert.Equal(t, 1, ol.Overvalued)
	assert.Equal(t, 1, ol.FairValue)
}

func TestByCategory(t *testing.T) {
	under := ByCategory(roster(), models.Undervalued)
	require.Len(t, under, 2)
	assert.Equal(t, "Patrick Mahomes", under[0].Name)
	assert.Equal(t, "Derrick Henry", under[1].Name)
}

func TestSelection(t *testing.T) {
	players := valuation.ClassifyAll([]models.PlayerRow{
		{Name: "Josh Allen", Position: "QB", ActualSalary: 40, PredictedSalary: 40},
		{Name: "Josh Allen", Position: "LB", ActualSalary: 10, PredictedSalary: 10},
		{Name: "Zack Martin", Position: "OL", ActualSalary: 18, PredictedSalary: 18},
	})

	var s Selection
	s, added := s.Toggle(players[2].Key())
	assert.True(t, added)
	s, _ = s.Toggle(players[1].Key())

	assert.True(t, s.Contains(models.PlayerKey{Name: "Josh Allen", Position: "LB"}))
	assert.False(t, s.Contains(models.PlayerKey{Name: "Josh Allen", Position: "QB"}))

	resolved := s.Resolve(players)
	require.Len(t, resolved, 2)
	assert.Equal(t, "Zack Martin", resolved[0].Name)
	assert.Equal(t, "LB", resolved[1].Position)

	before := s
	s, added = s.Toggle(players[2].Key())
	assert.False(t, added)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, before.Len())

	assert.Equal(t, 2, NewSelection(players[0].Key(), players[0].Key(), players[1].Key()).Len())
}
