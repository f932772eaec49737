package synthetic

import (
	"math"
	"math/rand/v2"

	"github.com/omarshaarawi/valuebot/internal/models"
)

const DefaultCount = 30

// Positions is the fixed set generated rows draw from.
var Positions = []string{"QB", "RB", "WR", "TE", "OL"}

var (
	firstNames = []string{"Patrick", "Tom", "Aaron", "Lamar", "Josh", "Russell", "Justin", "Dak", "Joe", "Jalen"}
	lastNames  = []string{"Mahomes", "Brady", "Rodgers", "Jackson", "Allen", "Wilson", "Herbert", "Prescott", "Burrow", "Hurts"}
)

// band is a uniform [lo, lo+width) range.
type band struct{ lo, width float64 }

func (b band) draw(rng *rand.Rand) float64 {
	return b.lo + rng.Float64()*b.width
}

type profile struct {
	features [3]band
	salary   band
}

var profiles = map[string]profile{
	"QB": {features: [3]band{{55, 15}, {3000, 2000}, {15, 25}}, salary: band{20, 30}},
	"RB": {features: [3]band{{3.5, 2.5}, {500, 1000}, {3, 12}}, salary: band{5, 10}},
	"WR": {features: [3]band{{55, 20}, {700, 800}, {3, 9}}, salary: band{15, 15}},
	"TE": {features: [3]band{{60, 20}, {400, 600}, {2, 8}}, salary: band{8, 8}},
	"OL": {features: [3]band{{60, 30}, {0, 8}, {0, 8}}, salary: band{10, 15}},
}

// minSalary keeps rounded salaries strictly positive.
const minSalary = 0.1

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

// Generate returns count random players with the same schema as parsed
// input. A nil rng uses a randomly seeded source.
func Generate(count int, rng *rand.Rand) []models.PlayerRow {
	if count <= 0 {
		count = DefaultCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	players := make([]models.PlayerRow, 0, count)
	for range count {
		position := pick(rng, Positions)
		prof := profiles[position]

		height := 70 + rng.IntN(8)
		weight := 180 + rng.IntN(60)
		if position == "OL" {
			height = 74 + rng.IntN(6)
			weight = 290 + rng.IntN(40)
		}

		actual := math.Max(minSalary, round(prof.salary.draw(rng), 1))
		variability := (rng.Float64()*2 - 1) * 0.2
		predicted := math.Max(minSalary, round(actual*(1+variability), 1))

		players = append(players, models.PlayerRow{
			Name:            pick(rng, firstNames) + " " + pick(rng, lastNames),
			Position:        position,
			Height:          height,
			Weight:          weight,
			Feature1:        round(prof.features[0].draw(rng), 1),
			Feature2:        round(prof.features[1].draw(rng), 0),
			Feature3:        round(prof.features[2].draw(rng), 0),
			ActualSalary:    actual,
			PredictedSalary: predicted,
		})
	}
	return players
}
