package analysis

import (
	"strings"

	"github.com/omarshaarawi/valuebot/internal/models"
)

// AllPositions matches every position in Filter.
const AllPositions = "All"

// Filter keeps players matching position (or AllPositions) whose name or
// position contains query, case-insensitively. Input order is preserved.
func Filter(players []models.ClassifiedPlayer, position, query string) []models.ClassifiedPlayer {
	q := strings.ToLower(query)
	out := make([]models.ClassifiedPlayer, 0, len(players))

	for _, p := range players {
		if position != AllPositions && p.Position != position {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Position), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
