package analysis

import (
	"slices"

	"github.com/omarshaarawi/valuebot/internal/models"
)

// Selection is an ordered set of players keyed by name and position, so two
// players sharing a name at different positions stay distinct. Methods
// return a new Selection; the receiver is never modified.
type Selection struct {
	keys []models.PlayerKey
}

func NewSelection(keys ...models.PlayerKey) Selection {
	var s Selection
	for _, k := range keys {
		if !s.Contains(k) {
			s.keys = append(s.keys, k)
		}
	}
	return s
}

func (s Selection) Contains(k models.PlayerKey) bool {
	return slices.Contains(s.keys, k)
}

// Toggle adds k when absent and removes it when present.
func (s Selection) Toggle(k models.PlayerKey) (Selection, bool) {
	if i := slices.Index(s.keys, k); i >= 0 {
		return Selection{keys: slices.Delete(slices.Clone(s.keys), i, i+1)}, false
	}
	return Selection{keys: append(slices.Clone(s.keys), k)}, true
}

func (s Selection) Keys() []models.PlayerKey {
	return slices.Clone(s.keys)
}

func (s Selection) Len() int {
	return len(s.keys)
}

// Resolve returns the selected players present in players, in selection
// order. Keys with no matching row are skipped; duplicate rows under one
// key resolve to the first.
func (s Selection) Resolve(players []models.ClassifiedPlayer) []models.ClassifiedPlayer {
	index := make(map[models.PlayerKey]int, len(players))
	for i := len(players) - 1; i >= 0; i-- {
		index[players[i].Key()] = i
	}

	var out []models.ClassifiedPlayer
	for _, k := range s.keys {
		if i, ok := index[k]; ok {
			out = append(out, players[i])
		}
	}
	return out
}
