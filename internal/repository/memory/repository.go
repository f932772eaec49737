package memory

import (
	"sync"

	"github.com/omarshaarawi/valuebot/internal/analysis"
	"github.com/omarshaarawi/valuebot/internal/models"
)

type Repository struct {
	dataset    models.Dataset
	selections map[string]analysis.Selection
	mu         sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{selections: make(map[string]analysis.Selection)}
}

func (r *Repository) SaveDataset(ds models.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dataset = ds
}

// GetDataset returns the current dataset. Callers must not modify Rows.
func (r *Repository) GetDataset() models.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataset
}

func (r *Repository) GetSelection(session string) analysis.Selection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selections[session]
}

// ToggleSelection flips k in the session's selection and reports whether it
// is now selected.
func (r *Repository) ToggleSelection(session string, k models.PlayerKey) (analysis.Selection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, added := r.selections[session].Toggle(k)
	r.selections[session] = s
	return s, added
}

func (r *Repository) ClearSelection(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selections, session)
}
