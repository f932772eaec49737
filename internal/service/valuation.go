package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/valuebot/internal/analysis"
	"github.com/omarshaarawi/valuebot/internal/api/source"
	"github.com/omarshaarawi/valuebot/internal/models"
	"github.com/omarshaarawi/valuebot/internal/repository/memory"
	"github.com/omarshaarawi/valuebot/internal/valuation"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrUnknownScope    = errors.New("unknown scope")
	ErrUnknownPosition = errors.New("unknown position")
	ErrAmbiguousPlayer = errors.New("ambiguous player name")
)

// Scope picks the players radar averages are computed over.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
	ScopeSelected Scope = "selected"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeFiltered:
		return ScopeFiltered, nil
	case ScopeSelected:
		return ScopeSelected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// View carries the filter and selection a request is evaluated against.
type View struct {
	Position string
	Query    string
	Session  string
}

func (v View) position() string {
	if v.Position == "" {
		return analysis.AllPositions
	}
	return v.Position
}

const matchThreshold = 0.7

type ValuationService struct {
	loader   *source.Loader
	repo     *memory.Repository
	features analysis.FeatureConfig
}

func NewValuationService(loader *source.Loader, repo *memory.Repository, features analysis.FeatureConfig) *ValuationService {
	return &ValuationService{loader: loader, repo: repo, features: features}
}

// Reload replaces the current dataset with a fresh load.
func (s *ValuationService) Reload(ctx context.Context) models.Dataset {
	ds := s.loader.Load(ctx)
	s.repo.SaveDataset(ds)
	slog.Info("Dataset reloaded", "origin", ds.Origin, "rows", len(ds.Rows))
	return ds
}

func (s *ValuationService) Dataset() models.Dataset {
	return s.repo.GetDataset()
}

// Classified derives the classified rows from the current raw rows.
func (s *ValuationService) Classified() []models.ClassifiedPlayer {
	return valuation.ClassifyAll(s.repo.GetDataset().Rows)
}

func (s *ValuationService) Players(v View) []models.ClassifiedPlayer {
	return analysis.Filter(s.Classified(), v.position(), v.Query)
}

func (s *ValuationService) Positions() []string {
	return analysis.Positions(s.Classified())
}

func (s *ValuationService) Overview() []models.PositionSummary {
	return analysis.Overview(s.Classified())
}

func (s *ValuationService) Labels(position string) models.FeatureLabels {
	return s.features.Labels(position)
}

func (s *ValuationService) FeatureImpact(position string) ([3]models.FeatureImpact, error) {
	impact, ok := s.features.Impact(position)
	if !ok {
		return impact, fmt.Errorf("%w: %s", ErrUnknownPosition, position)
	}
	return impact, nil
}

func (s *ValuationService) scoped(scope Scope, v View) []models.ClassifiedPlayer {
	all := s.Classified()
	switch scope {
	case ScopeFiltered:
		return analysis.Filter(all, v.position(), v.Query)
	case ScopeSelected:
		return s.repo.GetSelection(v.Session).Resolve(all)
	default:
		return all
	}
}

func (s *ValuationService) Averages(scope Scope, v View) map[string]models.AverageRecord {
	return analysis.Averages(s.scoped(scope, v))
}

// Lookup returns the classified row for an exact key.
func (s *ValuationService) Lookup(k models.PlayerKey) (models.ClassifiedPlayer, error) {
	for _, p := range s.Classified() {
		if p.Key() == k {
			return p, nil
		}
	}
	return models.ClassifiedPlayer{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, k)
}

// FindPlayer resolves a free-text name. A position qualifier may follow the
// name as "name|POS", "name (POS)" or a trailing loaded position token. Within
// the candidates a case-insensitive exact match wins, then the closest
// Levenshtein match above the similarity threshold. A name shared by players
// at several positions is ambiguous unless qualified.
func (s *ValuationService) FindPlayer(text string) (models.ClassifiedPlayer, error) {
	players := s.Classified()
	name, position := splitQualifier(text, analysis.Positions(players))
	if name == "" {
		return models.ClassifiedPlayer{}, fmt.Errorf("%w: empty name", ErrPlayerNotFound)
	}

	candidates := players
	if position != "" {
		candidates = make([]models.ClassifiedPlayer, 0, len(players))
		for _, p := range players {
			if strings.EqualFold(p.Position, position) {
				candidates = append(candidates, p)
			}
		}
	}

	query := strings.ToLower(name)
	matched := ""
	for _, p := range candidates {
		if strings.ToLower(p.Name) == query {
			matched = p.Name
			break
		}
	}

	if matched == "" {
		bestScore := 0.0
		for _, p := range candidates {
			fullName := strings.ToLower(p.Name)
			distance := fuzzy.LevenshteinDistance(query, fullName)
			maxLen := float64(max(utf8.RuneCountInString(query), utf8.RuneCountInString(fullName)))
			similarity := 1 - float64(distance)/maxLen

			if similarity > matchThreshold && similarity > bestScore {
				bestScore = similarity
				matched = p.Name
			}
		}
	}

	if matched == "" {
		return models.ClassifiedPlayer{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, strings.TrimSpace(text))
	}

	var found []models.ClassifiedPlayer
	for _, p := range candidates {
		if strings.EqualFold(p.Name, matched) {
			found = append(found, p)
		}
	}
	if len(found) > 1 && !samePosition(found) {
		options := make([]string, len(found))
		for i, p := range found {
			options[i] = fmt.Sprintf("%s (%s)", p.Name, p.Position)
		}
		return models.ClassifiedPlayer{}, fmt.Errorf("%w: %s matches %s", ErrAmbiguousPlayer, matched, strings.Join(options, ", "))
	}
	return found[0], nil
}

func samePosition(players []models.ClassifiedPlayer) bool {
	for _, p := range players[1:] {
		if p.Position != players[0].Position {
			return false
		}
	}
	return true
}

// splitQualifier separates an optional position from a player name. A
// trailing bare token only counts when it names one of positions.
func splitQualifier(text string, positions []string) (name, position string) {
	text = strings.TrimSpace(text)

	if n, pos, ok := strings.Cut(text, "|"); ok {
		return strings.TrimSpace(n), strings.TrimSpace(pos)
	}
	if strings.HasSuffix(text, ")") {
		if i := strings.LastIndex(text, "("); i > 0 {
			return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1 : len(text)-1])
		}
	}
	if i := strings.LastIndex(text, " "); i > 0 {
		last := text[i+1:]
		for _, p := range positions {
			if strings.EqualFold(p, last) {
				return strings.TrimSpace(text[:i]), p
			}
		}
	}
	return text, ""
}

// Radar scores a player against the averages of the chosen scope.
func (s *ValuationService) Radar(k models.PlayerKey, scope Scope, v View) (models.PlayerRadar, error) {
	p, err := s.Lookup(k)
	if err != nil {
		return models.PlayerRadar{}, err
	}
	return models.PlayerRadar{
		Player: p,
		Scope:  string(scope),
		Points: s.features.Normalize(p, s.Averages(scope, v)),
	}, nil
}

func (s *ValuationService) ToggleSelection(session string, k models.PlayerKey) (bool, error) {
	if _, err := s.Lookup(k); err != nil {
		return false, err
	}
	_, added := s.repo.ToggleSelection(session, k)
	return added, nil
}

func (s *ValuationService) ClearSelection(session string) {
	s.repo.ClearSelection(session)
}

func (s *ValuationService) Selected(session string) []models.ClassifiedPlayer {
	return s.repo.GetSelection(session).Resolve(s.Classified())
}
