package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/omarshaarawi/valuebot/internal/config"
	"github.com/omarshaarawi/valuebot/internal/dataset"
	"github.com/omarshaarawi/valuebot/internal/models"
	"github.com/omarshaarawi/valuebot/internal/synthetic"
	"github.com/omarshaarawi/valuebot/internal/valuation"
)

var ErrNoRows = errors.New("source produced no rows")

type Loader struct {
	client *Client
	cfg    config.Data
	rng    *rand.Rand
	now    func() time.Time
}

func NewLoader(client *Client, cfg config.Data) *Loader {
	return &Loader{client: client, cfg: cfg, now: time.Now}
}

// WithRand fixes the synthetic fallback's random source.
func (l *Loader) WithRand(rng *rand.Rand) *Loader {
	l.rng = rng
	return l
}

func isWorkbook(source string) bool {
	p := source
	if u, err := url.Parse(source); err == nil && IsRemote(source) {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".xlsx")
}

// LoadSource fetches and parses the configured source without falling back.
// Row-level problems end up in Dataset.Warnings.
func (l *Loader) LoadSource(ctx context.Context) (models.Dataset, error) {
	body, err := l.client.Fetch(ctx, l.cfg.Source)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("fetching %s: %w", l.cfg.Source, err)
	}

	var res dataset.ParseResult
	if isWorkbook(l.cfg.Source) {
		res, err = dataset.ParseXLSX(bytes.NewReader(body), l.cfg.Sheet)
	} else {
		res, err = dataset.Parse(bytes.NewReader(body))
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("parsing %s: %w", l.cfg.Source, err)
	}
	if len(res.Rows) == 0 {
		return models.Dataset{}, ErrNoRows
	}

	var warnings []string
	if missing := dataset.MissingColumns(res.Fields); len(missing) > 0 {
		slog.Warn("Source is missing columns", "source", l.cfg.Source, "columns", missing)
		warnings = append(warnings, fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")))
	}
	for _, w := range res.Warnings {
		warnings = append(warnings, w.String())
	}

	rows, decodeWarnings := dataset.Decode(res.Rows)
	for _, w := range decodeWarnings {
		warnings = append(warnings, w.String())
	}

	for i, row := range rows {
		if !valuation.Defined(row) {
			slog.Warn("Row has no usable actual salary", "row", i, "name", row.Name, "actual_salary", row.ActualSalary)
			warnings = append(warnings, fmt.Sprintf("row %d: actual_salary %v is not usable, valuation undefined", i, row.ActualSalary))
		}
	}

	return models.Dataset{
		Rows:     rows,
		Origin:   models.OriginSource,
		Source:   l.cfg.Source,
		Warnings: warnings,
		LoadedAt: l.now(),
	}, nil
}

// Load returns the source dataset, or a synthetic one when the source
// cannot be fetched or parsed. It always returns a usable dataset.
func (l *Loader) Load(ctx context.Context) models.Dataset {
	ds, err := l.LoadSource(ctx)
	if err == nil {
		slog.Info("Loaded player data", "source", ds.Source, "rows", len(ds.Rows), "warnings", len(ds.Warnings))
		return ds
	}

	slog.Warn("Error loading player data, falling back to synthetic data", "source", l.cfg.Source, "error", err)
	return l.Synthetic()
}

func (l *Loader) Synthetic() models.Dataset {
	return models.Dataset{
		Rows:     synthetic.Generate(l.cfg.SyntheticCount, l.rng),
		Origin:   models.OriginSynthetic,
		Source:   "synthetic",
		LoadedAt: l.now(),
	}
}
