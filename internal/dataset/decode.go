package dataset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/omarshaarawi/valuebot/internal/models"
)

const (
	ColName            = "name"
	ColPosition        = "position"
	ColHeight          = "height"
	ColWeight          = "weight"
	ColFeature1        = "feature_1"
	ColFeature2        = "feature_2"
	ColFeature3        = "feature_3"
	ColActualSalary    = "actual_salary"
	ColPredictedSalary = "predicted_salary"
)

// RequiredColumns lists the input columns in file order.
var RequiredColumns = []string{
	ColName, ColPosition, ColHeight, ColWeight,
	ColFeature1, ColFeature2, ColFeature3,
	ColActualSalary, ColPredictedSalary,
}

// MissingColumns returns the required columns absent from fields.
func MissingColumns(fields []string) []string {
	have := make(map[string]bool, len(fields))
	for _, f := range fields {
		have[f] = true
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

type decoder struct {
	row      int
	warnings []ParseWarning
}

func (d *decoder) warn(format string, args ...any) {
	w := ParseWarning{Row: d.row, Message: fmt.Sprintf(format, args...)}
	d.warnings = append(d.warnings, w)
	slog.Warn("Row decode problem", "row", w.Row, "message", w.Message)
}

func (d *decoder) text(raw RawRow, col string) string {
	switch v := raw[col].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		d.warn("field %q is missing", col)
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d *decoder) number(raw RawRow, col string) float64 {
	switch v := raw[col].(type) {
	case float64:
		return v
	case nil:
		d.warn("field %q is missing", col)
	default:
		d.warn("field %q is not numeric: %v", col, v)
	}
	return 0
}

// Decode maps raw records to typed rows. Missing or non-numeric values
// become zero and are reported; no row is dropped.
func Decode(rows []RawRow) ([]models.PlayerRow, []ParseWarning) {
	d := &decoder{}
	players := make([]models.PlayerRow, 0, len(rows))

	for i, raw := range rows {
		d.row = i
		players = append(players, models.PlayerRow{
			Name:            d.text(raw, ColName),
			Position:        d.text(raw, ColPosition),
			Height:          int(d.number(raw, ColHeight)),
			Weight:          int(d.number(raw, ColWeight)),
			Feature1:        d.number(raw, ColFeature1),
			Feature2:        d.number(raw, ColFeature2),
			Feature3:        d.number(raw, ColFeature3),
			ActualSalary:    d.number(raw, ColActualSalary),
			PredictedSalary: d.number(raw, ColPredictedSalary),
		})
	}

	return players, d.warnings
}
