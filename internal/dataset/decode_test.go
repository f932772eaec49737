package dataset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/omarshaarawi/valuebot/internal/models"
)

func TestDecode(t *testing.T) {
	res, err := ParseString(sampleCSV)
	require.NoError(t, err)

	players, warnings := Decode(res.Rows)
	assert.Empty(t, warnings)
	require.Len(t, players, 2)

	assert.Equal(t, models.PlayerRow{
		Name:            "Patrick Mahomes",
		Position:        "QB",
		Height:          75,
		Weight:          225,
		Feature1:        67.2,
		Feature2:        4183,
		Feature3:        27,
		ActualSalary:    45,
		PredictedSalary: 51.3,
	}, players[0])
}

func TestDecodeReportsBadFields(t *testing.T) {
	rows := []RawRow{{
		"name":          1234.0,
		"position":      " OL ",
		"height":        "tall",
		"actual_salary": 12.0,
	}}

	players, warnings := Decode(rows)
	require.Len(t, players, 1)

	p := players[0]
	assert.Equal(t, "1234", p.Name)
	assert.Equal(t, "OL", p.Position)
	assert.Zero(t, p.Height)
	assert.Equal(t, 12.0, p.ActualSalary)

	// height non-numeric plus weight, three features and predicted salary missing
	assert.Len(t, warnings, 6)
	for _, w := range warnings {
		assert.Equal(t, 0, w.Row)
	}
}

func TestMissingColumns(t *testing.T) {
	assert.Empty(t, MissingColumns(RequiredColumns))
	assert.Equal(t,
		[]string{ColFeature3, ColPredictedSalary},
		MissingColumns([]string{"name", "position", "height", "weight", "feature_1", "feature_2", "actual_salary"}),
	)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"name", "position", "height", "weight", "feature_1", "feature_2", "feature_3", "actual_salary", "predicted_salary"},
		{"Travis Kelce", "TE", 77, 250, 72.5, 984, 5, 17.3, 15.1},
		{"Sparse", "OL"},
	}
	for i, row := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := ParseXLSX(&buf, "")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Rows, 2)

	players, _ := Decode(res.Rows)
	assert.Equal(t, "Travis Kelce", players[0].Name)
	assert.Equal(t, 77, players[0].Height)
	assert.Equal(t, 72.5, players[0].Feature1)
	assert.Equal(t, 17.3, players[0].ActualSalary)

	assert.Nil(t, res.Rows[1]["actual_salary"])
}
