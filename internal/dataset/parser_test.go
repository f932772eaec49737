package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = ` name , position,height,weight,feature_1,feature_2,feature_3,actual_salary,predicted_salary
Patrick Mahomes,QB,75,225,67.2,4183,27,45,51.3

Josh Allen,QB,77,237,63.6,4306,29,43,39
`

func TestParseTypesAndTrimsHeaders(t *testing.T) {
	res, err := ParseString(sampleCSV)
	require.NoError(t, err)

	assert.Equal(t, RequiredColumns, res.Fields)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Rows, 2)

	first := res.Rows[0]
	assert.Equal(t, "Patrick Mahomes", first["name"])
	assert.Equal(t, "QB", first["position"])
	assert.Equal(t, 75.0, first["height"])
	assert.Equal(t, 67.2, first["feature_1"])
	assert.Equal(t, 51.3, first["predicted_salary"])

	assert.Equal(t, "Josh Allen", res.Rows[1]["name"])
}

func TestTypeValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"12", 12.0},
		{"-3.5", -3.5},
		{".5", 0.5},
		{"7.", 7.0},
		{"1e3", 1000.0},
		{" 42 ", 42.0},
		{"TRUE", true},
		{"false", false},
		{"True", true},
		{"tRuE", "tRuE"},
		{"QB", "QB"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"0x10", "0x10"},
		{"1,000", "1,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeValue(tt.in), "typeValue(%q)", tt.in)
	}
}

func TestParseKeepsMalformedRows(t *testing.T) {
	text := "name,position,actual_salary\n" +
		"Short,QB\n" +
		"Long,RB,10,extra,7\n" +
		"Fine,WR,20\n"

	res, err := ParseString(text)
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 0, res.Warnings[0].Row)
	assert.Contains(t, res.Warnings[0].Message, "too few fields")
	assert.Equal(t, 1, res.Warnings[1].Row)
	assert.Contains(t, res.Warnings[1].Message, "too many fields")

	short := res.Rows[0]
	assert.Equal(t, "Short", short["name"])
	_, ok := short["actual_salary"]
	assert.False(t, ok)

	long := res.Rows[1]
	assert.Equal(t, 10.0, long["actual_salary"])
	assert.Equal(t, []any{"extra", 7.0}, long[ExtraFieldsKey])

	assert.Equal(t, "Fine", res.Rows[2]["name"])
}

func TestParseContinuesAfterQuoteError(t *testing.T) {
	text := "name,position\n" +
		"Joe,Q\"B\n" +
		"After,RB\n"

	res, err := ParseString(text)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Warnings)
	last := res.Rows[len(res.Rows)-1]
	assert.Equal(t, "After", last["name"])
	assert.Equal(t, "RB", last["position"])
}

func TestParseRecoversFromUnterminatedQuote(t *testing.T) {
	text := "name,position\n" +
		"\"Joe,QB\n" +
		"A,RB\n" +
		"B,WR\n"

	res, err := ParseString(text)
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "Joe,QB", res.Rows[0]["name"])
	assert.Equal(t, "A", res.Rows[1]["name"])
	assert.Equal(t, "RB", res.Rows[1]["position"])
	assert.Equal(t, "B", res.Rows[2]["name"])

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 0, res.Warnings[0].Row)
	assert.Contains(t, res.Warnings[0].Message, "quoted-field")
	assert.Contains(t, res.Warnings[1].Message, "too few fields")
}

func TestParseSkipsBlankLines(t *testing.T) {
	text := "\n   \nname,position\n\n  ,  \nA,QB\n\n"

	res, err := ParseString(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "position"}, res.Fields)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A", res.Rows[0]["name"])
}

func TestParseMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	assert.Error(t, err)
}
