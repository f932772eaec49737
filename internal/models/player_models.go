package models

import "time"

// PlayerRow is one raw input record.
type PlayerRow struct {
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	Height          int     `json:"height"`
	Weight          int     `json:"weight"`
	Feature1        float64 `json:"feature_1"`
	Feature2        float64 `json:"feature_2"`
	Feature3        float64 `json:"feature_3"`
	ActualSalary    float64 `json:"actual_salary"`
	PredictedSalary float64 `json:"predicted_salary"`
}

// Key returns the composite identity used for selection.
func (p PlayerRow) Key() PlayerKey {
	return PlayerKey{Name: p.Name, Position: p.Position}
}

// Features returns feature_1..3 in slot order.
func (p PlayerRow) Features() [3]float64 {
	return [3]float64{p.Feature1, p.Feature2, p.Feature3}
}

type ValuationCategory string

const (
	Undervalued ValuationCategory = "Undervalued"
	Overvalued  ValuationCategory = "Overvalued"
	FairValue   ValuationCategory = "Fair Value"
	// Undefined marks rows whose actual salary cannot be used as a divisor.
	Undefined ValuationCategory = "Undefined"
)

type ClassifiedPlayer struct {
	PlayerRow
	ValuationDiff     float64           `json:"valuation_diff"`
	ValuationPercent  float64           `json:"valuation_percent"`
	PercentDefined    bool              `json:"percent_defined"`
	ValuationCategory ValuationCategory `json:"valuation_category"`
	ValuationColor    string            `json:"valuation_color"`
}

type PlayerKey struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

func (k PlayerKey) String() string {
	return k.Name + "|" + k.Position
}

type Origin string

const (
	OriginSource    Origin = "source"
	OriginSynthetic Origin = "synthetic"
)

// Dataset is the immutable raw-row collection held for a session.
type Dataset struct {
	Rows     []PlayerRow
	Origin   Origin
	Source   string
	Warnings []string
	LoadedAt time.Time
}
