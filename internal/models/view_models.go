package models

type AverageRecord struct {
	Count           int     `json:"count"`
	Feature1        float64 `json:"feature_1"`
	Feature2        float64 `json:"feature_2"`
	Feature3        float64 `json:"feature_3"`
	ActualSalary    float64 `json:"actual_salary"`
	PredictedSalary float64 `json:"predicted_salary"`
	Height          float64 `json:"height"`
	Weight          float64 `json:"weight"`
}

// Features returns the feature means in slot order.
func (a AverageRecord) Features() [3]float64 {
	return [3]float64{a.Feature1, a.Feature2, a.Feature3}
}

type RadarPoint struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

type FeatureLabels [3]string

type FeatureImpact struct {
	Feature string  `json:"feature"`
	Impact  float64 `json:"impact"`
}

type PositionSummary struct {
	Position           string  `json:"position"`
	Count              int     `json:"count"`
	AvgActualSalary    float64 `json:"avg_actual_salary"`
	AvgPredictedSalary float64 `json:"avg_predicted_salary"`
	Undervalued        int     `json:"undervalued"`
	FairValue          int     `json:"fair_value"`
	Overvalued         int     `json:"overvalued"`
	Undefined          int     `json:"undefined"`
}

type PlayerRadar struct {
	Player ClassifiedPlayer `json:"player"`
	Scope  string           `json:"scope"`
	Points [3]RadarPoint    `json:"points"`
}
