package valuation

import (
	"math"

	"github.com/omarshaarawi/valuebot/internal/models"
)

const (
	// Threshold is the inclusive percent gap for Undervalued / Overvalued.
	Threshold = 10.0

	ColorUndervalued = "#4CAF50"
	ColorOvervalued  = "#F44336"
	ColorFairValue   = "#FFC107"
	ColorUndefined   = "#9E9E9E"
)

var categoryColors = map[models.ValuationCategory]string{
	models.Undervalued: ColorUndervalued,
	models.Overvalued:  ColorOvervalued,
	models.FairValue:   ColorFairValue,
	models.Undefined:   ColorUndefined,
}

// Color returns the display colour for a category.
func Color(c models.ValuationCategory) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return ColorUndefined
}

// Categorize buckets a percent gap. Boundaries are inclusive.
func Categorize(percent float64) models.ValuationCategory {
	switch {
	case math.IsNaN(percent) || math.IsInf(percent, 0):
		return models.Undefined
	case percent >= Threshold:
		return models.Undervalued
	case percent <= -Threshold:
		return models.Overvalued
	default:
		return models.FairValue
	}
}

// Defined reports whether the row's actual salary can be used as a divisor.
func Defined(p models.PlayerRow) bool {
	return p.ActualSalary > 0 && !math.IsInf(p.ActualSalary, 0) &&
		!math.IsNaN(p.PredictedSalary) && !math.IsInf(p.PredictedSalary, 0)
}

// Classify derives the valuation fields from the raw salaries. Rows with a
// non-positive or non-finite salary get the Undefined category and a zero
// percent instead of NaN or Inf.
func Classify(p models.PlayerRow) models.ClassifiedPlayer {
	c := models.ClassifiedPlayer{PlayerRow: p}

	if !Defined(p) {
		if !math.IsNaN(p.PredictedSalary-p.ActualSalary) && !math.IsInf(p.PredictedSalary-p.ActualSalary, 0) {
			c.ValuationDiff = p.PredictedSalary - p.ActualSalary
		}
		c.ValuationCategory = models.Undefined
		c.ValuationColor = ColorUndefined
		return c
	}

	c.ValuationDiff = p.PredictedSalary - p.ActualSalary
	c.ValuationPercent = c.ValuationDiff / p.ActualSalary * 100
	c.PercentDefined = true
	c.ValuationCategory = Categorize(c.ValuationPercent)
	c.ValuationColor = Color(c.ValuationCategory)
	return c
}

func ClassifyAll(rows []models.PlayerRow) []models.ClassifiedPlayer {
	out := make([]models.ClassifiedPlayer, len(rows))
	for i, row := range rows {
		out[i] = Classify(row)
	}
	return out
}
