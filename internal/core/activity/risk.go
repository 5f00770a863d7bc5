package activity

import (
	"math"

	"climaterisk.app/internal/core/climate"
)

// WeightedRisk returns round(Σ factor·weight / Σ weight), or 0 when every weight is zero.
// Inputs are not clamped, so the result lies within [min(factors), max(factors)].
func WeightedRisk(factors Factors, weights Weights) int {
	total := weights.Sum()
	if total == 0 {
		return 0
	}
	weighted := factors.Hot*weights.Hot +
		factors.Cold*weights.Cold +
		factors.Windy*weights.Windy +
		factors.Wet*weights.Wet
	return int(math.Round(weighted / total))
}

// RiskLevelFor buckets a score into low (≤33), medium (≤66) or high
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score <= 33:
		return RiskLow
	case score <= 66:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FactorsFromExtremes takes the exceedance percentages of a report as risk factors
func FactorsFromExtremes(extremes climate.ExtremeConditions) Factors {
	return Factors{
		Hot:   float64(extremes.VeryHot),
		Cold:  float64(extremes.VeryCold),
		Windy: float64(extremes.VeryWindy),
		Wet:   float64(extremes.VeryWet),
	}
}
