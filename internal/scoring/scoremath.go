// Package scoring implements the deterministic risk score math used across
// the risk register: inherent and residual scores, multi-control
// effectiveness compounding, and risk-level classification.
package scoring

import (
	"fmt"
	"math"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
)

// RiskLevel classifies a score into a register band
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Risk-level thresholds. Each band is half-open on its low end.
const (
	mediumThreshold   = 5
	highThreshold     = 10
	criticalThreshold = 17
)

// CalculateInherentScore returns likelihood * impact. Both axes must lie in
// [1,5]; non-integer values in range are accepted — callers needing integer
// strictness use ValidateRiskParameters first.
func CalculateInherentScore(likelihood, impact float64) (float64, error) {
	if likelihood < 1 || likelihood > 5 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("likelihood must be between 1 and 5, got %v", likelihood), nil)
	}
	if impact < 1 || impact > 5 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("impact must be between 1 and 5, got %v", impact), nil)
	}
	return likelihood * impact, nil
}

// CalculateResidualScore reduces an inherent score by a control effectiveness
// percentage in [0,100]. The result is not clamped beyond the formula;
// out-of-range effectiveness is an error, never silently clamped.
func CalculateResidualScore(inherentScore, effectivenessPercent float64) (float64, error) {
	if effectivenessPercent < 0 || effectivenessPercent > 100 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("control effectiveness must be between 0 and 100, got %v", effectivenessPercent), nil)
	}
	return round2(inherentScore * (1 - effectivenessPercent/100)), nil
}

// CalculateOverallEffectiveness compounds independent control effectiveness
// percentages via 1 - Π(1 - e/100). Controls act as independent barriers, so
// the combined value never exceeds 100 the way naive summation would.
// An empty list yields 0; a single value yields itself.
func CalculateOverallEffectiveness(effectivenessList []float64) (float64, error) {
	if len(effectivenessList) == 0 {
		return 0, nil
	}

	remaining := 1.0
	for _, e := range effectivenessList {
		if e < 0 || e > 100 {
			return 0, apperrors.InvalidInput(fmt.Sprintf("control effectiveness must be between 0 and 100, got %v", e), nil)
		}
		remaining *= 1 - e/100
	}

	return round2((1 - remaining) * 100), nil
}

// GetRiskLevel classifies a score: <5 LOW, [5,10) MEDIUM, [10,17) HIGH,
// >=17 CRITICAL.
func GetRiskLevel(score float64) RiskLevel {
	switch {
	case score >= criticalThreshold:
		return RiskLevelCritical
	case score >= highThreshold:
		return RiskLevelHigh
	case score >= mediumThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// GetRiskLevelColor maps a risk level to the dashboard's style token
func GetRiskLevelColor(level RiskLevel) string {
	switch level {
	case RiskLevelCritical:
		return "red"
	case RiskLevelHigh:
		return "orange"
	case RiskLevelMedium:
		return "yellow"
	default:
		return "green"
	}
}

// GetMatrixCellColor maps a raw matrix cell score to a style token
func GetMatrixCellColor(score float64) string {
	return GetRiskLevelColor(GetRiskLevel(score))
}

// ValidateRiskParameters enforces strict integer-in-[1,5] likelihood and
// impact, used as a guard before CalculateInherentScore in form-entry paths.
func ValidateRiskParameters(likelihood, impact float64) error {
	if likelihood != math.Trunc(likelihood) || likelihood < 1 || likelihood > 5 {
		return apperrors.InvalidInput(fmt.Sprintf("likelihood must be an integer between 1 and 5, got %v", likelihood), nil)
	}
	if impact != math.Trunc(impact) || impact < 1 || impact > 5 {
		return apperrors.InvalidInput(fmt.Sprintf("impact must be an integer between 1 and 5, got %v", impact), nil)
	}
	return nil
}

// round2 rounds to 2 decimal places at the return boundary; intermediate
// math stays at full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
