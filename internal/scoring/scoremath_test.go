package scoring

import (
	"testing"
)

func TestCalculateInherentScore(t *testing.T) {
	// Full domain: every likelihood/impact pair in [1,5]
	for l := 1; l <= 5; l++ {
		for i := 1; i <= 5; i++ {
			score, err := CalculateInherentScore(float64(l), float64(i))
			if err != nil {
				t.Fatalf("Unexpected error for likelihood=%d impact=%d: %v", l, i, err)
			}
			if score != float64(l*i) {
				t.Errorf("Expected score %d for likelihood=%d impact=%d, got %v", l*i, l, i, score)
			}
		}
	}
}

func TestCalculateInherentScore_OutOfDomain(t *testing.T) {
	testCases := []struct {
		name       string
		likelihood float64
		impact     float64
	}{
		{"Likelihood below range", 0, 3},
		{"Likelihood above range", 6, 3},
		{"Impact below range", 3, 0},
		{"Impact above range", 3, 6},
		{"Negative likelihood", -1, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateInherentScore(tc.likelihood, tc.impact)
			if err == nil {
				t.Errorf("Expected error for likelihood=%v impact=%v", tc.likelihood, tc.impact)
			}
		})
	}
}

func TestCalculateInherentScore_NonIntegerInRange(t *testing.T) {
	// Non-integer values inside the range are accepted here; integer
	// strictness belongs to ValidateRiskParameters
	score, err := CalculateInherentScore(2.5, 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if score != 10 {
		t.Errorf("Expected 10, got %v", score)
	}
}

func TestCalculateResidualScore(t *testing.T) {
	testCases := []struct {
		name          string
		inherent      float64
		effectiveness float64
		expected      float64
	}{
		{"Full effectiveness zeroes the score", 20, 100, 0},
		{"Zero effectiveness keeps the score", 20, 0, 20},
		{"Half effectiveness halves the score", 20, 50, 10},
		{"Rounds to 2 decimals", 17, 33, 11.39},
		{"Small score", 1, 25, 0.75},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := CalculateResidualScore(tc.inherent, tc.effectiveness)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestCalculateResidualScore_OutOfDomain(t *testing.T) {
	if _, err := CalculateResidualScore(10, -1); err == nil {
		t.Error("Expected error for effectiveness below 0")
	}
	if _, err := CalculateResidualScore(10, 100.01); err == nil {
		t.Error("Expected error for effectiveness above 100")
	}
}

func TestCalculateOverallEffectiveness(t *testing.T) {
	testCases := []struct {
		name     string
		list     []float64
		expected float64
	}{
		{"Empty list", []float64{}, 0},
		{"Single value is itself", []float64{60}, 60},
		{"Two layers compound", []float64{50, 50}, 75},
		{"Three layers compound", []float64{50, 50, 50}, 87.5},
		{"Total barrier caps at 100", []float64{100, 40}, 100},
		{"Zero contributes nothing", []float64{0, 80}, 80},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := CalculateOverallEffectiveness(tc.list)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestCalculateOverallEffectiveness_Monotonic(t *testing.T) {
	// Raising any element never decreases the compound value, and the
	// result stays within [max(list), 100]
	base := []float64{30, 40, 20}
	baseline, err := CalculateOverallEffectiveness(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := range base {
		raised := make([]float64, len(base))
		copy(raised, base)
		raised[i] += 25

		result, err := CalculateOverallEffectiveness(raised)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if result < baseline {
			t.Errorf("Raising element %d decreased compound effectiveness: %v -> %v", i, baseline, result)
		}
		if result > 100 {
			t.Errorf("Compound effectiveness exceeded 100: %v", result)
		}
	}

	if baseline < 40 {
		t.Errorf("Compound effectiveness %v below max element 40", baseline)
	}
}

func TestCalculateOverallEffectiveness_OutOfDomain(t *testing.T) {
	if _, err := CalculateOverallEffectiveness([]float64{50, 101}); err == nil {
		t.Error("Expected error for effectiveness above 100")
	}
	if _, err := CalculateOverallEffectiveness([]float64{-5}); err == nil {
		t.Error("Expected error for negative effectiveness")
	}
}

func TestGetRiskLevel_Boundaries(t *testing.T) {
	testCases := []struct {
		score    float64
		expected RiskLevel
	}{
		{4.99, RiskLevelLow},
		{5, RiskLevelMedium},
		{9.99, RiskLevelMedium},
		{10, RiskLevelHigh},
		{16.99, RiskLevelHigh},
		{17, RiskLevelCritical},
		{1, RiskLevelLow},
		{25, RiskLevelCritical},
	}

	for _, tc := range testCases {
		if level := GetRiskLevel(tc.score); level != tc.expected {
			t.Errorf("GetRiskLevel(%v): expected %s, got %s", tc.score, tc.expected, level)
		}
	}
}

func TestGetRiskLevelColor(t *testing.T) {
	testCases := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskLevelLow, "green"},
		{RiskLevelMedium, "yellow"},
		{RiskLevelHigh, "orange"},
		{RiskLevelCritical, "red"},
	}

	for _, tc := range testCases {
		if color := GetRiskLevelColor(tc.level); color != tc.expected {
			t.Errorf("Expected %s for %s, got %s", tc.expected, tc.level, color)
		}
	}

	if GetMatrixCellColor(18) != "red" {
		t.Error("Expected matrix cell color red for score 18")
	}
}

func TestValidateRiskParameters(t *testing.T) {
	testCases := []struct {
		name       string
		likelihood float64
		impact     float64
		valid      bool
	}{
		{"Valid integers", 3, 4, true},
		{"Boundary low", 1, 1, true},
		{"Boundary high", 5, 5, true},
		{"Non-integer likelihood", 2.5, 3, false},
		{"Non-integer impact", 3, 4.1, false},
		{"Out of range", 6, 3, false},
		{"Zero", 0, 3, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRiskParameters(tc.likelihood, tc.impact)
			if tc.valid && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Expected error for likelihood=%v impact=%v", tc.likelihood, tc.impact)
			}
		})
	}
}
