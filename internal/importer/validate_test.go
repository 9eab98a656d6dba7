package importer

import (
	"testing"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

func riskRow(line int, overrides map[string]string) Row {
	fields := map[string]string{
		"title":      "Vendor outage",
		"category":   "operational",
		"likelihood": "4",
		"impact":     "3",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return Row{Line: line, Fields: fields}
}

func TestValidateRiskRows_Valid(t *testing.T) {
	valid, errs := ValidateRiskRows([]Row{riskRow(2, nil)})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if len(valid) != 1 {
		t.Fatalf("Expected 1 valid row, got %d", len(valid))
	}

	row := valid[0]
	if row.InherentScore != 12 {
		t.Errorf("Expected inherent score 12, got %v", row.InherentScore)
	}
	if row.ResidualScore != 12 {
		t.Errorf("Expected residual to equal inherent without controls, got %v", row.ResidualScore)
	}
	if row.Category != models.RiskCategoryOperational {
		t.Errorf("Expected operational category, got %s", row.Category)
	}
}

func TestValidateRiskRows_DerivesResidualFromEffectiveness(t *testing.T) {
	valid, errs := ValidateRiskRows([]Row{riskRow(2, map[string]string{"controlEffectiveness": "75"})})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	row := valid[0]
	if row.ControlEffectiveness == nil || *row.ControlEffectiveness != 75 {
		t.Fatalf("Expected control effectiveness 75, got %v", row.ControlEffectiveness)
	}
	if row.ResidualScore != 3 {
		t.Errorf("Expected residual 3 (12 at 75%% effectiveness), got %v", row.ResidualScore)
	}
}

func TestValidateRiskRows_FieldErrors(t *testing.T) {
	testCases := []struct {
		name      string
		overrides map[string]string
		field     string
		message   string
	}{
		{"Missing title", map[string]string{"title": ""}, "title", "Title is required"},
		{"Whitespace title", map[string]string{"title": "   "}, "title", "Title is required"},
		{"Invalid category", map[string]string{"category": "weather"}, "category", "Invalid risk category"},
		{"Missing category", map[string]string{"category": ""}, "category", "Invalid risk category"},
		{"Likelihood too high", map[string]string{"likelihood": "6"}, "likelihood", "Likelihood must be 1-5"},
		{"Likelihood not integer", map[string]string{"likelihood": "2.5"}, "likelihood", "Likelihood must be 1-5"},
		{"Likelihood missing", map[string]string{"likelihood": ""}, "likelihood", "Likelihood must be 1-5"},
		{"Impact too low", map[string]string{"impact": "0"}, "impact", "Impact must be 1-5"},
		{"Impact not a number", map[string]string{"impact": "high"}, "impact", "Impact must be 1-5"},
		{"Effectiveness above 100", map[string]string{"controlEffectiveness": "120"}, "controlEffectiveness", "Control effectiveness must be between 0 and 100"},
		{"Effectiveness not a number", map[string]string{"controlEffectiveness": "most"}, "controlEffectiveness", "Control effectiveness must be between 0 and 100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			valid, errs := ValidateRiskRows([]Row{riskRow(5, tc.overrides)})
			if len(valid) != 0 {
				t.Errorf("Expected row to be invalid")
			}
			if len(errs) != 1 {
				t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
			}
			if errs[0].Row != 5 || errs[0].Field != tc.field || errs[0].Message != tc.message {
				t.Errorf("Expected {5 %s %s}, got %+v", tc.field, tc.message, errs[0])
			}
		})
	}
}

func TestValidateRiskRows_AccumulatesMultipleErrors(t *testing.T) {
	row := riskRow(3, map[string]string{"title": "", "likelihood": "9"})
	valid, errs := ValidateRiskRows([]Row{row})

	if len(valid) != 0 {
		t.Error("Expected row to be invalid")
	}
	if len(errs) != 2 {
		t.Errorf("Expected 2 accumulated errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateRiskRows_ContinuesPastBadRows(t *testing.T) {
	rows := []Row{
		riskRow(2, map[string]string{"title": ""}),
		riskRow(3, nil),
		riskRow(4, map[string]string{"category": "nope"}),
	}

	valid, errs := ValidateRiskRows(rows)
	if len(valid) != 1 {
		t.Errorf("Expected 1 valid row among bad ones, got %d", len(valid))
	}
	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errs))
	}
}

func aiRow(line int, overrides map[string]string) Row {
	fields := map[string]string{
		"name": "Support chatbot",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return Row{Line: line, Fields: fields}
}

func TestValidateAISystemRows_Defaults(t *testing.T) {
	valid, errs := ValidateAISystemRows([]Row{aiRow(2, nil)})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if len(valid) != 1 {
		t.Fatalf("Expected 1 valid row, got %d", len(valid))
	}

	row := valid[0]
	if row.SystemType != models.AISystemTypeOther {
		t.Errorf("Expected default system type OTHER, got %s", row.SystemType)
	}
	if row.Status != models.AISystemStatusDevelopment {
		t.Errorf("Expected default status development, got %s", row.Status)
	}
	if row.DataClassification != models.DataClassificationInternal {
		t.Errorf("Expected default classification internal, got %s", row.DataClassification)
	}
}

func TestValidateAISystemRows_ExplicitValues(t *testing.T) {
	valid, errs := ValidateAISystemRows([]Row{aiRow(2, map[string]string{
		"systemType":         "LLM",
		"status":             "production",
		"dataClassification": "confidential",
		"vendor":             "Anthos AI",
	})})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	row := valid[0]
	if row.SystemType != models.AISystemTypeLLM {
		t.Errorf("Expected LLM, got %s", row.SystemType)
	}
	if row.Status != models.AISystemStatusProduction {
		t.Errorf("Expected production, got %s", row.Status)
	}
	if row.DataClassification != models.DataClassificationConfidential {
		t.Errorf("Expected confidential, got %s", row.DataClassification)
	}
	if row.Vendor != "Anthos AI" {
		t.Errorf("Expected vendor preserved, got %q", row.Vendor)
	}
}

func TestValidateAISystemRows_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		overrides map[string]string
		field     string
	}{
		{"Missing name", map[string]string{"name": ""}, "name"},
		{"Invalid system type", map[string]string{"systemType": "ROBOT"}, "systemType"},
		{"Invalid status", map[string]string{"status": "launched"}, "status"},
		{"Invalid classification", map[string]string{"dataClassification": "secret"}, "dataClassification"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			valid, errs := ValidateAISystemRows([]Row{aiRow(4, tc.overrides)})
			if len(valid) != 0 {
				t.Error("Expected row to be invalid")
			}
			if len(errs) != 1 || errs[0].Field != tc.field || errs[0].Row != 4 {
				t.Errorf("Expected single error on field %s, got %v", tc.field, errs)
			}
		})
	}
}
