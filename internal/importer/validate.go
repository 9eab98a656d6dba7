package importer

import (
	"strconv"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/scoring"
)

// Column names recognized by the validators. Templates are generated with
// the same headers.
const (
	colTitle                = "title"
	colName                 = "name"
	colDescription          = "description"
	colCategory             = "category"
	colLikelihood           = "likelihood"
	colImpact               = "impact"
	colControlEffectiveness = "controlEffectiveness"
	colSystemType           = "systemType"
	colStatus               = "status"
	colDataClassification   = "dataClassification"
	colVendor               = "vendor"
	colOwner                = "owner"
)

// ValidateRiskRows validates parsed rows against the risk rules. A row with
// any error is invalid and is never persisted; validation continues past bad
// rows so one bad row does not block the rest of the file.
func ValidateRiskRows(rows []Row) ([]RiskImportRow, []RowError) {
	valid := make([]RiskImportRow, 0, len(rows))
	var rowErrors []RowError

	for _, row := range rows {
		record, errs := validateRiskRow(row)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}
		valid = append(valid, record)
	}

	return valid, rowErrors
}

func validateRiskRow(row Row) (RiskImportRow, []RowError) {
	var errs []RowError

	title, ok := row.Get(colTitle)
	if !ok {
		errs = append(errs, RowError{Row: row.Line, Field: colTitle, Message: "Title is required"})
	}

	category, ok := row.Get(colCategory)
	if !ok || !models.IsValidRiskCategory(category) {
		errs = append(errs, RowError{Row: row.Line, Field: colCategory, Message: "Invalid risk category"})
	}

	likelihood, likelihoodOK := parseScale(row, colLikelihood)
	if !likelihoodOK {
		errs = append(errs, RowError{Row: row.Line, Field: colLikelihood, Message: "Likelihood must be 1-5"})
	}

	impact, impactOK := parseScale(row, colImpact)
	if !impactOK {
		errs = append(errs, RowError{Row: row.Line, Field: colImpact, Message: "Impact must be 1-5"})
	}

	var effectiveness *float64
	if raw, present := row.Get(colControlEffectiveness); present {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 100 {
			errs = append(errs, RowError{Row: row.Line, Field: colControlEffectiveness, Message: "Control effectiveness must be between 0 and 100"})
		} else {
			effectiveness = &value
		}
	}

	if len(errs) > 0 {
		return RiskImportRow{}, errs
	}

	inherent := float64(likelihood * impact)
	residual := inherent
	if effectiveness != nil {
		// Effectiveness was range-checked above, so this cannot fail
		residual, _ = scoring.CalculateResidualScore(inherent, *effectiveness)
	}

	description, _ := row.Get(colDescription)
	owner, _ := row.Get(colOwner)

	return RiskImportRow{
		Line:                 row.Line,
		Title:                title,
		Description:          description,
		Category:             models.RiskCategory(category),
		Likelihood:           likelihood,
		Impact:               impact,
		ControlEffectiveness: effectiveness,
		InherentScore:        inherent,
		ResidualScore:        residual,
		Owner:                owner,
	}, nil
}

// ValidateAISystemRows validates parsed rows against the AI-system rules.
// Missing systemType/status/dataClassification fall back to defaults so
// partially-specified spreadsheets still import cleanly.
func ValidateAISystemRows(rows []Row) ([]AISystemImportRow, []RowError) {
	valid := make([]AISystemImportRow, 0, len(rows))
	var rowErrors []RowError

	for _, row := range rows {
		record, errs := validateAISystemRow(row)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}
		valid = append(valid, record)
	}

	return valid, rowErrors
}

func validateAISystemRow(row Row) (AISystemImportRow, []RowError) {
	var errs []RowError

	name, ok := row.Get(colName)
	if !ok {
		errs = append(errs, RowError{Row: row.Line, Field: colName, Message: "Name is required"})
	}

	systemType := models.AISystemTypeOther
	if raw, present := row.Get(colSystemType); present {
		if !models.AISystemType(raw).IsValid() {
			errs = append(errs, RowError{Row: row.Line, Field: colSystemType, Message: "Invalid system type"})
		} else {
			systemType = models.AISystemType(raw)
		}
	}

	status := models.AISystemStatusDevelopment
	if raw, present := row.Get(colStatus); present {
		if !models.AISystemStatus(raw).IsValid() {
			errs = append(errs, RowError{Row: row.Line, Field: colStatus, Message: "Invalid status"})
		} else {
			status = models.AISystemStatus(raw)
		}
	}

	classification := models.DataClassificationInternal
	if raw, present := row.Get(colDataClassification); present {
		if !models.DataClassification(raw).IsValid() {
			errs = append(errs, RowError{Row: row.Line, Field: colDataClassification, Message: "Invalid data classification"})
		} else {
			classification = models.DataClassification(raw)
		}
	}

	if len(errs) > 0 {
		return AISystemImportRow{}, errs
	}

	description, _ := row.Get(colDescription)
	vendor, _ := row.Get(colVendor)
	owner, _ := row.Get(colOwner)

	return AISystemImportRow{
		Line:               row.Line,
		Name:               name,
		Description:        description,
		SystemType:         systemType,
		Status:             status,
		DataClassification: classification,
		Vendor:             vendor,
		Owner:              owner,
	}, nil
}

// parseScale parses a strict integer-in-[1,5] column value
func parseScale(row Row, column string) (int, bool) {
	raw, present := row.Get(column)
	if !present {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 || value > 5 {
		return 0, false
	}
	return value, true
}
