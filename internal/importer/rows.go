package importer

import (
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// RowError is one validation or persistence failure for one row. Row-level
// errors are data returned to the caller, never raised.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RiskImportRow is a validated risk record ready for persistence. Scores are
// derived at validation time so the stored fields always agree with the
// likelihood/impact/effectiveness columns.
type RiskImportRow struct {
	Line                 int
	Title                string
	Description          string
	Category             models.RiskCategory
	Likelihood           int
	Impact               int
	ControlEffectiveness *float64
	InherentScore        float64
	ResidualScore        float64
	Owner                string
}

// AISystemImportRow is a validated AI-system record ready for persistence
type AISystemImportRow struct {
	Line               int
	Name               string
	Description        string
	SystemType         models.AISystemType
	Status             models.AISystemStatus
	DataClassification models.DataClassification
	Vendor             string
	Owner              string
}
