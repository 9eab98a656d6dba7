package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory represents the allowed risk register categories
type RiskCategory string

const (
	RiskCategoryOperational  RiskCategory = "operational"
	RiskCategoryFinancial    RiskCategory = "financial"
	RiskCategoryStrategic    RiskCategory = "strategic"
	RiskCategoryCompliance   RiskCategory = "compliance"
	RiskCategorySecurity     RiskCategory = "security"
	RiskCategoryPrivacy      RiskCategory = "privacy"
	RiskCategoryReputational RiskCategory = "reputational"
)

// ValidRiskCategories lists every accepted category value
func ValidRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskCategoryOperational,
		RiskCategoryFinancial,
		RiskCategoryStrategic,
		RiskCategoryCompliance,
		RiskCategorySecurity,
		RiskCategoryPrivacy,
		RiskCategoryReputational,
	}
}

// IsValidRiskCategory reports whether category is an accepted value
func IsValidRiskCategory(category string) bool {
	for _, c := range ValidRiskCategories() {
		if string(c) == category {
			return true
		}
	}
	return false
}

// Risk represents a risk register entry
type Risk struct {
	ID                   uuid.UUID    `json:"id" db:"id"`
	OrganizationID       uuid.UUID    `json:"organization_id" db:"organization_id"`
	Title                string       `json:"title" db:"title"`
	Description          string       `json:"description" db:"description"`
	Category             RiskCategory `json:"category" db:"category"`
	Likelihood           int          `json:"likelihood" db:"likelihood"`
	Impact               int          `json:"impact" db:"impact"`
	ControlEffectiveness *float64     `json:"control_effectiveness" db:"control_effectiveness"`
	InherentScore        float64      `json:"inherent_score" db:"inherent_score"`
	ResidualScore        float64      `json:"residual_score" db:"residual_score"`
	Owner                string       `json:"owner" db:"owner"`
	Status               string       `json:"status" db:"status"`
	CreatedAt            time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at" db:"updated_at"`
}

// RiskScoreSnapshot is an immutable point-in-time record of a risk's scores.
// A snapshot is appended whenever a risk's score is (re)computed and is never
// mutated afterwards.
type RiskScoreSnapshot struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RiskID        uuid.UUID `json:"risk_id" db:"risk_id"`
	InherentScore float64   `json:"inherent_score" db:"inherent_score"`
	ResidualScore float64   `json:"residual_score" db:"residual_score"`
	RecordedAt    time.Time `json:"recorded_at" db:"recorded_at"`
}
