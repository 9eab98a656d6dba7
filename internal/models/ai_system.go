package models

import (
	"time"

	"github.com/google/uuid"
)

// AISystemType classifies an AI system record
type AISystemType string

const (
	AISystemTypeLLM            AISystemType = "LLM"
	AISystemTypeChatbot        AISystemType = "CHATBOT"
	AISystemTypeComputerVision AISystemType = "COMPUTER_VISION"
	AISystemTypeRecommendation AISystemType = "RECOMMENDATION"
	AISystemTypePredictive     AISystemType = "PREDICTIVE"
	AISystemTypeNLP            AISystemType = "NLP"
	AISystemTypeOther          AISystemType = "OTHER"
)

// AISystemStatus represents the lifecycle state of an AI system
type AISystemStatus string

const (
	AISystemStatusDevelopment AISystemStatus = "development"
	AISystemStatusTesting     AISystemStatus = "testing"
	AISystemStatusProduction  AISystemStatus = "production"
	AISystemStatusRetired     AISystemStatus = "retired"
)

// DataClassification represents the sensitivity of data a system handles
type DataClassification string

const (
	DataClassificationPublic       DataClassification = "public"
	DataClassificationInternal     DataClassification = "internal"
	DataClassificationConfidential DataClassification = "confidential"
	DataClassificationRestricted   DataClassification = "restricted"
)

// IsValid reports whether the system type is an accepted value
func (t AISystemType) IsValid() bool {
	switch t {
	case AISystemTypeLLM, AISystemTypeChatbot, AISystemTypeComputerVision,
		AISystemTypeRecommendation, AISystemTypePredictive, AISystemTypeNLP,
		AISystemTypeOther:
		return true
	}
	return false
}

// IsValid reports whether the status is an accepted value
func (s AISystemStatus) IsValid() bool {
	switch s {
	case AISystemStatusDevelopment, AISystemStatusTesting,
		AISystemStatusProduction, AISystemStatusRetired:
		return true
	}
	return false
}

// IsValid reports whether the classification is an accepted value
func (c DataClassification) IsValid() bool {
	switch c {
	case DataClassificationPublic, DataClassificationInternal,
		DataClassificationConfidential, DataClassificationRestricted:
		return true
	}
	return false
}

// AISystem represents an AI system inventory record
type AISystem struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	OrganizationID     uuid.UUID          `json:"organization_id" db:"organization_id"`
	Name               string             `json:"name" db:"name"`
	Description        string             `json:"description" db:"description"`
	SystemType         AISystemType       `json:"system_type" db:"system_type"`
	Status             AISystemStatus     `json:"status" db:"status"`
	DataClassification DataClassification `json:"data_classification" db:"data_classification"`
	Vendor             string             `json:"vendor" db:"vendor"`
	Owner              string             `json:"owner" db:"owner"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}
