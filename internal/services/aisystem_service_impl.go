package services

import (
	"github.com/google/uuid"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
)

// aiSystemServiceImpl implements AISystemService
type aiSystemServiceImpl struct {
	repos *repository.Repositories
}

// newAISystemService creates a new AI-system service implementation
func newAISystemService(repos *repository.Repositories) AISystemService {
	return &aiSystemServiceImpl{repos: repos}
}

// GetByID retrieves an AI system by ID
func (s *aiSystemServiceImpl) GetByID(id uuid.UUID) (*models.AISystem, error) {
	system, err := s.repos.AISystem.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("AI system not found", err)
	}
	return system, nil
}

// GetAll retrieves AI systems matching the given filters
func (s *aiSystemServiceImpl) GetAll(filters repository.AISystemFilters) ([]models.AISystem, error) {
	systems, err := s.repos.AISystem.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list AI systems", err)
	}
	return systems, nil
}

// Create validates and persists an AI system, applying the same defaults as
// the import path.
func (s *aiSystemServiceImpl) Create(system *models.AISystem) error {
	if err := normalizeAISystem(system); err != nil {
		return err
	}

	if err := s.repos.AISystem.Create(system); err != nil {
		return apperrors.DatabaseError("failed to create AI system", err)
	}
	return nil
}

// Update validates and persists changes to an AI system
func (s *aiSystemServiceImpl) Update(system *models.AISystem) error {
	if err := normalizeAISystem(system); err != nil {
		return err
	}

	if err := s.repos.AISystem.Update(system); err != nil {
		return apperrors.NotFound("AI system not found", err)
	}
	return nil
}

// Delete removes an AI system
func (s *aiSystemServiceImpl) Delete(id uuid.UUID) error {
	if err := s.repos.AISystem.Delete(id); err != nil {
		return apperrors.NotFound("AI system not found", err)
	}
	return nil
}

func normalizeAISystem(system *models.AISystem) error {
	if system.Name == "" {
		return apperrors.InvalidInput("name is required", nil)
	}

	if system.SystemType == "" {
		system.SystemType = models.AISystemTypeOther
	} else if !system.SystemType.IsValid() {
		return apperrors.InvalidInput("invalid system type", nil)
	}

	if system.Status == "" {
		system.Status = models.AISystemStatusDevelopment
	} else if !system.Status.IsValid() {
		return apperrors.InvalidInput("invalid status", nil)
	}

	if system.DataClassification == "" {
		system.DataClassification = models.DataClassificationInternal
	} else if !system.DataClassification.IsValid() {
		return apperrors.InvalidInput("invalid data classification", nil)
	}

	return nil
}
