package services

import (
	"github.com/google/uuid"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/velocity"
)

// velocityServiceImpl implements VelocityService
type velocityServiceImpl struct {
	engine *velocity.Engine
	repos  *repository.Repositories
}

// newVelocityService creates a new velocity service over the snapshot store
func newVelocityService(repos *repository.Repositories) VelocityService {
	return &velocityServiceImpl{
		engine: velocity.NewEngine(repos.Snapshot),
		repos:  repos,
	}
}

// ForRisk computes the velocity of a single risk. The risk must exist; a
// risk with no usable history still returns a zero, stable velocity.
func (s *velocityServiceImpl) ForRisk(riskID uuid.UUID, periodDays int) (velocity.RiskVelocity, error) {
	if _, err := s.repos.Risk.GetByID(riskID); err != nil {
		return velocity.RiskVelocity{}, apperrors.NotFound("risk not found", err)
	}

	return s.engine.CalculateSingleVelocity(riskID, periodDays)
}

// ForRisks computes velocities for an explicit set of risks with one bulk
// snapshot fetch.
func (s *velocityServiceImpl) ForRisks(riskIDs []uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error) {
	return s.engine.CalculateBatchVelocity(riskIDs, periodDays)
}

// ForOrganization computes velocities for every risk in an organization
func (s *velocityServiceImpl) ForOrganization(organizationID uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error) {
	ids, err := s.repos.Risk.GetAllIDs(organizationID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list risks", err)
	}

	return s.engine.CalculateBatchVelocity(ids, periodDays)
}
