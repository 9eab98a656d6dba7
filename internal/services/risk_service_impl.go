package services

import (
	"github.com/google/uuid"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/scoring"
)

// riskServiceImpl implements RiskService
type riskServiceImpl struct {
	repos *repository.Repositories
	log   logger.Logger
}

// newRiskService creates a new risk service implementation
func newRiskService(repos *repository.Repositories, log logger.Logger) RiskService {
	return &riskServiceImpl{repos: repos, log: log}
}

// GetByID retrieves a risk by ID
func (s *riskServiceImpl) GetByID(id uuid.UUID) (*models.Risk, error) {
	risk, err := s.repos.Risk.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("risk not found", err)
	}
	return risk, nil
}

// GetAll retrieves risks matching the given filters
func (s *riskServiceImpl) GetAll(filters repository.RiskFilters) ([]models.Risk, error) {
	risks, err := s.repos.Risk.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list risks", err)
	}
	return risks, nil
}

// Create validates a risk, derives its scores, and persists it together with
// the first score snapshot in one transaction.
func (s *riskServiceImpl) Create(risk *models.Risk) error {
	if err := s.computeScores(risk); err != nil {
		return err
	}

	if risk.Status == "" {
		risk.Status = "open"
	}

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Risk.Create(risk); err != nil {
			return err
		}
		return repos.Snapshot.Create(&models.RiskScoreSnapshot{
			RiskID:        risk.ID,
			InherentScore: risk.InherentScore,
			ResidualScore: risk.ResidualScore,
		})
	})
	if err != nil {
		return apperrors.DatabaseError("failed to create risk", err)
	}

	s.log.Info("Risk created", "risk_id", risk.ID.String(), "residual", risk.ResidualScore)
	return nil
}

// Update validates a risk, re-derives its scores, and persists the change.
// Every successful update appends a snapshot so velocity history tracks each
// recomputation.
func (s *riskServiceImpl) Update(risk *models.Risk) error {
	if err := s.computeScores(risk); err != nil {
		return err
	}

	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Risk.Update(risk); err != nil {
			return err
		}
		return repos.Snapshot.Create(&models.RiskScoreSnapshot{
			RiskID:        risk.ID,
			InherentScore: risk.InherentScore,
			ResidualScore: risk.ResidualScore,
		})
	})
	if err != nil {
		return apperrors.DatabaseError("failed to update risk", err)
	}

	return nil
}

// Delete removes a risk. Its snapshots cascade with it.
func (s *riskServiceImpl) Delete(id uuid.UUID) error {
	if err := s.repos.Risk.Delete(id); err != nil {
		return apperrors.NotFound("risk not found", err)
	}
	return nil
}

// computeScores validates scoring inputs and fills InherentScore and
// ResidualScore from likelihood, impact, and control effectiveness.
func (s *riskServiceImpl) computeScores(risk *models.Risk) error {
	if !models.IsValidRiskCategory(string(risk.Category)) {
		return apperrors.InvalidInput("invalid risk category", nil)
	}

	if err := scoring.ValidateRiskParameters(float64(risk.Likelihood), float64(risk.Impact)); err != nil {
		return err
	}

	inherent, err := scoring.CalculateInherentScore(float64(risk.Likelihood), float64(risk.Impact))
	if err != nil {
		return err
	}

	residual := inherent
	if risk.ControlEffectiveness != nil {
		residual, err = scoring.CalculateResidualScore(inherent, *risk.ControlEffectiveness)
		if err != nil {
			return err
		}
	}

	risk.InherentScore = inherent
	risk.ResidualScore = residual
	return nil
}
