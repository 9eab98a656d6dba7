package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/importer"
	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
)

// importServiceImpl implements ImportService
type importServiceImpl struct {
	pipeline *importer.Pipeline
}

// newImportService creates a new import service implementation
func newImportService(repos *repository.Repositories, log logger.Logger, chunkSize int) ImportService {
	runner := &repoTxRunner{tx: repos.Tx}
	return &importServiceImpl{
		pipeline: importer.NewPipeline(runner, log, chunkSize),
	}
}

// Import runs an upload through the pipeline for the given entity type
func (s *importServiceImpl) Import(entityType string, reader io.Reader, filename string, organizationID uuid.UUID, dryRun bool) (*importer.Result, error) {
	switch entityType {
	case importer.EntityRisks:
		return s.pipeline.ImportRisks(reader, filename, organizationID, dryRun)
	case importer.EntityAISystems:
		return s.pipeline.ImportAISystems(reader, filename, organizationID, dryRun)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown import entity type: %s", entityType), nil)
	}
}

// Template builds the downloadable spreadsheet template for an entity type
func (s *importServiceImpl) Template(entityType string) ([]byte, error) {
	return importer.BuildTemplate(entityType)
}

// repoTxRunner adapts the repository transaction manager to the pipeline's
// transaction port, so each chunk commits or rolls back as one database
// transaction.
type repoTxRunner struct {
	tx repository.TransactionManager
}

func (r *repoTxRunner) WithTransaction(fn func(store importer.Store) error) error {
	return r.tx.WithTransaction(func(repos *repository.Repositories) error {
		return fn(&repoStore{repos: repos})
	})
}

// repoStore writes validated import rows through transaction-bound
// repositories. Creating a risk also appends its initial score snapshot in
// the same transaction, so imports seed velocity history like manual entry
// does.
type repoStore struct {
	repos *repository.Repositories
}

func (s *repoStore) CreateRisk(organizationID uuid.UUID, row importer.RiskImportRow) error {
	risk := &models.Risk{
		OrganizationID:       organizationID,
		Title:                row.Title,
		Description:          row.Description,
		Category:             row.Category,
		Likelihood:           row.Likelihood,
		Impact:               row.Impact,
		ControlEffectiveness: row.ControlEffectiveness,
		InherentScore:        row.InherentScore,
		ResidualScore:        row.ResidualScore,
		Owner:                row.Owner,
		Status:               "open",
	}

	if err := s.repos.Risk.Create(risk); err != nil {
		return err
	}

	return s.repos.Snapshot.Create(&models.RiskScoreSnapshot{
		RiskID:        risk.ID,
		InherentScore: risk.InherentScore,
		ResidualScore: risk.ResidualScore,
	})
}

func (s *repoStore) CreateAISystem(organizationID uuid.UUID, row importer.AISystemImportRow) error {
	system := &models.AISystem{
		OrganizationID:     organizationID,
		Name:               row.Name,
		Description:        row.Description,
		SystemType:         row.SystemType,
		Status:             row.Status,
		DataClassification: row.DataClassification,
		Vendor:             row.Vendor,
		Owner:              row.Owner,
	}

	return s.repos.AISystem.Create(system)
}
