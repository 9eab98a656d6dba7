package services

import (
	"database/sql"
	"io"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/importer"
	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/velocity"
	"github.com/haibh/airisk-dashboard-sub002/pkg/config"
)

// Services contains all application services
type Services struct {
	Risk     RiskService
	AISystem AISystemService
	Import   ImportService
	Velocity VelocityService
	Auth     AuthService
}

// RiskService defines the interface for risk register business logic
type RiskService interface {
	GetByID(id uuid.UUID) (*models.Risk, error)
	GetAll(filters repository.RiskFilters) ([]models.Risk, error)
	Create(risk *models.Risk) error
	Update(risk *models.Risk) error
	Delete(id uuid.UUID) error
}

// AISystemService defines the interface for AI-system inventory business logic
type AISystemService interface {
	GetByID(id uuid.UUID) (*models.AISystem, error)
	GetAll(filters repository.AISystemFilters) ([]models.AISystem, error)
	Create(system *models.AISystem) error
	Update(system *models.AISystem) error
	Delete(id uuid.UUID) error
}

// ImportService defines the interface for bulk spreadsheet ingestion
type ImportService interface {
	Import(entityType string, reader io.Reader, filename string, organizationID uuid.UUID, dryRun bool) (*importer.Result, error)
	Template(entityType string) ([]byte, error)
}

// VelocityService defines the interface for risk velocity queries
type VelocityService interface {
	ForRisk(riskID uuid.UUID, periodDays int) (velocity.RiskVelocity, error)
	ForRisks(riskIDs []uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error)
	ForOrganization(organizationID uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*models.LoginResponse, error)
	Register(req *models.CreateUserRequest) (*models.User, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*models.LoginResponse, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger) *Services {
	repos := repository.NewRepositories(db)

	return &Services{
		Risk:     newRiskService(repos, log),
		AISystem: newAISystemService(repos),
		Import:   newImportService(repos, log, cfg.ImportChunkSize),
		Velocity: newVelocityService(repos),
		Auth:     newAuthService(repos, cfg),
	}
}
