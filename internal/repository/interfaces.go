package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// RiskRepository defines the interface for risk register data access
type RiskRepository interface {
	// Basic CRUD operations
	GetByID(id uuid.UUID) (*models.Risk, error)
	Create(risk *models.Risk) error
	Update(risk *models.Risk) error
	Delete(id uuid.UUID) error

	// Bulk operations
	GetAll(filters RiskFilters) ([]models.Risk, error)
	GetAllIDs(organizationID uuid.UUID) ([]uuid.UUID, error)
}

// AISystemRepository defines the interface for AI-system inventory access
type AISystemRepository interface {
	GetByID(id uuid.UUID) (*models.AISystem, error)
	Create(system *models.AISystem) error
	Update(system *models.AISystem) error
	Delete(id uuid.UUID) error
	GetAll(filters AISystemFilters) ([]models.AISystem, error)
}

// SnapshotRepository defines the interface for score snapshot history.
// Snapshots are append-only; there is no update or delete path.
type SnapshotRepository interface {
	Create(snapshot *models.RiskScoreSnapshot) error
	// ListSince returns snapshots for one risk recorded at or after since,
	// ordered by recorded_at ascending.
	ListSince(riskID uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error)
	// ListManySince is the bulk form: one query for many risks
	ListManySince(riskIDs []uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Risk     RiskRepository
	AISystem AISystemRepository
	Snapshot SnapshotRepository
	User     UserRepository
	Tx       TransactionManager
}

// RiskFilters defines filters for querying the risk register
type RiskFilters struct {
	OrganizationID *uuid.UUID
	Categories     []string
	Statuses       []string
	MinResidual    *float64
	MaxResidual    *float64
	Limit          int
	Offset         int
}

// AISystemFilters defines filters for querying the AI-system inventory
type AISystemFilters struct {
	OrganizationID *uuid.UUID
	SystemTypes    []string
	Statuses       []string
	Limit          int
	Offset         int
}
