package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// aiSystemRepository implements AISystemRepository
type aiSystemRepository struct {
	db dbExecutor
}

// NewAISystemRepository creates a new AI-system repository
func NewAISystemRepository(db dbExecutor) AISystemRepository {
	return &aiSystemRepository{db: db}
}

const aiSystemColumns = `id, organization_id, name, description, system_type, status,
	   data_classification, vendor, owner, created_at, updated_at`

// GetByID retrieves an AI system by ID
func (r *aiSystemRepository) GetByID(id uuid.UUID) (*models.AISystem, error) {
	query := `SELECT ` + aiSystemColumns + ` FROM ai_systems WHERE id = $1`

	system := &models.AISystem{}
	err := r.db.QueryRow(query, id).Scan(
		&system.ID, &system.OrganizationID, &system.Name, &system.Description,
		&system.SystemType, &system.Status, &system.DataClassification,
		&system.Vendor, &system.Owner, &system.CreatedAt, &system.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("AI system not found")
		}
		return nil, fmt.Errorf("failed to get AI system: %w", err)
	}

	return system, nil
}

// Create creates a new AI system
func (r *aiSystemRepository) Create(system *models.AISystem) error {
	if system.ID == uuid.Nil {
		system.ID = uuid.New()
	}

	now := time.Now()
	system.CreatedAt = now
	system.UpdatedAt = now

	query := `
		INSERT INTO ai_systems (
			id, organization_id, name, description, system_type, status,
			data_classification, vendor, owner, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(query,
		system.ID, system.OrganizationID, system.Name, system.Description,
		system.SystemType, system.Status, system.DataClassification,
		system.Vendor, system.Owner, system.CreatedAt, system.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create AI system: %w", err)
	}

	return nil
}

// Update updates an existing AI system
func (r *aiSystemRepository) Update(system *models.AISystem) error {
	system.UpdatedAt = time.Now()

	query := `
		UPDATE ai_systems SET
			name = $2, description = $3, system_type = $4, status = $5,
			data_classification = $6, vendor = $7, owner = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		system.ID, system.Name, system.Description, system.SystemType,
		system.Status, system.DataClassification, system.Vendor, system.Owner,
		system.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update AI system: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("AI system not found")
	}

	return nil
}

// Delete deletes an AI system
func (r *aiSystemRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM ai_systems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete AI system: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("AI system not found")
	}

	return nil
}

// GetAll retrieves AI systems with filters
func (r *aiSystemRepository) GetAll(filters AISystemFilters) ([]models.AISystem, error) {
	query := `SELECT ` + aiSystemColumns + ` FROM ai_systems`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if filters.OrganizationID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("organization_id = $%d", argIndex))
		args = append(args, *filters.OrganizationID)
		argIndex++
	}

	if len(filters.SystemTypes) > 0 {
		placeholders := make([]string, len(filters.SystemTypes))
		for i, systemType := range filters.SystemTypes {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, systemType)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("system_type IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(filters.Statuses) > 0 {
		placeholders := make([]string, len(filters.Statuses))
		for i, status := range filters.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, status)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query AI systems: %w", err)
	}
	defer rows.Close()

	var systems []models.AISystem
	for rows.Next() {
		var system models.AISystem
		err := rows.Scan(
			&system.ID, &system.OrganizationID, &system.Name, &system.Description,
			&system.SystemType, &system.Status, &system.DataClassification,
			&system.Vendor, &system.Owner, &system.CreatedAt, &system.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan AI system: %w", err)
		}
		systems = append(systems, system)
	}

	return systems, nil
}
