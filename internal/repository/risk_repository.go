package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// riskRepository implements RiskRepository
type riskRepository struct {
	db dbExecutor
}

// NewRiskRepository creates a new risk repository
func NewRiskRepository(db dbExecutor) RiskRepository {
	return &riskRepository{db: db}
}

const riskColumns = `id, organization_id, title, description, category, likelihood, impact,
	   control_effectiveness, inherent_score, residual_score, owner, status,
	   created_at, updated_at`

// GetByID retrieves a risk by ID
func (r *riskRepository) GetByID(id uuid.UUID) (*models.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks WHERE id = $1`

	risk := &models.Risk{}
	err := r.db.QueryRow(query, id).Scan(
		&risk.ID, &risk.OrganizationID, &risk.Title, &risk.Description,
		&risk.Category, &risk.Likelihood, &risk.Impact, &risk.ControlEffectiveness,
		&risk.InherentScore, &risk.ResidualScore, &risk.Owner, &risk.Status,
		&risk.CreatedAt, &risk.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("risk not found")
		}
		return nil, fmt.Errorf("failed to get risk: %w", err)
	}

	return risk, nil
}

// Create creates a new risk
func (r *riskRepository) Create(risk *models.Risk) error {
	if risk.ID == uuid.Nil {
		risk.ID = uuid.New()
	}

	now := time.Now()
	risk.CreatedAt = now
	risk.UpdatedAt = now

	query := `
		INSERT INTO risks (
			id, organization_id, title, description, category, likelihood, impact,
			control_effectiveness, inherent_score, residual_score, owner, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.db.Exec(query,
		risk.ID, risk.OrganizationID, risk.Title, risk.Description,
		risk.Category, risk.Likelihood, risk.Impact, risk.ControlEffectiveness,
		risk.InherentScore, risk.ResidualScore, risk.Owner, risk.Status,
		risk.CreatedAt, risk.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create risk: %w", err)
	}

	return nil
}

// Update updates an existing risk
func (r *riskRepository) Update(risk *models.Risk) error {
	risk.UpdatedAt = time.Now()

	query := `
		UPDATE risks SET
			title = $2, description = $3, category = $4, likelihood = $5,
			impact = $6, control_effectiveness = $7, inherent_score = $8,
			residual_score = $9, owner = $10, status = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		risk.ID, risk.Title, risk.Description, risk.Category, risk.Likelihood,
		risk.Impact, risk.ControlEffectiveness, risk.InherentScore,
		risk.ResidualScore, risk.Owner, risk.Status, risk.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update risk: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("risk not found")
	}

	return nil
}

// Delete deletes a risk
func (r *riskRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM risks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete risk: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("risk not found")
	}

	return nil
}

// GetAll retrieves risks with filters
func (r *riskRepository) GetAll(filters RiskFilters) ([]models.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks`

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if filters.OrganizationID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("organization_id = $%d", argIndex))
		args = append(args, *filters.OrganizationID)
		argIndex++
	}

	if len(filters.Categories) > 0 {
		placeholders := make([]string, len(filters.Categories))
		for i, category := range filters.Categories {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, category)
			argIndex++
		}
		whereClauses = append(whereClauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
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

	if filters.MinResidual != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("residual_score >= $%d", argIndex))
		args = append(args, *filters.MinResidual)
		argIndex++
	}

	if filters.MaxResidual != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("residual_score <= $%d", argIndex))
		args = append(args, *filters.MaxResidual)
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY residual_score DESC, updated_at DESC"

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
		return nil, fmt.Errorf("failed to query risks: %w", err)
	}
	defer rows.Close()

	var risks []models.Risk
	for rows.Next() {
		var risk models.Risk
		err := rows.Scan(
			&risk.ID, &risk.OrganizationID, &risk.Title, &risk.Description,
			&risk.Category, &risk.Likelihood, &risk.Impact, &risk.ControlEffectiveness,
			&risk.InherentScore, &risk.ResidualScore, &risk.Owner, &risk.Status,
			&risk.CreatedAt, &risk.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan risk: %w", err)
		}
		risks = append(risks, risk)
	}

	return risks, nil
}

// GetAllIDs retrieves all risk IDs for an organization
func (r *riskRepository) GetAllIDs(organizationID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM risks WHERE organization_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan risk ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
