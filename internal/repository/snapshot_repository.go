package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// snapshotRepository implements SnapshotRepository
type snapshotRepository struct {
	db dbExecutor
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db dbExecutor) SnapshotRepository {
	return &snapshotRepository{db: db}
}

const snapshotColumns = `id, risk_id, inherent_score, residual_score, recorded_at`

// Create appends a score snapshot. Snapshots are never updated or deleted.
func (r *snapshotRepository) Create(snapshot *models.RiskScoreSnapshot) error {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	if snapshot.RecordedAt.IsZero() {
		snapshot.RecordedAt = time.Now()
	}

	query := `
		INSERT INTO risk_score_snapshots (
			id, risk_id, inherent_score, residual_score, recorded_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := r.db.Exec(query,
		snapshot.ID, snapshot.RiskID, snapshot.InherentScore,
		snapshot.ResidualScore, snapshot.RecordedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// ListSince retrieves snapshots for one risk recorded at or after since,
// oldest first.
func (r *snapshotRepository) ListSince(riskID uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM risk_score_snapshots
		WHERE risk_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`

	rows, err := r.db.Query(query, riskID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// ListManySince retrieves snapshots for many risks in a single query,
// oldest first within each risk.
func (r *snapshotRepository) ListManySince(riskIDs []uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error) {
	if len(riskIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(riskIDs))
	for i, id := range riskIDs {
		ids[i] = id.String()
	}

	query := `SELECT ` + snapshotColumns + `
		FROM risk_score_snapshots
		WHERE risk_id = ANY($1) AND recorded_at >= $2
		ORDER BY risk_id, recorded_at ASC`

	rows, err := r.db.Query(query, pq.Array(ids), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows *sql.Rows) ([]models.RiskScoreSnapshot, error) {
	var snapshots []models.RiskScoreSnapshot
	for rows.Next() {
		var s models.RiskScoreSnapshot
		err := rows.Scan(&s.ID, &s.RiskID, &s.InherentScore, &s.ResidualScore, &s.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}

	return snapshots, nil
}
