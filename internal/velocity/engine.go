// Package velocity quantifies whether a risk's exposure is trending up,
// down, or flat, from its historical score snapshots.
package velocity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
)

// Trend classifies the direction of a risk's residual score over time
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendStable    Trend = "stable"
)

// Noise band for trend classification, in score points per day. Changes at
// exactly the boundary classify as stable.
const trendThreshold = 0.1

// DefaultPeriodDays is the default lookback window
const DefaultPeriodDays = 10

// RiskVelocity is the derived rate of change for one risk. It is computed on
// demand and never persisted.
type RiskVelocity struct {
	InherentChange float64 `json:"inherent_change"`
	ResidualChange float64 `json:"residual_change"`
	Trend          Trend   `json:"trend"`
	PeriodDays     int     `json:"period_days"`
}

// SnapshotReader is the storage port the engine reads history through. Fetch
// errors propagate untouched; retries belong to the storage client.
type SnapshotReader interface {
	// ListSince returns all snapshots for riskID recorded at or after
	// since, ordered by recorded_at ascending.
	ListSince(riskID uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error)
	// ListManySince is the bulk form over many risk IDs in one query.
	ListManySince(riskIDs []uuid.UUID, since time.Time) ([]models.RiskScoreSnapshot, error)
}

// Engine computes risk velocity from snapshot history
type Engine struct {
	snapshots SnapshotReader
	now       func() time.Time
}

// NewEngine creates a velocity engine over the given snapshot reader
func NewEngine(snapshots SnapshotReader) *Engine {
	return &Engine{snapshots: snapshots, now: time.Now}
}

// CalculateSingleVelocity computes the velocity for one risk over the last
// periodDays days. Fewer than 2 snapshots in the window yields a zero,
// stable result.
func (e *Engine) CalculateSingleVelocity(riskID uuid.UUID, periodDays int) (RiskVelocity, error) {
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}

	since := e.now().AddDate(0, 0, -periodDays)
	snapshots, err := e.snapshots.ListSince(riskID, since)
	if err != nil {
		return RiskVelocity{}, err
	}

	return velocityFromWindow(snapshots), nil
}

// CalculateBatchVelocity computes velocities for many risks with a single
// bulk snapshot fetch, grouping in memory. Risks with fewer than 2 snapshots
// in the window yield the same zero, stable result as the single path. An
// empty input returns an empty map without issuing a query.
func (e *Engine) CalculateBatchVelocity(riskIDs []uuid.UUID, periodDays int) (map[uuid.UUID]RiskVelocity, error) {
	result := make(map[uuid.UUID]RiskVelocity, len(riskIDs))
	if len(riskIDs) == 0 {
		return result, nil
	}

	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}

	since := e.now().AddDate(0, 0, -periodDays)
	snapshots, err := e.snapshots.ListManySince(riskIDs, since)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]models.RiskScoreSnapshot)
	for _, s := range snapshots {
		grouped[s.RiskID] = append(grouped[s.RiskID], s)
	}

	for _, id := range riskIDs {
		result[id] = velocityFromWindow(grouped[id])
	}

	return result, nil
}

// velocityFromWindow applies the per-risk algorithm to an ascending-ordered
// snapshot window.
func velocityFromWindow(snapshots []models.RiskScoreSnapshot) RiskVelocity {
	if len(snapshots) < 2 {
		return RiskVelocity{Trend: TrendStable}
	}

	earliest := snapshots[0]
	latest := snapshots[len(snapshots)-1]

	// Same-day snapshots count as a 1-day span to avoid dividing by zero
	// and inflating a same-day rate.
	span := latest.RecordedAt.Sub(earliest.RecordedAt).Hours() / 24
	daysDiff := int(math.Round(span))
	if daysDiff < 1 {
		daysDiff = 1
	}

	// Trend classification uses the full-precision rate; rounding applies
	// only to the reported fields.
	inherentRate := (latest.InherentScore - earliest.InherentScore) / float64(daysDiff)
	residualRate := (latest.ResidualScore - earliest.ResidualScore) / float64(daysDiff)

	return RiskVelocity{
		InherentChange: round2(inherentRate),
		ResidualChange: round2(residualRate),
		Trend:          classifyTrend(residualRate),
		PeriodDays:     daysDiff,
	}
}

// classifyTrend applies the ±0.1 points/day noise band, exclusive of the
// boundary: exactly ±0.1 is stable.
func classifyTrend(residualChange float64) Trend {
	switch {
	case residualChange < -trendThreshold:
		return TrendImproving
	case residualChange > trendThreshold:
		return TrendWorsening
	default:
		return TrendStable
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
