package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
)

// DefaultChunkSize is the number of valid rows persisted per transaction
const DefaultChunkSize = 100

// PreviewLimit bounds the parsed-row sample returned by dry runs
const PreviewLimit = 10

// Store is the persistence port a chunk transaction writes through
type Store interface {
	CreateRisk(organizationID uuid.UUID, row RiskImportRow) error
	CreateAISystem(organizationID uuid.UUID, row AISystemImportRow) error
}

// TxRunner executes a function inside one atomic transaction. A returned
// error must roll the transaction back.
type TxRunner interface {
	WithTransaction(fn func(store Store) error) error
}

// Result reports an import outcome. Dry runs populate ValidRows/InvalidRows/
// Preview and never write; commits populate Imported/Failed, where Failed
// counts valid rows whose persistence failed, separately from validation
// failures.
type Result struct {
	TotalRows   int        `json:"total_rows"`
	ValidRows   int        `json:"valid_rows"`
	InvalidRows int        `json:"invalid_rows"`
	DryRun      bool       `json:"dry_run"`
	Imported    int        `json:"imported"`
	Failed      int        `json:"failed"`
	Errors      []RowError `json:"errors"`
	Preview     []Row      `json:"preview,omitempty"`
}

// Pipeline ingests tabular risk or AI-system records into the store. It is
// request-scoped: one upload is processed start-to-finish, chunks strictly
// in sequence.
type Pipeline struct {
	tx        TxRunner
	logger    logger.Logger
	chunkSize int
}

// NewPipeline creates an import pipeline. chunkSize <= 0 selects the default.
func NewPipeline(tx TxRunner, log logger.Logger, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{tx: tx, logger: log, chunkSize: chunkSize}
}

// ImportRisks parses, validates, and (unless dryRun) persists risk rows from
// the uploaded file. Ownership is always supplied by the caller via
// organizationID, never inferred.
func (p *Pipeline) ImportRisks(reader io.Reader, filename string, organizationID uuid.UUID, dryRun bool) (*Result, error) {
	rows, err := ParseFile(reader, filename)
	if err != nil {
		return nil, err
	}

	valid, rowErrors := ValidateRiskRows(rows)
	result := &Result{
		TotalRows:   len(rows),
		ValidRows:   len(valid),
		InvalidRows: len(rows) - len(valid),
		DryRun:      dryRun,
		Errors:      rowErrors,
	}

	if dryRun {
		result.Preview = previewOf(rows)
		return result, nil
	}

	p.commitChunks(result, len(valid), func(store Store, i int) (int, error) {
		return valid[i].Line, store.CreateRisk(organizationID, valid[i])
	})

	p.logger.Info("Risk import committed", "total", result.TotalRows, "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

// ImportAISystems is the AI-system counterpart of ImportRisks
func (p *Pipeline) ImportAISystems(reader io.Reader, filename string, organizationID uuid.UUID, dryRun bool) (*Result, error) {
	rows, err := ParseFile(reader, filename)
	if err != nil {
		return nil, err
	}

	valid, rowErrors := ValidateAISystemRows(rows)
	result := &Result{
		TotalRows:   len(rows),
		ValidRows:   len(valid),
		InvalidRows: len(rows) - len(valid),
		DryRun:      dryRun,
		Errors:      rowErrors,
	}

	if dryRun {
		result.Preview = previewOf(rows)
		return result, nil
	}

	p.commitChunks(result, len(valid), func(store Store, i int) (int, error) {
		return valid[i].Line, store.CreateAISystem(organizationID, valid[i])
	})

	p.logger.Info("AI system import committed", "total", result.TotalRows, "imported", result.Imported, "failed", result.Failed)
	return result, nil
}

// commitChunks persists valid rows in fixed-size chunks, one transaction per
// chunk, sequentially. A failed chunk rolls back its own writes and counts
// its rows as failed, but does not stop later chunks: chunk-level atomicity,
// not whole-import atomicity.
func (p *Pipeline) commitChunks(result *Result, total int, persist func(store Store, i int) (int, error)) {
	for start := 0; start < total; start += p.chunkSize {
		end := start + p.chunkSize
		if end > total {
			end = total
		}

		failedLine := 0
		err := p.tx.WithTransaction(func(store Store) error {
			for i := start; i < end; i++ {
				line, err := persist(store, i)
				if err != nil {
					failedLine = line
					return err
				}
			}
			return nil
		})

		if err != nil {
			result.Failed += end - start
			result.Errors = append(result.Errors, RowError{
				Row:     failedLine,
				Message: fmt.Sprintf("failed to persist row: %v", err),
			})
			p.logger.Error("Import chunk failed", err, "from", start, "to", end)
			continue
		}

		result.Imported += end - start
	}
}

func previewOf(rows []Row) []Row {
	if len(rows) <= PreviewLimit {
		return rows
	}
	return rows[:PreviewLimit]
}
