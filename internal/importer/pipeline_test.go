package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
)

// fakeStore stages writes for one transaction and can fail on demand
type fakeStore struct {
	staged      []string
	failOnTitle string
	failOnName  string
}

func (s *fakeStore) CreateRisk(organizationID uuid.UUID, row RiskImportRow) error {
	if s.failOnTitle != "" && row.Title == s.failOnTitle {
		return errors.New("constraint violation")
	}
	s.staged = append(s.staged, row.Title)
	return nil
}

func (s *fakeStore) CreateAISystem(organizationID uuid.UUID, row AISystemImportRow) error {
	if s.failOnName != "" && row.Name == s.failOnName {
		return errors.New("constraint violation")
	}
	s.staged = append(s.staged, row.Name)
	return nil
}

// fakeTxRunner counts transactions and commits staged writes only on success
type fakeTxRunner struct {
	calls       int
	committed   []string
	failOnTitle string
	failOnName  string
}

func (f *fakeTxRunner) WithTransaction(fn func(store Store) error) error {
	f.calls++
	store := &fakeStore{failOnTitle: f.failOnTitle, failOnName: f.failOnName}
	if err := fn(store); err != nil {
		// Rollback: staged writes are discarded
		return err
	}
	f.committed = append(f.committed, store.staged...)
	return nil
}

func riskCSV(n int) string {
	var b strings.Builder
	b.WriteString("title,category,likelihood,impact\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Risk %d,operational,3,4\n", i+1)
	}
	return b.String()
}

func TestImportRisks_DryRun(t *testing.T) {
	csvContent := "title,category,likelihood,impact\n" +
		"Good risk,operational,3,4\n" +
		",security,2,2\n" // missing title

	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 0)

	result, err := pipeline.ImportRisks(strings.NewReader(csvContent), "risks.csv", uuid.New(), true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.TotalRows != 2 || result.ValidRows != 1 || result.InvalidRows != 1 {
		t.Errorf("Expected totals 2/1/1, got %d/%d/%d", result.TotalRows, result.ValidRows, result.InvalidRows)
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != "Title is required" {
		t.Errorf("Expected title error, got %v", result.Errors)
	}
	if len(result.Preview) != 2 {
		t.Errorf("Expected preview of 2 parsed rows, got %d", len(result.Preview))
	}
	if tx.calls != 0 {
		t.Errorf("Dry run must not open transactions, got %d", tx.calls)
	}
	if result.Imported != 0 {
		t.Errorf("Dry run must not import, got %d", result.Imported)
	}
}

func TestImportRisks_PreviewIsBounded(t *testing.T) {
	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 0)

	result, err := pipeline.ImportRisks(strings.NewReader(riskCSV(50)), "risks.csv", uuid.New(), true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Preview) != PreviewLimit {
		t.Errorf("Expected preview capped at %d, got %d", PreviewLimit, len(result.Preview))
	}
}

func TestImportRisks_CommitChunks(t *testing.T) {
	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 100)

	result, err := pipeline.ImportRisks(strings.NewReader(riskCSV(150)), "risks.csv", uuid.New(), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 150 valid rows persist as 100 + 50
	if tx.calls != 2 {
		t.Errorf("Expected exactly 2 chunk transactions for 150 rows, got %d", tx.calls)
	}
	if result.Imported != 150 {
		t.Errorf("Expected 150 imported, got %d", result.Imported)
	}
	if result.Failed != 0 {
		t.Errorf("Expected 0 failed, got %d", result.Failed)
	}
	if len(tx.committed) != 150 {
		t.Errorf("Expected 150 committed writes, got %d", len(tx.committed))
	}

	// Commit order follows file order
	if tx.committed[0] != "Risk 1" || tx.committed[149] != "Risk 150" {
		t.Errorf("Expected file-ordered commits, got first=%q last=%q", tx.committed[0], tx.committed[149])
	}
}

func TestImportRisks_InvalidRowsNeverPersisted(t *testing.T) {
	csvContent := "title,category,likelihood,impact\n" +
		"Good one,operational,3,4\n" +
		"Bad one,unknown-category,3,4\n" +
		"Good two,security,1,5\n"

	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 0)

	result, err := pipeline.ImportRisks(strings.NewReader(csvContent), "risks.csv", uuid.New(), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Imported != 2 || result.InvalidRows != 1 {
		t.Errorf("Expected 2 imported and 1 invalid, got %d/%d", result.Imported, result.InvalidRows)
	}
	for _, title := range tx.committed {
		if title == "Bad one" {
			t.Error("Invalid row must never be persisted")
		}
	}
}

func TestImportRisks_FailedChunkDoesNotAbortLaterChunks(t *testing.T) {
	tx := &fakeTxRunner{failOnTitle: "Risk 3"}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 5)

	result, err := pipeline.ImportRisks(strings.NewReader(riskCSV(12)), "risks.csv", uuid.New(), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Chunks of 5: the first chunk fails on row 3 and rolls back whole;
	// the remaining two chunks commit.
	if tx.calls != 3 {
		t.Errorf("Expected 3 chunk transactions, got %d", tx.calls)
	}
	if result.Failed != 5 {
		t.Errorf("Expected 5 failed rows from rolled-back chunk, got %d", result.Failed)
	}
	if result.Imported != 7 {
		t.Errorf("Expected 7 imported from surviving chunks, got %d", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 persistence error, got %d", len(result.Errors))
	}
	if result.Errors[0].Row != 4 { // "Risk 3" is file line 4 (header is line 1)
		t.Errorf("Expected error attributed to file line 4, got %d", result.Errors[0].Row)
	}
	for _, title := range tx.committed {
		if title == "Risk 1" || title == "Risk 2" {
			t.Errorf("Rolled-back chunk left partial write: %s", title)
		}
	}
}

func TestImportRisks_FormatErrorAbortsBeforeValidation(t *testing.T) {
	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 0)

	_, err := pipeline.ImportRisks(strings.NewReader("title,category\n"), "risks.csv", uuid.New(), false)
	if err == nil {
		t.Fatal("Expected format error for header-only file")
	}
	if tx.calls != 0 {
		t.Errorf("Structural failure must not open transactions, got %d", tx.calls)
	}
}

func TestImportAISystems_Commit(t *testing.T) {
	csvContent := "name,systemType\n" +
		"Fraud model,PREDICTIVE\n" +
		",LLM\n" + // missing name
		"Search ranker,\n"

	tx := &fakeTxRunner{}
	pipeline := NewPipeline(tx, logger.NewSimpleLogger(), 0)

	result, err := pipeline.ImportAISystems(strings.NewReader(csvContent), "systems.csv", uuid.New(), false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.TotalRows != 3 || result.Imported != 2 || result.InvalidRows != 1 {
		t.Errorf("Expected 3 total, 2 imported, 1 invalid; got %d/%d/%d",
			result.TotalRows, result.Imported, result.InvalidRows)
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != "Name is required" {
		t.Errorf("Expected name error, got %v", result.Errors)
	}
}
