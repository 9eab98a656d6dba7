// Package importer implements the validated, chunked bulk-import pipeline
// for risk and AI-system records uploaded as CSV or XLSX files.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
)

// Row is a parsed tabular row before validation: the file row number plus a
// header-name to raw-value mapping.
type Row struct {
	Line   int               `json:"line"`
	Fields map[string]string `json:"fields"`
}

// Get returns the trimmed value for a column, and whether the column is
// present with a non-empty value.
func (r Row) Get(column string) (string, bool) {
	value, ok := r.Fields[column]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// ParseFile parses an uploaded file, selecting the parser by extension
func ParseFile(reader io.Reader, filename string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(reader)
	case ".xlsx":
		return ParseXLSX(reader)
	default:
		return nil, apperrors.FormatError(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), nil)
	}
}

// ParseCSV parses delimited text. The first line is the header row; quoted
// values may contain embedded delimiters and doubled quote characters.
// Blank lines are skipped rather than treated as empty records.
func ParseCSV(reader io.Reader) ([]Row, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.FormatError("failed to read CSV", err)
	}

	if len(records) == 0 {
		return nil, apperrors.FormatError("CSV must have header row", nil)
	}
	if len(records) == 1 {
		return nil, apperrors.FormatError("CSV must have header row and at least one data row", nil)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return rowsFromRecords(headers, records[1:]), nil
}

// ParseXLSX parses the first worksheet of a spreadsheet: first row as
// headers, subsequent rows as records, blank rows skipped.
func ParseXLSX(reader io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperrors.FormatError("failed to open spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.FormatError("spreadsheet has no worksheets", nil)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.FormatError("failed to read spreadsheet rows", err)
	}

	if len(records) == 0 {
		return nil, apperrors.FormatError("spreadsheet must have header row", nil)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return rowsFromRecords(headers, records[1:]), nil
}

// rowsFromRecords maps data records onto header names, skipping blank rows.
// Line numbers are file row numbers with the header as row 1.
func rowsFromRecords(headers []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for i, record := range records {
		if isBlankRecord(record) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(record) {
				fields[header] = record[j]
			} else {
				fields[header] = ""
			}
		}

		rows = append(rows, Row{Line: i + 2, Fields: fields})
	}
	return rows
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
