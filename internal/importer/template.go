package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
)

// Entity type keys accepted by template generation and the import endpoints
const (
	EntityRisks     = "risks"
	EntityAISystems = "ai-systems"
)

// RiskTemplateColumns are the header columns of a risk upload file
var RiskTemplateColumns = []string{
	colTitle, colDescription, colCategory, colLikelihood, colImpact,
	colControlEffectiveness, colOwner,
}

// AISystemTemplateColumns are the header columns of an AI-system upload file
var AISystemTemplateColumns = []string{
	colName, colDescription, colSystemType, colStatus, colDataClassification,
	colVendor, colOwner,
}

// BuildTemplate produces an empty spreadsheet pre-populated with the header
// columns for the given entity type, to guide users preparing upload files.
func BuildTemplate(entityType string) ([]byte, error) {
	var columns []string
	var sheet string

	switch entityType {
	case EntityRisks:
		columns = RiskTemplateColumns
		sheet = "Risks"
	case EntityAISystems:
		columns = AISystemTemplateColumns
		sheet = "AI Systems"
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown entity type: %s", entityType), nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.InternalError("failed to create template sheet", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, apperrors.InternalError("failed to prune default sheet", err)
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, apperrors.InternalError("failed to build template header", err)
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return nil, apperrors.InternalError("failed to build template header", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.InternalError("failed to serialize template", err)
	}
	return buf.Bytes(), nil
}
