package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler handles bulk spreadsheet ingestion
type ImportHandler struct {
	importService services.ImportService
	maxUploadSize int64
}

// NewImportHandler creates a new import handler with service injection
func NewImportHandler(importService services.ImportService, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxUploadSize: maxUploadSize,
	}
}

// Import ingests an uploaded CSV or XLSX file for the entity named in the
// path. With dry_run=true the file is parsed and validated but nothing is
// written.
func (h *ImportHandler) Import(c *gin.Context) {
	entityType := c.Param("entity")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File exceeds maximum upload size of %d bytes", h.maxUploadSize),
		})
		return
	}

	organizationID, err := uuid.Parse(c.PostForm("organization_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid organization_id is required"})
		return
	}

	dryRun, _ := strconv.ParseBool(c.DefaultPostForm("dry_run", "false"))

	result, err := h.importService.Import(entityType, file, header.Filename, organizationID, dryRun)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Template serves the downloadable spreadsheet template for an entity type
func (h *ImportHandler) Template(c *gin.Context) {
	entityType := c.Param("entity")

	template, err := h.importService.Template(entityType)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-import-template.xlsx", entityType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, template)
}
