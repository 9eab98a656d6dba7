package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/services"
)

// AISystemHandler handles AI-system inventory operations
type AISystemHandler struct {
	systemService services.AISystemService
}

// NewAISystemHandler creates a new AI-system handler with service injection
func NewAISystemHandler(systemService services.AISystemService) *AISystemHandler {
	return &AISystemHandler{
		systemService: systemService,
	}
}

// AISystemRequest is the create/update payload for an inventory record
type AISystemRequest struct {
	OrganizationID     uuid.UUID `json:"organization_id" binding:"required"`
	Name               string    `json:"name" binding:"required"`
	Description        string    `json:"description"`
	SystemType         string    `json:"system_type"`
	Status             string    `json:"status"`
	DataClassification string    `json:"data_classification"`
	Vendor             string    `json:"vendor"`
	Owner              string    `json:"owner"`
}

// GetAISystems returns AI systems matching the query filters
func (h *AISystemHandler) GetAISystems(c *gin.Context) {
	filters := repository.AISystemFilters{
		SystemTypes: c.QueryArray("system_type"),
		Statuses:    c.QueryArray("status"),
	}

	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
			return
		}
		filters.OrganizationID = &orgID
	}

	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	systems, err := h.systemService.GetAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ai_systems": systems,
		"count":      len(systems),
	})
}

// GetAISystem returns a single AI system
func (h *AISystemHandler) GetAISystem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid AI system ID"})
		return
	}

	system, err := h.systemService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ai_system": system})
}

// CreateAISystem creates a new AI system record
func (h *AISystemHandler) CreateAISystem(c *gin.Context) {
	var req AISystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	system := aiSystemFromRequest(req)
	if err := h.systemService.Create(system); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "AI system created successfully",
		"ai_system": system,
	})
}

// UpdateAISystem updates an existing AI system record
func (h *AISystemHandler) UpdateAISystem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid AI system ID"})
		return
	}

	var req AISystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	system := aiSystemFromRequest(req)
	system.ID = id
	if err := h.systemService.Update(system); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "AI system updated successfully",
		"ai_system": system,
	})
}

// DeleteAISystem removes an AI system record
func (h *AISystemHandler) DeleteAISystem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid AI system ID"})
		return
	}

	if err := h.systemService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "AI system deleted successfully"})
}

func aiSystemFromRequest(req AISystemRequest) *models.AISystem {
	return &models.AISystem{
		OrganizationID:     req.OrganizationID,
		Name:               req.Name,
		Description:        req.Description,
		SystemType:         models.AISystemType(req.SystemType),
		Status:             models.AISystemStatus(req.Status),
		DataClassification: models.DataClassification(req.DataClassification),
		Vendor:             req.Vendor,
		Owner:              req.Owner,
	}
}
