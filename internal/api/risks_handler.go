package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/scoring"
	"github.com/haibh/airisk-dashboard-sub002/internal/services"
)

// RiskHandler handles risk register operations
type RiskHandler struct {
	riskService     services.RiskService
	velocityService services.VelocityService
}

// NewRiskHandler creates a new risk handler with service injection
func NewRiskHandler(riskService services.RiskService, velocityService services.VelocityService) *RiskHandler {
	return &RiskHandler{
		riskService:     riskService,
		velocityService: velocityService,
	}
}

// RiskRequest is the create/update payload for a risk register entry
type RiskRequest struct {
	OrganizationID       uuid.UUID `json:"organization_id" binding:"required"`
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	Category             string    `json:"category" binding:"required"`
	Likelihood           int       `json:"likelihood" binding:"required,min=1,max=5"`
	Impact               int       `json:"impact" binding:"required,min=1,max=5"`
	ControlEffectiveness *float64  `json:"control_effectiveness"`
	Owner                string    `json:"owner"`
	Status               string    `json:"status"`
}

// GetRisks returns risks matching the query filters
func (h *RiskHandler) GetRisks(c *gin.Context) {
	filters := repository.RiskFilters{
		Categories: c.QueryArray("category"),
		Statuses:   c.QueryArray("status"),
	}

	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID"})
			return
		}
		filters.OrganizationID = &orgID
	}

	if raw := c.Query("min_residual"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinResidual = &v
		}
	}
	if raw := c.Query("max_residual"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxResidual = &v
		}
	}

	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	risks, err := h.riskService.GetAll(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risks": risks,
		"count": len(risks),
	})
}

// GetRisk returns a single risk with its derived level
func (h *RiskHandler) GetRisk(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	risk, err := h.riskService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risk":       risk,
		"risk_level": scoring.GetRiskLevel(risk.ResidualScore),
	})
}

// CreateRisk creates a new risk. Scores are derived server-side from
// likelihood, impact, and control effectiveness.
func (h *RiskHandler) CreateRisk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	risk := riskFromRequest(req)
	if err := h.riskService.Create(risk); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Risk created successfully",
		"risk":    risk,
	})
}

// UpdateRisk updates an existing risk and re-derives its scores
func (h *RiskHandler) UpdateRisk(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	risk := riskFromRequest(req)
	risk.ID = id
	if err := h.riskService.Update(risk); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Risk updated successfully",
		"risk":    risk,
	})
}

// DeleteRisk removes a risk and its snapshot history
func (h *RiskHandler) DeleteRisk(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	if err := h.riskService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Risk deleted successfully"})
}

// GetRiskVelocity returns the velocity of one risk over the requested window
func (h *RiskHandler) GetRiskVelocity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	periodDays, _ := strconv.Atoi(c.DefaultQuery("period_days", "0"))

	result, err := h.velocityService.ForRisk(id, periodDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risk_id":   id,
		"velocity":  result,
		"timestamp": time.Now(),
	})
}

// BatchVelocityRequest selects which risks a batch velocity query covers.
// Either an explicit ID list or a whole organization.
type BatchVelocityRequest struct {
	RiskIDs        []uuid.UUID `json:"risk_ids"`
	OrganizationID *uuid.UUID  `json:"organization_id"`
	PeriodDays     int         `json:"period_days"`
}

// BatchVelocity computes velocities for many risks in one request
func (h *RiskHandler) BatchVelocity(c *gin.Context) {
	var req BatchVelocityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var (
		velocities interface{}
		err        error
	)
	switch {
	case len(req.RiskIDs) > 0:
		velocities, err = h.velocityService.ForRisks(req.RiskIDs, req.PeriodDays)
	case req.OrganizationID != nil:
		velocities, err = h.velocityService.ForOrganization(*req.OrganizationID, req.PeriodDays)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "risk_ids or organization_id is required"})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"velocities": velocities,
		"timestamp":  time.Now(),
	})
}

func riskFromRequest(req RiskRequest) *models.Risk {
	return &models.Risk{
		OrganizationID:       req.OrganizationID,
		Title:                req.Title,
		Description:          req.Description,
		Category:             models.RiskCategory(req.Category),
		Likelihood:           req.Likelihood,
		Impact:               req.Impact,
		ControlEffectiveness: req.ControlEffectiveness,
		Owner:                req.Owner,
		Status:               req.Status,
	}
}
