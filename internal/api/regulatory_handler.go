package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haibh/airisk-dashboard-sub002/internal/regwatch"
)

// RegulatoryHandler serves tracked regulatory updates
type RegulatoryHandler struct {
	regwatchService *regwatch.Service
}

// NewRegulatoryHandler creates a new regulatory handler
func NewRegulatoryHandler(regwatchService *regwatch.Service) *RegulatoryHandler {
	return &RegulatoryHandler{
		regwatchService: regwatchService,
	}
}

// GetUpdates returns the current regulatory updates from the configured feed
func (h *RegulatoryHandler) GetUpdates(c *gin.Context) {
	if h.regwatchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Regulatory feed is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	updates, err := h.regwatchService.Updates(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch regulatory updates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updates":   updates,
		"count":     len(updates),
		"timestamp": time.Now(),
	})
}
