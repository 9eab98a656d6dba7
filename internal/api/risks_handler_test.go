package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/internal/velocity"
)

// stubRiskService serves risks from an in-memory map
type stubRiskService struct {
	risks map[uuid.UUID]*models.Risk
}

func (s *stubRiskService) GetByID(id uuid.UUID) (*models.Risk, error) {
	risk, ok := s.risks[id]
	if !ok {
		return nil, apperrors.NotFound("risk not found", nil)
	}
	return risk, nil
}

func (s *stubRiskService) GetAll(filters repository.RiskFilters) ([]models.Risk, error) {
	var out []models.Risk
	for _, risk := range s.risks {
		out = append(out, *risk)
	}
	return out, nil
}

func (s *stubRiskService) Create(risk *models.Risk) error {
	if !models.IsValidRiskCategory(string(risk.Category)) {
		return apperrors.InvalidInput("invalid risk category", nil)
	}
	risk.ID = uuid.New()
	risk.InherentScore = float64(risk.Likelihood * risk.Impact)
	risk.ResidualScore = risk.InherentScore
	s.risks[risk.ID] = risk
	return nil
}

func (s *stubRiskService) Update(risk *models.Risk) error {
	if _, ok := s.risks[risk.ID]; !ok {
		return apperrors.NotFound("risk not found", nil)
	}
	s.risks[risk.ID] = risk
	return nil
}

func (s *stubRiskService) Delete(id uuid.UUID) error {
	if _, ok := s.risks[id]; !ok {
		return apperrors.NotFound("risk not found", nil)
	}
	delete(s.risks, id)
	return nil
}

// stubVelocityService returns one canned velocity per known risk
type stubVelocityService struct {
	known      map[uuid.UUID]velocity.RiskVelocity
	batchCalls int
}

func (s *stubVelocityService) ForRisk(riskID uuid.UUID, periodDays int) (velocity.RiskVelocity, error) {
	v, ok := s.known[riskID]
	if !ok {
		return velocity.RiskVelocity{}, apperrors.NotFound("risk not found", nil)
	}
	return v, nil
}

func (s *stubVelocityService) ForRisks(riskIDs []uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error) {
	s.batchCalls++
	out := make(map[uuid.UUID]velocity.RiskVelocity)
	for _, id := range riskIDs {
		if v, ok := s.known[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (s *stubVelocityService) ForOrganization(organizationID uuid.UUID, periodDays int) (map[uuid.UUID]velocity.RiskVelocity, error) {
	s.batchCalls++
	return s.known, nil
}

func riskRouter(risks *stubRiskService, velocities *stubVelocityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewRiskHandler(risks, velocities)
	router := gin.New()
	router.GET("/risks", handler.GetRisks)
	router.POST("/risks", handler.CreateRisk)
	router.GET("/risks/:id", handler.GetRisk)
	router.GET("/risks/:id/velocity", handler.GetRiskVelocity)
	router.POST("/risks/velocity", handler.BatchVelocity)
	return router
}

func TestRiskHandler_CreateAndGet(t *testing.T) {
	risks := &stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}
	router := riskRouter(risks, &stubVelocityService{})

	payload := fmt.Sprintf(`{
		"organization_id": %q,
		"title": "Unreviewed model rollout",
		"category": "operational",
		"likelihood": 4,
		"impact": 5
	}`, uuid.New())

	req := httptest.NewRequest("POST", "/risks", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Risk models.Risk `json:"risk"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req = httptest.NewRequest("GET", "/risks/"+created.Risk.ID.String(), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var fetched struct {
		Risk      models.Risk `json:"risk"`
		RiskLevel string      `json:"risk_level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fetched.RiskLevel != "CRITICAL" {
		t.Errorf("Expected CRITICAL level for score 20, got %q", fetched.RiskLevel)
	}
}

func TestRiskHandler_CreateValidation(t *testing.T) {
	router := riskRouter(&stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}, &stubVelocityService{})

	tests := []struct {
		name    string
		payload string
	}{
		{"missing title", fmt.Sprintf(`{"organization_id": %q, "category": "security", "likelihood": 3, "impact": 3}`, uuid.New())},
		{"likelihood out of range", fmt.Sprintf(`{"organization_id": %q, "title": "x", "category": "security", "likelihood": 6, "impact": 3}`, uuid.New())},
		{"invalid category", fmt.Sprintf(`{"organization_id": %q, "title": "x", "category": "fashion", "likelihood": 3, "impact": 3}`, uuid.New())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/risks", bytes.NewReader([]byte(tt.payload)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRiskHandler_GetRiskVelocity(t *testing.T) {
	riskID := uuid.New()
	velocities := &stubVelocityService{known: map[uuid.UUID]velocity.RiskVelocity{
		riskID: {InherentChange: -0.5, ResidualChange: -1, Trend: velocity.TrendImproving, PeriodDays: 10},
	}}
	router := riskRouter(&stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}, velocities)

	req := httptest.NewRequest("GET", "/risks/"+riskID.String()+"/velocity?period_days=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Velocity velocity.RiskVelocity `json:"velocity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Velocity.Trend != velocity.TrendImproving || resp.Velocity.ResidualChange != -1 {
		t.Errorf("Unexpected velocity payload: %+v", resp.Velocity)
	}
}

func TestRiskHandler_VelocityUnknownRisk(t *testing.T) {
	router := riskRouter(&stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}, &stubVelocityService{})

	req := httptest.NewRequest("GET", "/risks/"+uuid.New().String()+"/velocity", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown risk, got %d", w.Code)
	}
}

func TestRiskHandler_BatchVelocity(t *testing.T) {
	riskID := uuid.New()
	velocities := &stubVelocityService{known: map[uuid.UUID]velocity.RiskVelocity{
		riskID: {Trend: velocity.TrendStable, PeriodDays: 10},
	}}
	router := riskRouter(&stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}, velocities)

	payload := fmt.Sprintf(`{"risk_ids": [%q], "period_days": 10}`, riskID)
	req := httptest.NewRequest("POST", "/risks/velocity", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if velocities.batchCalls != 1 {
		t.Errorf("Expected 1 batch call, got %d", velocities.batchCalls)
	}
}

func TestRiskHandler_BatchVelocityRequiresSelection(t *testing.T) {
	router := riskRouter(&stubRiskService{risks: make(map[uuid.UUID]*models.Risk)}, &stubVelocityService{})

	req := httptest.NewRequest("POST", "/risks/velocity", bytes.NewReader([]byte(`{"period_days": 10}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without risk_ids or organization_id, got %d", w.Code)
	}
}
