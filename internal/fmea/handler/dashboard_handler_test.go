package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/fmea/testutil"
)

func setupDashboardTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	matrixSvc := service.NewRiskMatrixService(repos.RiskMatrix)
	h := NewDashboardHandler(service.NewDashboardService(repos.FMEA, repos.SparePart, matrixSvc))

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/dashboard/summary", h.Summary)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedRecord(t *testing.T, env *testutil.TestEnv, id string, s, o, d *int) {
	t.Helper()
	rec := &entity.FMEARecord{
		ID:          id,
		EquipmentID: "eq-1",
		Category:    "mechanical",
		Severity:    s,
		Occurrence:  o,
		Detection:   d,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.DB.Create(rec).Error; err != nil {
		t.Fatalf("Failed to seed record: %v", err)
	}
}

func ratingPtr(v int) *int {
	return &v
}

func TestDashboardSummary(t *testing.T) {
	env := setupDashboardTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	seedRecord(t, env, "r1", ratingPtr(5), ratingPtr(5), ratingPtr(5)) // 125 → high
	seedRecord(t, env, "r2", ratingPtr(2), ratingPtr(2), ratingPtr(2)) // 8 → low
	seedRecord(t, env, "r3", nil, nil, nil)                            // unscored

	part := &entity.SparePart{
		ID: "p1", Name: "Seal Kit", Status: entity.SparePartStatusApproved,
		CurrentStock: 1, MinStock: 5, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	if err := env.DB.Create(part).Error; err != nil {
		t.Fatalf("Failed to seed spare part: %v", err)
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/summary", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["total_records"] != float64(3) {
		t.Errorf("Expected 3 total records, got %v", data["total_records"])
	}

	byLevel := data["by_risk_level"].(map[string]interface{})
	if byLevel["high"] != float64(1) {
		t.Errorf("Expected 1 high, got %v", byLevel["high"])
	}
	if byLevel["low"] != float64(1) {
		t.Errorf("Expected 1 low, got %v", byLevel["low"])
	}
	if byLevel["unscored"] != float64(1) {
		t.Errorf("Expected 1 unscored, got %v", byLevel["unscored"])
	}

	highRisk := data["high_risk_top"].([]interface{})
	if len(highRisk) != 1 {
		t.Fatalf("Expected 1 high-risk entry, got %d", len(highRisk))
	}
	entry := highRisk[0].(map[string]interface{})
	if entry["record_id"] != "r1" || entry["rpn"] != float64(125) {
		t.Errorf("Unexpected high-risk entry: %+v", entry)
	}

	spareParts := data["spare_parts"].(map[string]interface{})
	lowStock := spareParts["low_stock"].([]interface{})
	if len(lowStock) != 1 {
		t.Errorf("Expected 1 low-stock part, got %d", len(lowStock))
	}
}

func TestDashboardSummaryIdempotent(t *testing.T) {
	env := setupDashboardTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	seedRecord(t, env, "r1", ratingPtr(6), ratingPtr(6), ratingPtr(6))

	first := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/summary", nil, testutil.UserToken("u1"))
	second := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/summary", nil, testutil.UserToken("u1"))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200s, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("Same snapshot must produce identical summaries")
	}
}

func TestDashboardTopNQuery(t *testing.T) {
	env := setupDashboardTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	seedRecord(t, env, "r1", ratingPtr(5), ratingPtr(5), ratingPtr(5))
	seedRecord(t, env, "r2", ratingPtr(6), ratingPtr(6), ratingPtr(6))
	seedRecord(t, env, "r3", ratingPtr(10), ratingPtr(5), ratingPtr(5))

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/summary?top_n=2", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	highRisk := data["high_risk_top"].([]interface{})
	if len(highRisk) != 2 {
		t.Fatalf("Expected top 2, got %d", len(highRisk))
	}
	first := highRisk[0].(map[string]interface{})
	if first["record_id"] != "r3" {
		t.Errorf("Expected r3 (RPN 250) first, got %v", first["record_id"])
	}
}
