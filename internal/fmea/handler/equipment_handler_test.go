package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/fmea/testutil"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

func setupEquipmentTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	matrixSvc := service.NewRiskMatrixService(repos.RiskMatrix)
	h := NewEquipmentHandler(service.NewEquipmentService(repos.Equipment, repos.Component, repos.FMEA, matrixSvc))

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/equipment", h.List)
	api.GET("/equipment/:id", h.Get)
	api.GET("/equipment/:id/summary", h.Summary)
	api.POST("/equipment",
		middleware.Authorize(authz.ResourceEquipment, authz.ActionCreate), h.Create)
	api.DELETE("/equipment/:id",
		middleware.Authorize(authz.ResourceEquipment, authz.ActionDelete), h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedScoredRecord(t *testing.T, env *testutil.TestEnv, id, equipmentID string, s, o, d int) {
	t.Helper()
	rec := &entity.FMEARecord{
		ID:          id,
		EquipmentID: equipmentID,
		Severity:    &s,
		Occurrence:  &o,
		Detection:   &d,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.DB.Create(rec).Error; err != nil {
		t.Fatalf("Failed to seed record: %v", err)
	}
}

func TestEquipmentGetAttachesScore(t *testing.T) {
	env := setupEquipmentTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	seedScoredRecord(t, env, "r1", "eq-1", 5, 5, 5) // 125
	seedScoredRecord(t, env, "r2", "eq-1", 2, 5, 5) // 50

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/equipment/eq-1", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	// (125+50)/2 = 87.5 → 88
	if data["average_rpn"] != float64(88) {
		t.Errorf("Expected average_rpn 88, got %v", data["average_rpn"])
	}
	if data["scored_records"] != float64(2) {
		t.Errorf("Expected 2 scored records, got %v", data["scored_records"])
	}
}

func TestEquipmentWithoutRecordsOmitsScore(t *testing.T) {
	env := setupEquipmentTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/equipment/eq-1", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	// 无可评分记录："无数据"，字段缺省而不是0
	if _, present := data["average_rpn"]; present {
		t.Errorf("average_rpn must be omitted without scorable records, got %v", data["average_rpn"])
	}
}

func TestEquipmentListWithScoreFlag(t *testing.T) {
	env := setupEquipmentTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	testutil.SeedTestEquipment(t, env.DB, "eq-2", "C-201", "Compressor")
	seedScoredRecord(t, env, "r1", "eq-1", 5, 5, 5)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/equipment?with_score=true", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 equipment, got %d", len(items))
	}

	scored := 0
	for _, raw := range items {
		item := raw.(map[string]interface{})
		if _, present := item["average_rpn"]; present {
			scored++
			if item["id"] != "eq-1" {
				t.Errorf("Only eq-1 must carry a score, got %v", item["id"])
			}
		}
	}
	if scored != 1 {
		t.Errorf("Expected exactly 1 scored equipment, got %d", scored)
	}
}

func TestEquipmentSummary(t *testing.T) {
	env := setupEquipmentTest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	seedScoredRecord(t, env, "r1", "eq-1", 5, 5, 5) // 125
	unscored := &entity.FMEARecord{
		ID: "r2", EquipmentID: "eq-1",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	if err := env.DB.Create(unscored).Error; err != nil {
		t.Fatalf("Failed to seed record: %v", err)
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/equipment/eq-1/summary", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["total_records"] != float64(2) {
		t.Errorf("Expected 2 total records, got %v", data["total_records"])
	}
	if data["scored_records"] != float64(1) {
		t.Errorf("Expected 1 scored record, got %v", data["scored_records"])
	}
	if data["average_rpn"] != float64(125) {
		t.Errorf("Expected average_rpn 125, got %v", data["average_rpn"])
	}

	records := data["records"].([]interface{})
	if len(records) != 2 {
		t.Fatalf("Expected 2 record scores, got %d", len(records))
	}
	for _, raw := range records {
		rec := raw.(map[string]interface{})
		switch rec["record_id"] {
		case "r1":
			if rec["rpn"] != float64(125) || rec["risk_level"] != entity.RiskLevelHigh {
				t.Errorf("Unexpected r1 score: %+v", rec)
			}
		case "r2":
			if rec["rpn"] != nil || rec["risk_level"] != "unscored" {
				t.Errorf("Unexpected r2 score: %+v", rec)
			}
		}
	}
}

func TestEquipmentCreateRequiresAdmin(t *testing.T) {
	env := setupEquipmentTest(t)

	body := map[string]interface{}{"tag": "P-102", "name": "Backup Pump"}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/equipment", body, testutil.UserToken("u1"))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/equipment", body, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEquipmentDuplicateTagConflict(t *testing.T) {
	env := setupEquipmentTest(t)
	token := testutil.AdminToken("admin-1")

	body := map[string]interface{}{"tag": "P-101", "name": "Feed Pump"}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/equipment", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/equipment", body, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate tag, got %d", w.Code)
	}
}

func TestEquipmentDeleteNotFound(t *testing.T) {
	env := setupEquipmentTest(t)

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/equipment/no-such-id", nil, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
