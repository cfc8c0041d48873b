package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/fmea/testutil"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

func setupFMEATest(t *testing.T) (*testutil.TestEnv, *service.RiskMatrixService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	matrixSvc := service.NewRiskMatrixService(repos.RiskMatrix)
	fmeaSvc := service.NewFMEAService(repos.FMEA, repos.Equipment, matrixSvc)
	exportSvc := service.NewExportService(repos.FMEA, matrixSvc)
	h := NewFMEAHandler(fmeaSvc, exportSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/fmea", h.List)
	api.GET("/fmea/:id", h.Get)
	api.POST("/fmea", h.Create)
	api.PATCH("/fmea/:id", h.Update)
	api.DELETE("/fmea/:id", h.Delete)
	api.POST("/fmea/:id/recompute",
		middleware.Authorize(authz.ResourceFMEA, authz.ActionUpdate), h.Recompute)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, matrixSvc
}

func TestFMEACreateComputesScore(t *testing.T) {
	env, _ := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{
			"equipment_id": "eq-1",
			"category":     "mechanical",
			"severity":     5,
			"occurrence":   5,
			"detection":    5,
			"rpn":          1, // 客户端提交的派生字段必须被忽略
			"risk_level":   "low",
		}, testutil.UserToken("u1"))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["rpn"] != float64(125) {
		t.Errorf("Expected server-computed RPN 125, got %v", data["rpn"])
	}
	if data["risk_level"] != entity.RiskLevelHigh {
		t.Errorf("Expected high, got %v", data["risk_level"])
	}
	if data["created_by"] != "u1" {
		t.Errorf("Expected created_by from token, got %v", data["created_by"])
	}
}

func TestFMEACreateWithoutRatingsIsUnscored(t *testing.T) {
	env, _ := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{"equipment_id": "eq-1"}, testutil.UserToken("u1"))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["rpn"] != nil {
		t.Errorf("Unscorable record must have null rpn, got %v", data["rpn"])
	}
	if data["risk_level"] != "unscored" {
		t.Errorf("Expected unscored, got %v", data["risk_level"])
	}
}

func TestFMEACreateMatrixMode(t *testing.T) {
	env, matrixSvc := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")
	if err := matrixSvc.SeedDefault(context.Background()); err != nil {
		t.Fatalf("Failed to seed matrix: %v", err)
	}

	// severity+probability 且无 detection：走矩阵模式
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{
			"equipment_id": "eq-1",
			"severity":     5,
			"probability":  5,
		}, testutil.UserToken("u1"))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["risk_level"] != entity.RiskLevelCritical {
		t.Errorf("Expected critical from matrix, got %v", data["risk_level"])
	}
}

func TestFMEAUpdateRecomputesScore(t *testing.T) {
	env, _ := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{
			"equipment_id": "eq-1",
			"severity":     2,
			"occurrence":   2,
			"detection":    2,
		}, testutil.UserToken("u1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/fmea/"+id,
		map[string]interface{}{"severity": 10, "occurrence": 5, "detection": 5}, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["rpn"] != float64(250) {
		t.Errorf("Expected recomputed RPN 250, got %v", data["rpn"])
	}
	if data["risk_level"] != entity.RiskLevelCritical {
		t.Errorf("Expected critical, got %v", data["risk_level"])
	}
}

func TestFMEAUpdateByNonOwnerForbidden(t *testing.T) {
	env, _ := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{"equipment_id": "eq-1"}, testutil.UserToken("u1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// 他人更新被拒
	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/fmea/"+id,
		map[string]interface{}{"effect": "tampered"}, testutil.UserToken("u2"))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-owner, got %d", w.Code)
	}

	// 管理员可更新任何记录
	w = testutil.DoRequest(env.Router, "PATCH", "/api/v1/fmea/"+id,
		map[string]interface{}{"effect": "reviewed"}, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}

	// 创建者本人可删除
	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/fmea/"+id, nil, testutil.UserToken("u1"))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for owner delete, got %d", w.Code)
	}
}

func TestFMEARecomputePersistsAfterMatrixChange(t *testing.T) {
	env, matrixSvc := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	// 矩阵未配置时，纯矩阵坐标的记录无法评分
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{
			"equipment_id": "eq-1",
			"severity":     5,
			"probability":  5,
		}, testutil.UserToken("u1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["risk_level"] != "unscored" {
		t.Fatalf("Expected unscored before matrix seed, got %v", data["risk_level"])
	}

	if err := matrixSvc.SeedDefault(context.Background()); err != nil {
		t.Fatalf("Failed to seed matrix: %v", err)
	}

	// 普通用户不得触发重算落库
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/fmea/"+id+"/recompute", nil, testutil.UserToken("u2"))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/fmea/"+id+"/recompute", nil, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["risk_level"] != entity.RiskLevelCritical {
		t.Errorf("Expected critical after recompute, got %v", data["risk_level"])
	}

	var stored entity.FMEARecord
	if err := env.DB.Where("id = ?", id).First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload record: %v", err)
	}
	if stored.RiskLevel != entity.RiskLevelCritical {
		t.Errorf("Recompute must persist, stored level %s", stored.RiskLevel)
	}
}

func TestFMEACreateUnknownEquipment(t *testing.T) {
	env, _ := setupFMEATest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{"equipment_id": "no-such-eq"}, testutil.UserToken("u1"))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestFMEACreateRejectsOutOfRangeRating(t *testing.T) {
	env, _ := setupFMEATest(t)
	testutil.SeedTestEquipment(t, env.DB, "eq-1", "P-101", "Feed Pump")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/fmea",
		map[string]interface{}{
			"equipment_id": "eq-1",
			"severity":     11,
			"occurrence":   5,
			"detection":    5,
		}, testutil.UserToken("u1"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for severity 11, got %d", w.Code)
	}
}
