package handler

import (
	"net/http"
	"testing"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/fmea/testutil"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

func setupReferenceTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewReferenceHandler(service.NewReferenceService(repos.Reference))

	// 列表读公开，写操作走认证+管理员门禁
	router.GET("/api/v1/equipment-classes", h.ListEquipmentClasses)

	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/equipment-classes",
		middleware.Authorize(authz.ResourceEquipmentClasses, authz.ActionCreate), h.CreateEquipmentClass)
	api.PATCH("/equipment-classes/:id",
		middleware.Authorize(authz.ResourceEquipmentClasses, authz.ActionUpdate), h.UpdateEquipmentClass)
	api.DELETE("/equipment-classes/:id",
		middleware.Authorize(authz.ResourceEquipmentClasses, authz.ActionDelete), h.DeleteEquipmentClass)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestEquipmentClassDuplicateNameConflict(t *testing.T) {
	env := setupReferenceTest(t)
	token := testutil.AdminToken("admin-1")

	body := map[string]interface{}{"name": "Pumps", "description": "Rotating equipment"}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/equipment-classes", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// 唯一索引兜底并发重名：第二次创建必须409
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/equipment-classes", body, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate name, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"] != float64(40900) {
		t.Errorf("Expected business code 40900, got %v", resp["code"])
	}
}

func TestReferenceMutationsRequireAdmin(t *testing.T) {
	env := setupReferenceTest(t)
	userToken := testutil.UserToken("u1")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/equipment-classes",
		map[string]interface{}{"name": "Valves"}, userToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user create, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/equipment-classes/any-id", nil, userToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user delete, got %d", w.Code)
	}

	// 列表读公开，无需token
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/equipment-classes", nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for public read, got %d", w.Code)
	}

	// 未认证的写操作一律401
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/equipment-classes",
		map[string]interface{}{"name": "Valves"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unauthenticated create, got %d", w.Code)
	}
}

func TestEquipmentClassUpdateNotFound(t *testing.T) {
	env := setupReferenceTest(t)

	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/equipment-classes/no-such-id",
		map[string]interface{}{"name": "Renamed"}, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
