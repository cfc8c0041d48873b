package handler

import (
	"net/http"
	"testing"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/fmea/testutil"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

func setupUserTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewUserHandler(service.NewUserService(repos.User, repos.Team))

	// 自助注册无需认证
	router.POST("/api/v1/users", h.Create)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/users",
		middleware.Authorize(authz.ResourceUsers, authz.ActionRead), h.List)
	api.GET("/users/:id", h.Get)
	api.PATCH("/users/:id", h.Update)
	api.DELETE("/users/:id",
		middleware.Authorize(authz.ResourceUsers, authz.ActionDelete), h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestUserSelfUpdateStripsProtectedFields(t *testing.T) {
	env := setupUserTest(t)
	testutil.SeedTestUser(t, env.DB, "u1", "Plain User", "u1@test.com", entity.RoleUser)

	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/users/u1",
		map[string]interface{}{
			"name":    "Renamed",
			"role":    entity.RoleAdmin,
			"team_id": "team-x",
		}, testutil.UserToken("u1"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored entity.User
	if err := env.DB.Where("id = ?", "u1").First(&stored).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if stored.Name != "Renamed" {
		t.Errorf("Name update must apply, got %s", stored.Name)
	}
	// role/team 必须被静默丢弃而非报错
	if stored.Role != entity.RoleUser {
		t.Errorf("Role must stay user, got %s", stored.Role)
	}
	if stored.TeamID != "" {
		t.Errorf("Team must stay empty, got %s", stored.TeamID)
	}
}

func TestUserUpdateOtherForbidden(t *testing.T) {
	env := setupUserTest(t)
	testutil.SeedTestUser(t, env.DB, "u1", "User One", "u1@test.com", entity.RoleUser)
	testutil.SeedTestUser(t, env.DB, "u2", "User Two", "u2@test.com", entity.RoleUser)

	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/users/u2",
		map[string]interface{}{"name": "Hijacked"}, testutil.UserToken("u1"))

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}
}

func TestAdminAssignsRoleAndTeam(t *testing.T) {
	env := setupUserTest(t)
	testutil.SeedTestUser(t, env.DB, "u1", "User One", "u1@test.com", entity.RoleUser)

	w := testutil.DoRequest(env.Router, "PATCH", "/api/v1/users/u1",
		map[string]interface{}{
			"role":    entity.RoleAdmin,
			"team_id": "team-a",
		}, testutil.AdminToken("admin-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored entity.User
	env.DB.Where("id = ?", "u1").First(&stored)
	if stored.Role != entity.RoleAdmin {
		t.Errorf("Admin must be able to assign role, got %s", stored.Role)
	}
	if stored.TeamID != "team-a" {
		t.Errorf("Admin must be able to assign team, got %s", stored.TeamID)
	}
}

func TestUserListRequiresAdmin(t *testing.T) {
	env := setupUserTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/users", nil, testutil.UserToken("u1"))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/users", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/users", nil, testutil.AdminToken("admin-1"))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", w.Code)
	}
}

func TestSelfRegistrationDefaultsToUserRole(t *testing.T) {
	env := setupUserTest(t)

	// 匿名注册携带role=admin：受保护字段落为默认值
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/users",
		map[string]interface{}{
			"email":    "new@test.com",
			"password": "password123",
			"name":     "Newcomer",
			"role":     entity.RoleAdmin,
			"team_id":  "team-x",
		}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var stored entity.User
	env.DB.Where("email = ?", "new@test.com").First(&stored)
	if stored.Role != entity.RoleUser {
		t.Errorf("Self-registered user must get role user, got %s", stored.Role)
	}
	if stored.TeamID != "" {
		t.Errorf("Self-registered user must get no team, got %s", stored.TeamID)
	}
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Error("Password must be stored hashed")
	}
}

func TestDuplicateEmailConflict(t *testing.T) {
	env := setupUserTest(t)

	body := map[string]interface{}{
		"email":    "dup@test.com",
		"password": "password123",
		"name":     "First",
	}
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/users", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/users", body, "")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", w.Code)
	}
}
