package authz

import (
	"testing"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

func admin() *Principal {
	return &Principal{ID: "admin-001", Role: entity.RoleAdmin}
}

func user(id string) *Principal {
	return &Principal{ID: id, Role: entity.RoleUser}
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	d := Authorize(nil, ResourceEquipment, ActionRead, "")
	if d.Allowed {
		t.Fatal("Nil principal must be denied")
	}
	if d.Reason != ReasonUnauthenticated {
		t.Errorf("Expected unauthenticated, got %s", d.Reason)
	}

	d = Authorize(&Principal{}, ResourceEquipment, ActionRead, "")
	if d.Allowed || d.Reason != ReasonUnauthenticated {
		t.Error("Principal without ID must be unauthenticated")
	}
}

func TestAuthorizeUnknownResourceFailsClosed(t *testing.T) {
	d := Authorize(admin(), "no-such-resource", ActionRead, "")
	if d.Allowed {
		t.Error("Unknown resource must be denied even for admin")
	}
	if d.Reason != ReasonForbidden {
		t.Errorf("Expected forbidden, got %s", d.Reason)
	}
}

func TestAuthorizeAdminMutations(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		if d := Authorize(admin(), ResourceEquipment, action, ""); !d.Allowed {
			t.Errorf("Admin must be allowed %s on equipment", action)
		}
		if d := Authorize(user("u1"), ResourceEquipment, action, ""); d.Allowed {
			t.Errorf("Plain user must be denied %s on equipment", action)
		}
	}
}

func TestAuthorizeReadOpenToAuthenticated(t *testing.T) {
	// 策略未登记read的资源：已认证即可读
	if d := Authorize(user("u1"), ResourceEquipment, ActionRead, ""); !d.Allowed {
		t.Error("Authenticated user must be allowed to read equipment")
	}
	if d := Authorize(user("u1"), ResourceDashboard, ActionRead, ""); !d.Allowed {
		t.Error("Authenticated user must be allowed to read dashboard")
	}
}

func TestAuthorizeSelfOrAdmin(t *testing.T) {
	// 本人更新自己的资料
	if d := Authorize(user("u1"), ResourceUsers, ActionUpdate, "u1"); !d.Allowed {
		t.Error("User must be allowed to update own profile")
	}
	// 更新他人资料被拒
	if d := Authorize(user("u1"), ResourceUsers, ActionUpdate, "u2"); d.Allowed {
		t.Error("User must not update another user's profile")
	}
	// 管理员更新任何人
	if d := Authorize(admin(), ResourceUsers, ActionUpdate, "u2"); !d.Allowed {
		t.Error("Admin must be allowed to update any profile")
	}
	// AllowSelf 不外溢到未标记的资源
	if d := Authorize(user("u1"), ResourceEquipment, ActionUpdate, "u1"); d.Allowed {
		t.Error("Self rule must not apply to equipment")
	}
}

func TestAuthorizeFMEAOwner(t *testing.T) {
	if d := Authorize(user("u1"), ResourceFMEA, ActionUpdate, "u1"); !d.Allowed {
		t.Error("Record creator must be allowed to update own record")
	}
	if d := Authorize(user("u1"), ResourceFMEA, ActionDelete, "u2"); d.Allowed {
		t.Error("Non-creator must not delete another user's record")
	}
	// create 未登记角色要求：已认证即可
	if d := Authorize(user("u1"), ResourceFMEA, ActionCreate, ""); !d.Allowed {
		t.Error("Authenticated user must be allowed to create records")
	}
}

func TestAuthorizeEmptyOwnerNeverMatchesSelf(t *testing.T) {
	if d := Authorize(user("u1"), ResourceUsers, ActionUpdate, ""); d.Allowed {
		t.Error("Empty owner ID must not satisfy the self rule")
	}
}

func TestCanAssignRole(t *testing.T) {
	if !CanAssignRole(admin()) {
		t.Error("Admin must be able to assign roles")
	}
	if CanAssignRole(user("u1")) {
		t.Error("Plain user must not assign roles")
	}
	if CanAssignRole(nil) {
		t.Error("Nil principal must not assign roles")
	}
}
