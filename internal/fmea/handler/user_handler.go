package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

// UserHandler 用户处理器
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List 用户列表（仅管理员，路由级门禁把关）
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"role":    c.Query("role"),
		"team_id": c.Query("team_id"),
		"status":  c.Query("status"),
	}

	users, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      users,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// Get 用户详情：本人或管理员
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")

	decision := authz.Authorize(middleware.GetPrincipal(c), authz.ResourceUsers, authz.ActionRead, id)
	if !decision.Allowed {
		Forbidden(c, "Permission denied")
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, user)
}

// Create 创建用户。匿名自助注册和管理员建号共用此入口，
// 受保护字段的降级在服务层处理
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, user)
}

// Update 更新用户：本人或管理员。非管理员提交的role/team_id被静默丢弃
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	p := middleware.GetPrincipal(c)

	decision := authz.Authorize(p, authz.ResourceUsers, authz.ActionUpdate, id)
	if !decision.Allowed {
		if decision.Reason == authz.ReasonUnauthenticated {
			Unauthorized(c, "Authorization is required")
		} else {
			Forbidden(c, "Permission denied")
		}
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, user)
}

// Delete 删除用户（仅管理员，路由级门禁把关）
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
