package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
)

// TeamHandler 团队处理器
type TeamHandler struct {
	svc *service.TeamService
}

// NewTeamHandler 创建团队处理器
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// List 团队列表
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": teams})
}

// Get 团队详情
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, team)
}

// Create 创建团队
func (h *TeamHandler) Create(c *gin.Context) {
	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, team)
}

// Update 更新团队
func (h *TeamHandler) Update(c *gin.Context) {
	var req service.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	team, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, team)
}

// Delete 删除团队
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
