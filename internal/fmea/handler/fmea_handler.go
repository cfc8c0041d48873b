package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

// FMEAHandler FMEA记录处理器
type FMEAHandler struct {
	svc       *service.FMEAService
	exportSvc *service.ExportService
}

// NewFMEAHandler 创建FMEA记录处理器
func NewFMEAHandler(svc *service.FMEAService, exportSvc *service.ExportService) *FMEAHandler {
	return &FMEAHandler{svc: svc, exportSvc: exportSvc}
}

// List FMEA记录列表
func (h *FMEAHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"equipment_id": c.Query("equipment_id"),
		"component_id": c.Query("component_id"),
		"category":     c.Query("category"),
		"risk_level":   c.Query("risk_level"),
		"team_id":      c.Query("team_id"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// Get FMEA记录详情
func (h *FMEAHandler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, record)
}

// Create 创建FMEA记录（已认证即可）
func (h *FMEAHandler) Create(c *gin.Context) {
	var req service.CreateFMEARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, record)
}

// Update 更新FMEA记录：创建者本人或管理员
func (h *FMEAHandler) Update(c *gin.Context) {
	id := c.Param("id")

	record, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RepoError(c, err)
		return
	}

	decision := authz.Authorize(middleware.GetPrincipal(c), authz.ResourceFMEA, authz.ActionUpdate, record.CreatedBy)
	if !decision.Allowed {
		Forbidden(c, "Permission denied")
		return
	}

	var req service.UpdateFMEARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, updated)
}

// Delete 删除FMEA记录：创建者本人或管理员
func (h *FMEAHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	record, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RepoError(c, err)
		return
	}

	decision := authz.Authorize(middleware.GetPrincipal(c), authz.ResourceFMEA, authz.ActionDelete, record.CreatedBy)
	if !decision.Allowed {
		Forbidden(c, "Permission denied")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// Recompute 重算并保存单条记录的派生字段（仅管理员，路由级门禁把关）
func (h *FMEAHandler) Recompute(c *gin.Context) {
	record, err := h.svc.Recompute(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, record)
}

// RecomputeAll 全量重算派生字段（仅管理员，路由级门禁把关）
func (h *FMEAHandler) RecomputeAll(c *gin.Context) {
	changed, err := h.svc.RecomputeAll(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"updated": changed})
}

// Export 导出FMEA记录为xlsx
func (h *FMEAHandler) Export(c *gin.Context) {
	filters := map[string]string{
		"equipment_id": c.Query("equipment_id"),
		"category":     c.Query("category"),
		"risk_level":   c.Query("risk_level"),
		"team_id":      c.Query("team_id"),
	}

	f, filename, err := h.exportSvc.ExportFMEA(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
