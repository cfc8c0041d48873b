package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

// EquipmentHandler 设备处理器
type EquipmentHandler struct {
	svc *service.EquipmentService
}

// NewEquipmentHandler 创建设备处理器
func NewEquipmentHandler(svc *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

// List 设备列表。with_score=true 时附带动态平均RPN
func (h *EquipmentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"equipment_class_id": c.Query("equipment_class_id"),
		"work_center_id":     c.Query("work_center_id"),
		"team_id":            c.Query("team_id"),
		"status":             c.Query("status"),
	}
	withScore := c.Query("with_score") == "true"

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters, withScore)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// Get 设备详情
func (h *EquipmentHandler) Get(c *gin.Context) {
	eq, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, eq)
}

// Summary 设备风险汇总：平均RPN + 逐条评分
func (h *EquipmentHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, summary)
}

// Create 创建设备
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req service.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	eq, err := h.svc.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, eq)
}

// Update 更新设备
func (h *EquipmentHandler) Update(c *gin.Context) {
	var req service.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	eq, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, eq)
}

// Delete 删除设备
func (h *EquipmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// ListComponents 某设备的部件列表
func (h *EquipmentHandler) ListComponents(c *gin.Context) {
	items, err := h.svc.ListComponents(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CreateComponent 在设备下创建部件
func (h *EquipmentHandler) CreateComponent(c *gin.Context) {
	var req service.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	comp, err := h.svc.CreateComponent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, comp)
}

// UpdateComponent 更新部件
func (h *EquipmentHandler) UpdateComponent(c *gin.Context) {
	var req service.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	comp, err := h.svc.UpdateComponent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, comp)
}

// DeleteComponent 删除部件
func (h *EquipmentHandler) DeleteComponent(c *gin.Context) {
	if err := h.svc.DeleteComponent(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
