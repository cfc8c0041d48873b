package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
	"github.com/numancr7/fmea-sub001/internal/middleware"
)

// SparePartHandler 备件处理器
type SparePartHandler struct {
	svc *service.SparePartService
}

// NewSparePartHandler 创建备件处理器
func NewSparePartHandler(svc *service.SparePartService) *SparePartHandler {
	return &SparePartHandler{svc: svc}
}

// List 备件列表。low_stock=true 时仅返回库存不足的备件
func (h *SparePartHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"equipment_id": c.Query("equipment_id"),
		"status":       c.Query("status"),
	}
	lowStockOnly := c.Query("low_stock") == "true"

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters, lowStockOnly)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: &Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// Get 备件详情
func (h *SparePartHandler) Get(c *gin.Context) {
	part, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, part)
}

// Create 创建备件
func (h *SparePartHandler) Create(c *gin.Context) {
	var req service.CreateSparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	part, err := h.svc.Create(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, part)
}

// Update 更新备件
func (h *SparePartHandler) Update(c *gin.Context) {
	var req service.UpdateSparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	part, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, part)
}

// Delete 删除备件
func (h *SparePartHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
