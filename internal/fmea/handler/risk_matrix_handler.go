package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
)

// RiskMatrixHandler 风险矩阵处理器
type RiskMatrixHandler struct {
	svc *service.RiskMatrixService
}

// NewRiskMatrixHandler 创建风险矩阵处理器
func NewRiskMatrixHandler(svc *service.RiskMatrixService) *RiskMatrixHandler {
	return &RiskMatrixHandler{svc: svc}
}

// List 全部矩阵单元
func (h *RiskMatrixHandler) List(c *gin.Context) {
	cells, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": cells})
}

// Validate 网格完整性检查
func (h *RiskMatrixHandler) Validate(c *gin.Context) {
	status, err := h.svc.Validate(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, status)
}

// Create 创建矩阵单元
func (h *RiskMatrixHandler) Create(c *gin.Context) {
	var req service.CreateMatrixCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cell, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCoordOutOfRange) {
			BadRequest(c, err.Error())
			return
		}
		RepoError(c, err)
		return
	}
	Created(c, cell)
}

// Update 更新矩阵单元
func (h *RiskMatrixHandler) Update(c *gin.Context) {
	var req service.UpdateMatrixCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cell, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, cell)
}

// Delete 删除矩阵单元
func (h *RiskMatrixHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
