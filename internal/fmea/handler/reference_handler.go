package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
)

// ReferenceHandler 参考数据处理器：六类目录数据的增删改查
type ReferenceHandler struct {
	svc *service.ReferenceService
}

// NewReferenceHandler 创建参考数据处理器
func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

// === 设备类别 ===

func (h *ReferenceHandler) ListEquipmentClasses(c *gin.Context) {
	items, err := h.svc.ListEquipmentClasses(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateEquipmentClass(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateEquipmentClass(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateEquipmentClass(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateEquipmentClass(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteEquipmentClass(c *gin.Context) {
	if err := h.svc.DeleteEquipmentClass(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// === 制造商 ===

func (h *ReferenceHandler) ListManufacturers(c *gin.Context) {
	items, err := h.svc.ListManufacturers(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateManufacturer(c *gin.Context) {
	var req service.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateManufacturer(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateManufacturer(c *gin.Context) {
	var req service.UpdateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateManufacturer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteManufacturer(c *gin.Context) {
	if err := h.svc.DeleteManufacturer(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// === 工作中心 ===

func (h *ReferenceHandler) ListWorkCenters(c *gin.Context) {
	items, err := h.svc.ListWorkCenters(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateWorkCenter(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateWorkCenter(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateWorkCenter(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateWorkCenter(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteWorkCenter(c *gin.Context) {
	if err := h.svc.DeleteWorkCenter(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// === 失效模式 ===

func (h *ReferenceHandler) ListFailureModes(c *gin.Context) {
	items, err := h.svc.ListFailureModes(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateFailureMode(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateFailureMode(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateFailureMode(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateFailureMode(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteFailureMode(c *gin.Context) {
	if err := h.svc.DeleteFailureMode(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// === 失效原因 ===

func (h *ReferenceHandler) ListFailureCauses(c *gin.Context) {
	items, err := h.svc.ListFailureCauses(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateFailureCause(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateFailureCause(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateFailureCause(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateFailureCause(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteFailureCause(c *gin.Context) {
	if err := h.svc.DeleteFailureCause(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}

// === 失效机理 ===

func (h *ReferenceHandler) ListFailureMechanisms(c *gin.Context) {
	items, err := h.svc.ListFailureMechanisms(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ReferenceHandler) CreateFailureMechanism(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.CreateFailureMechanism(c.Request.Context(), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Created(c, item)
}

func (h *ReferenceHandler) UpdateFailureMechanism(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	item, err := h.svc.UpdateFailureMechanism(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RepoError(c, err)
		return
	}
	Success(c, item)
}

func (h *ReferenceHandler) DeleteFailureMechanism(c *gin.Context) {
	if err := h.svc.DeleteFailureMechanism(c.Request.Context(), c.Param("id")); err != nil {
		RepoError(c, err)
		return
	}
	Success(c, nil)
}
