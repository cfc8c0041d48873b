package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/numancr7/fmea-sub001/internal/fmea/service"
)

// DashboardHandler 看板处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary 看板汇总
func (h *DashboardHandler) Summary(c *gin.Context) {
	topN := 0
	if v := c.Query("top_n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			topN = n
		}
	}

	summary, err := h.svc.Summary(c.Request.Context(), topN)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, summary)
}
