package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// ChangeLogHandler 变更日志 HTTP 处理器
type ChangeLogHandler struct {
	changeLogSvc service.ChangeLogService
}

// NewChangeLogHandler 创建 ChangeLogHandler
func NewChangeLogHandler(changeLogSvc service.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogSvc: changeLogSvc}
}

// List 变更日志分页查询（管理员）
// GET /api/v1/change-logs
func (h *ChangeLogHandler) List(c *gin.Context) {
	var req dto.ChangeLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}

	logs, total, err := h.changeLogSvc.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.PageData{
		List:     logs,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	})
}
