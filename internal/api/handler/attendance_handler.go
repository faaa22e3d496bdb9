package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// AttendanceHandler 出勤 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Summary 查询本人出勤汇总
// GET /api/v1/attendance/summary
func (h *AttendanceHandler) Summary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	summary, err := h.attendanceSvc.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, summary)
}
