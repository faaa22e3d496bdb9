package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// LeaveHandler 请假 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
	userSvc  service.UserService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService, userSvc service.UserService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc, userSvc: userSvc}
}

// Submit 提交请假申请
// POST /api/v1/leave/submit
func (h *LeaveHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫請假日期")
		return
	}

	leave, err := h.leaveSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, leave)
}

// MyLeaves 查询本人请假记录
// GET /api/v1/leave/my
func (h *LeaveHandler) MyLeaves(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	leaves, err := h.leaveSvc.MyLeaves(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, leaves)
}

// Review 审批请假（管理员）
// POST /api/v1/leave/review
func (h *LeaveHandler) Review(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫所有欄位")
		return
	}

	if err := h.leaveSvc.Review(c.Request.Context(), actor, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "審批完成")
}

// ListPending 待审批请假列表（管理员）
// GET /api/v1/leave/pending
func (h *LeaveHandler) ListPending(c *gin.Context) {
	leaves, err := h.leaveSvc.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, leaves)
}
