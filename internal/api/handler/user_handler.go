package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// UserHandler 用户与成员管理 HTTP 处理器
type UserHandler struct {
	userSvc   service.UserService
	battleSvc service.BattleService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, battleSvc service.BattleService) *UserHandler {
	return &UserHandler{userSvc: userSvc, battleSvc: battleSvc}
}

// Setup 首次设定游戏 ID 与职业
// POST /api/v1/user/setup
func (h *UserHandler) Setup(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫所有欄位")
		return
	}

	user, err := h.userSvc.Setup(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, user)
}

// ChangeJob 更换职业
// POST /api/v1/user/change-job
func (h *UserHandler) ChangeJob(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "無效的職業")
		return
	}

	if err := h.userSvc.ChangeJob(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "職業已更換")
}

// ChangeGameID 更换游戏 ID
// POST /api/v1/user/change-id
func (h *UserHandler) ChangeGameID(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeGameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "遊戲 ID 格式錯誤")
		return
	}

	if err := h.userSvc.ChangeGameID(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "遊戲 ID 已更換")
}

// ── 成员管理（管理员） ──

// ListMembers 成员列表
// GET /api/v1/members/list
func (h *UserHandler) ListMembers(c *gin.Context) {
	var req dto.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}

	members, err := h.userSvc.ListMembers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, members)
}

// ToggleLeave 切换成员请假状态
// POST /api/v1/members/toggle-leave
func (h *UserHandler) ToggleLeave(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.ToggleLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫所有欄位")
		return
	}

	if err := h.userSvc.ToggleLeave(c.Request.Context(), actor, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "狀態已更新")
}

// ToggleAdmin 切换成员管理员权限
// POST /api/v1/members/toggle-admin
func (h *UserHandler) ToggleAdmin(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.ToggleAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫所有欄位")
		return
	}

	if err := h.userSvc.ToggleAdmin(c.Request.Context(), actor, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "權限已更新")
}

// DeleteMember 删除成员
// POST /api/v1/members/delete
func (h *UserHandler) DeleteMember(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.DeleteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫所有欄位")
		return
	}

	if err := h.userSvc.DeleteMember(c.Request.Context(), userID, actor, &req); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "成員已刪除")
}

// Stats 管理面板统计
// GET /api/v1/stats
func (h *UserHandler) Stats(c *gin.Context) {
	// 统计针对当前开放场次；无开放场次时报名数为 0
	battleID := ""
	battle, err := h.battleSvc.Current(c.Request.Context())
	if err == nil {
		battleID = battle.BattleID
	} else if !errors.Is(err, service.ErrNoOpenBattle) {
		respondError(c, err)
		return
	}

	stats, err := h.userSvc.Stats(c.Request.Context(), battleID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, stats)
}
