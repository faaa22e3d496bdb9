package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// BattleHandler 帮战生命周期 HTTP 处理器
type BattleHandler struct {
	battleSvc service.BattleService
	userSvc   service.UserService
}

// NewBattleHandler 创建 BattleHandler
func NewBattleHandler(battleSvc service.BattleService, userSvc service.UserService) *BattleHandler {
	return &BattleHandler{battleSvc: battleSvc, userSvc: userSvc}
}

// Open 开启新帮战（管理员）
// POST /api/v1/battle/open
func (h *BattleHandler) Open(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.OpenBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫日期與截止時間")
		return
	}

	battle, err := h.battleSvc.Open(c.Request.Context(), &req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.NewBattleResponse(battle))
}

// Close 截止报名（管理员）
// POST /api/v1/battle/close
func (h *BattleHandler) Close(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}

	battle, err := h.battleSvc.Close(c.Request.Context(), req.BattleID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.NewBattleResponse(battle))
}

// Current 查询当前开放场次
// GET /api/v1/battle/current
func (h *BattleHandler) Current(c *gin.Context) {
	battle, err := h.battleSvc.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.NewBattleResponse(battle))
}

// List 历史场次列表
// GET /api/v1/battle/list
func (h *BattleHandler) List(c *gin.Context) {
	battles, err := h.battleSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.BattleResponse, 0, len(battles))
	for i := range battles {
		out = append(out, *dto.NewBattleResponse(&battles[i]))
	}
	response.OK(c, out)
}
