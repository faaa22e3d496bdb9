package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// FormationHandler 阵型 HTTP 处理器
type FormationHandler struct {
	formationSvc service.FormationService
	battleSvc    service.BattleService
	userSvc      service.UserService
}

// NewFormationHandler 创建 FormationHandler
func NewFormationHandler(formationSvc service.FormationService, battleSvc service.BattleService, userSvc service.UserService) *FormationHandler {
	return &FormationHandler{formationSvc: formationSvc, battleSvc: battleSvc, userSvc: userSvc}
}

// Save 保存阵型草稿（管理员，全量覆盖）
// POST /api/v1/formation/save
func (h *FormationHandler) Save(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.SaveFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "陣型格式錯誤")
		return
	}
	battle, err := h.battleSvc.Resolve(c.Request.Context(), req.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.formationSvc.Save(c.Request.Context(), battle.BattleID, req.Formation, actor); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "陣型已保存")
}

// Publish 发布阵型（管理员）
// POST /api/v1/formation/publish
func (h *FormationHandler) Publish(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}

	battle, err := h.battleSvc.Publish(c.Request.Context(), req.BattleID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.NewBattleResponse(battle))
}

// Confirm 确认阵型并记录出勤（管理员）
// POST /api/v1/formation/confirm
func (h *FormationHandler) Confirm(c *gin.Context) {
	actor, ok := mustGetActorGameID(c, h.userSvc)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}

	battle, err := h.battleSvc.Confirm(c.Request.Context(), req.BattleID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.NewBattleResponse(battle))
}

// Get 查询阵型：管理员看完整阵型与候选名单，成员只看本人格子
// GET /api/v1/formation/get
func (h *FormationHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}
	battle, err := h.battleSvc.Resolve(c.Request.Context(), req.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if IsAdmin(c) {
		view, err := h.formationSvc.ReadAdmin(c.Request.Context(), battle)
		if err != nil {
			respondError(c, err)
			return
		}
		response.OK(c, view)
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	slot, err := h.formationSvc.ReadMember(c.Request.Context(), battle, user.GameID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, slot)
}
