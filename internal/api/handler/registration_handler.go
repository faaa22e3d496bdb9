package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// RegistrationHandler 报名 HTTP 处理器
type RegistrationHandler struct {
	regSvc    service.RegistrationService
	battleSvc service.BattleService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService, battleSvc service.BattleService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc, battleSvc: battleSvc}
}

// Register 本人报名
// POST /api/v1/registration/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}
	battle, err := h.battleSvc.Resolve(c.Request.Context(), req.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}

	reg, err := h.regSvc.Register(c.Request.Context(), userID, battle)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.RegistrationResponse{
		GameID:   reg.GameID,
		Job:      reg.Job,
		IsProxy:  reg.IsProxy,
		IsBackup: reg.IsBackup,
	})
}

// Cancel 取消报名
// POST /api/v1/registration/cancel
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BattleIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "參數校驗失敗")
		return
	}
	battle, err := h.battleSvc.Resolve(c.Request.Context(), req.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.regSvc.Cancel(c.Request.Context(), userID, battle); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "已取消報名")
}

// Proxy 代报名
// POST /api/v1/registration/proxy
func (h *RegistrationHandler) Proxy(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ProxyRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "請填寫代報對象與理由")
		return
	}
	battle, err := h.battleSvc.Resolve(c.Request.Context(), req.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}

	reg, err := h.regSvc.ProxyRegister(c.Request.Context(), userID, battle, req.TargetID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.RegistrationResponse{
		GameID:   reg.GameID,
		Job:      reg.Job,
		IsProxy:  reg.IsProxy,
		ProxyBy:  reg.ProxyBy,
		IsBackup: reg.IsBackup,
	})
}

// Status 查询本人报名状态
// GET /api/v1/registration/status
func (h *RegistrationHandler) Status(c *gin.Context) {
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

	status, err := h.regSvc.Status(c.Request.Context(), userID, battle)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, status)
}

// List 报名名单（管理员）
// GET /api/v1/registration/list
func (h *RegistrationHandler) List(c *gin.Context) {
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

	regs, err := h.regSvc.List(c.Request.Context(), battle.BattleID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, regs)
}
