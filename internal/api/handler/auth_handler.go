package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

// Login 获取 Discord 授权跳转地址
// GET /auth/discord
func (h *AuthHandler) Login(c *gin.Context) {
	url, err := h.authSvc.LoginURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, dto.LoginURLResponse{URL: url})
}

// Callback Discord 授权回调
// GET /auth/discord/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "缺少授權參數")
		return
	}

	tokens, err := h.authSvc.Callback(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Refresh 刷新 Token 对
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "缺少 refresh token")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout 登出（Token 加入黑名单）
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	response.OKMessage(c, "已登出")
}

// Me 当前用户信息
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, user)
}
