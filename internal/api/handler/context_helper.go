package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/jwt"
	"github.com/cheivoy/battle-system/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "請先登入")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "請先登入")
		return "", false
	}
	return s, true
}

// MustGetClaims 从 Gin 上下文中安全提取完整 JWT Claims。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, "請先登入")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, "請先登入")
		return nil, false
	}
	return claims, true
}

// IsAdmin 当前请求是否来自管理员
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	admin, ok := v.(bool)
	return ok && admin
}

// mustGetActorGameID 解析操作者的游戏 ID（变更日志 actor 字段用）。
// 未完成初始设定时写入 403 响应并返回 false。
func mustGetActorGameID(c *gin.Context, userSvc service.UserService) (string, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return "", false
	}
	user, err := userSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	if user.GameID == "" {
		response.Forbidden(c, "請先完成遊戲 ID 設定")
		return "", false
	}
	return user.GameID, true
}
