package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cheivoy/battle-system/internal/service"
	"github.com/cheivoy/battle-system/pkg/response"
)

// respondError 将业务错误映射为统一响应
// 所有失败一律 {success:false, message}，HTTP 状态码按错误类别归一
func respondError(c *gin.Context, err error) {
	var dup *service.DuplicateAssignmentError
	if errors.As(err, &dup) {
		response.Conflict(c, dup.Error())
		return
	}

	switch {
	// 404 资源不存在
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrTargetNotFound),
		errors.Is(err, service.ErrBattleNotFound),
		errors.Is(err, service.ErrNoOpenBattle),
		errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, err.Error())

	// 409 状态冲突
	case errors.Is(err, service.ErrBattleAlreadyOpen),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrGameIDExists),
		errors.Is(err, service.ErrLeaveExists),
		errors.Is(err, service.ErrAlreadySetup),
		errors.Is(err, service.ErrBattleConfirmed),
		errors.Is(err, service.ErrLeaveReviewed):
		response.Conflict(c, err.Error())

	// 403 策略拒绝
	case errors.Is(err, service.ErrOnLeave),
		errors.Is(err, service.ErrProxyNotAllowed),
		errors.Is(err, service.ErrNotAllowedMember),
		errors.Is(err, service.ErrDeleteSelf):
		response.Forbidden(c, err.Error())

	// 400 校验/状态机错误
	case errors.Is(err, service.ErrInvalidGameID),
		errors.Is(err, service.ErrInvalidJob),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrUserNotSetup),
		errors.Is(err, service.ErrNotRegistered),
		errors.Is(err, service.ErrRegistrationOver),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDeadlineAfterDate),
		errors.Is(err, service.ErrFormationNotPublished),
		errors.Is(err, service.ErrUnknownTeam),
		errors.Is(err, service.ErrUnknownJob),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidRefresh),
		errors.Is(err, service.ErrExportNoRecords),
		errors.Is(err, service.ErrExportNoBattles):
		response.BadRequest(c, err.Error())

	default:
		response.InternalError(c)
	}
}
