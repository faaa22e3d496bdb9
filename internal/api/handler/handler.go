package handler

import "github.com/cheivoy/battle-system/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Leave        *LeaveHandler
	Battle       *BattleHandler
	Registration *RegistrationHandler
	Formation    *FormationHandler
	Attendance   *AttendanceHandler
	ChangeLog    *ChangeLogHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, svc.User),
		User:         NewUserHandler(svc.User, svc.Battle),
		Leave:        NewLeaveHandler(svc.Leave, svc.User),
		Battle:       NewBattleHandler(svc.Battle, svc.User),
		Registration: NewRegistrationHandler(svc.Registration, svc.Battle),
		Formation:    NewFormationHandler(svc.Formation, svc.Battle, svc.User),
		Attendance:   NewAttendanceHandler(svc.Attendance),
		ChangeLog:    NewChangeLogHandler(svc.ChangeLog),
		Export:       NewExportHandler(svc.Export),
	}
}
