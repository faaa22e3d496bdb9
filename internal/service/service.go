package service

import (
	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/repository"
	"github.com/cheivoy/battle-system/pkg/discord"
	"github.com/cheivoy/battle-system/pkg/jwt"
	"github.com/cheivoy/battle-system/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Leave        LeaveService
	Battle       BattleService
	Registration RegistrationService
	Formation    FormationService
	Attendance   AttendanceService
	ChangeLog    ChangeLogService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	discordClient := discord.NewClient(&cfg.Auth.Discord)
	attendance := NewAttendanceService(cfg, repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, discordClient, jwtMgr, rdb, logger),
		User:         NewUserService(cfg, repo, logger),
		Leave:        NewLeaveService(repo, logger),
		Battle:       NewBattleService(repo, attendance, logger),
		Registration: NewRegistrationService(cfg, repo, logger),
		Formation:    NewFormationService(cfg, repo, logger),
		Attendance:   attendance,
		ChangeLog:    NewChangeLogService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
