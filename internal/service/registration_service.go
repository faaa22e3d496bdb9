package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 报名模块业务错误 ──

var (
	ErrAlreadyRegistered = errors.New("已报名本场帮战")
	ErrNotRegistered     = errors.New("尚未报名本场帮战")
	ErrOnLeave           = errors.New("请假期间无法报名")
	ErrRegistrationOver  = errors.New("本场帮战已截止报名")
	ErrTargetNotFound    = errors.New("目标用户不存在")
	ErrProxyNotAllowed   = errors.New("仅管理员可代报名")
	ErrUserNotSetup      = errors.New("请先完成游戏 ID 设定")
)

// RegistrationService 报名业务接口
//
// 报名要求帮战处于 open 状态；超过截止时间但仍开放时转为后备名额。
// 请假（on_leave 旗标或当日未驳回的请假单）阻止报名。
type RegistrationService interface {
	// Register 本人报名
	Register(ctx context.Context, userID string, battle *model.Battle) (*model.Registration, error)
	// Cancel 取消本人报名
	Cancel(ctx context.Context, userID string, battle *model.Battle) error
	// ProxyRegister 代他人报名，需填写原因
	ProxyRegister(ctx context.Context, actorUserID string, battle *model.Battle, targetGameID, reason string) (*model.Registration, error)
	// Status 查询本人报名状态
	Status(ctx context.Context, userID string, battle *model.Battle) (*dto.RegistrationStatusResponse, error)
	// List 列出本场全部报名（含职业快照）
	List(ctx context.Context, battleID string) ([]dto.RegistrationResponse, error)
}

type registrationService struct {
	cfg    *config.GuildConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RegistrationService {
	return &registrationService{cfg: &cfg.Guild, repo: repo, logger: logger}
}

func (s *registrationService) Register(ctx context.Context, userID string, battle *model.Battle) (*model.Registration, error) {
	user, err := s.requireSetup(ctx, userID)
	if err != nil {
		return nil, err
	}

	reg, err := s.insert(ctx, user, battle, "", "")
	if err != nil {
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, user.GameIDOrEmpty(),
		fmt.Sprintf("用户 %s 报名帮战", user.GameIDOrEmpty()),
		model.LogTypeRegister)
	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, userID string, battle *model.Battle) error {
	user, err := s.requireSetup(ctx, userID)
	if err != nil {
		return err
	}
	gameID := user.GameIDOrEmpty()

	if _, err := s.repo.Registration.Get(ctx, gameID, battle.BattleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRegistered
		}
		return err
	}

	if err := s.repo.Registration.Delete(ctx, gameID, battle.BattleID); err != nil {
		s.logger.Error("取消报名失败", zap.String("game_id", gameID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, gameID,
		fmt.Sprintf("用户 %s 取消报名", gameID),
		model.LogTypeCancel)
	return nil
}

func (s *registrationService) ProxyRegister(ctx context.Context, actorUserID string, battle *model.Battle, targetGameID, reason string) (*model.Registration, error) {
	actor, err := s.requireSetup(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if s.cfg.ProxyRequiresAdmin && !actor.IsAdmin {
		return nil, ErrProxyNotAllowed
	}

	target, err := s.repo.User.GetByGameID(ctx, targetGameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	reg, err := s.insert(ctx, target, battle, actor.GameIDOrEmpty(), reason)
	if err != nil {
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, actor.GameIDOrEmpty(),
		fmt.Sprintf("用户 %s 为 %s 代报名，原因：%s", actor.GameIDOrEmpty(), targetGameID, reason),
		model.LogTypeOther)
	return reg, nil
}

// insert 报名写入的共同路径；proxyBy 非空表示代报名
func (s *registrationService) insert(ctx context.Context, user *model.User, battle *model.Battle, proxyBy, proxyReason string) (*model.Registration, error) {
	if battle.Status != model.BattleStatusOpen {
		return nil, ErrRegistrationOver
	}

	gameID := user.GameIDOrEmpty()
	if gameID == "" {
		return nil, ErrUserNotSetup
	}

	// 请假旗标或当日有效请假单都阻止报名
	if user.OnLeave {
		return nil, ErrOnLeave
	}
	if _, err := s.repo.Leave.GetActiveByGameIDAndDate(ctx, gameID, battle.BattleDate); err == nil {
		return nil, ErrOnLeave
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.Registration.Get(ctx, gameID, battle.BattleID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reg := &model.Registration{
		GameID:      gameID,
		BattleID:    battle.BattleID,
		Job:         user.Job,
		IsProxy:     proxyBy != "",
		ProxyBy:     proxyBy,
		ProxyReason: proxyReason,
		// 截止后仍开放时收为后备名额，而非直接拒绝
		IsBackup: battle.DeadlinePassed(timeNow()),
	}
	if err := s.repo.Registration.Create(ctx, reg); err != nil {
		s.logger.Error("写入报名失败",
			zap.String("game_id", gameID),
			zap.String("battle_id", battle.BattleID),
			zap.Error(err),
		)
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) Status(ctx context.Context, userID string, battle *model.Battle) (*dto.RegistrationStatusResponse, error) {
	user, err := s.requireSetup(ctx, userID)
	if err != nil {
		return nil, err
	}

	reg, err := s.repo.Registration.Get(ctx, user.GameIDOrEmpty(), battle.BattleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RegistrationStatusResponse{Registered: false}, nil
		}
		return nil, err
	}

	return &dto.RegistrationStatusResponse{
		Registered: true,
		IsBackup:   reg.IsBackup,
		BattleID:   battle.BattleID,
	}, nil
}

func (s *registrationService) List(ctx context.Context, battleID string) ([]dto.RegistrationResponse, error) {
	regs, err := s.repo.Registration.ListByBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		result = append(result, dto.RegistrationResponse{
			GameID:   r.GameID,
			Job:      r.Job,
			IsProxy:  r.IsProxy,
			ProxyBy:  r.ProxyBy,
			IsBackup: r.IsBackup,
		})
	}
	return result, nil
}

// requireSetup 取用户并要求已完成游戏 ID 设定
func (s *registrationService) requireSetup(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.GameIDOrEmpty() == "" {
		return nil, ErrUserNotSetup
	}
	return user, nil
}
