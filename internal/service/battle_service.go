package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 帮战模块业务错误 ──

var (
	ErrBattleNotFound        = errors.New("帮战不存在")
	ErrNoOpenBattle          = errors.New("无开放报名的帮战")
	ErrBattleAlreadyOpen     = errors.New("已有开放中的帮战")
	ErrInvalidTransition     = errors.New("帮战状态不允许此操作")
	ErrDeadlineAfterDate     = errors.New("报名截止时间必须早于帮战时间")
	ErrFormationNotPublished = errors.New("请先发布阵型")
)

// BattleService 帮战生命周期业务接口
//
// 状态机：open → closed → published → confirmed，单向推进。
// 所有写操作接收显式 battleID；"当前场次" 只在边界通过 Resolve 解析一次。
type BattleService interface {
	// Open 开启新帮战；存在开放中的场次时拒绝
	Open(ctx context.Context, req *dto.OpenBattleRequest, actorGameID string) (*model.Battle, error)
	// Close 截止报名：open → closed
	Close(ctx context.Context, battleID, actorGameID string) (*model.Battle, error)
	// Publish 发布阵型：closed → published
	Publish(ctx context.Context, battleID, actorGameID string) (*model.Battle, error)
	// Confirm 确认阵型：published → confirmed，并为每位报名者写入出勤记录
	Confirm(ctx context.Context, battleID, actorGameID string) (*model.Battle, error)
	// Resolve 解析目标帮战：battleID 非空按 ID 查询，否则取当前开放场次
	Resolve(ctx context.Context, battleID string) (*model.Battle, error)
	// Current 查询当前开放报名的帮战
	Current(ctx context.Context) (*model.Battle, error)
	// List 按日期升序列出全部帮战
	List(ctx context.Context) ([]model.Battle, error)
}

type battleService struct {
	repo       *repository.Repository
	attendance AttendanceService
	logger     *zap.Logger
}

// NewBattleService 创建 BattleService 实例
func NewBattleService(repo *repository.Repository, attendance AttendanceService, logger *zap.Logger) BattleService {
	return &battleService{repo: repo, attendance: attendance, logger: logger}
}

func (s *battleService) Open(ctx context.Context, req *dto.OpenBattleRequest, actorGameID string) (*model.Battle, error) {
	if !req.Deadline.Before(req.Date) {
		return nil, ErrDeadlineAfterDate
	}

	// 先查后写仅为友好报错；status='open' 的部分唯一索引才是并发防线
	if _, err := s.repo.Battle.GetOpen(ctx); err == nil {
		return nil, ErrBattleAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	battle := &model.Battle{
		BattleDate: req.Date,
		Deadline:   req.Deadline,
		Status:     model.BattleStatusOpen,
	}
	if err := s.repo.Battle.Create(ctx, battle); err != nil {
		s.logger.Error("创建帮战失败", zap.Error(err))
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 新增帮战，日期：%s", actorGameID, req.Date.Format("2006/01/02 15:04")),
		model.LogTypeOther)

	s.logger.Info("帮战已开启",
		zap.String("battle_id", battle.BattleID),
		zap.Time("date", battle.BattleDate),
	)
	return battle, nil
}

func (s *battleService) Close(ctx context.Context, battleID, actorGameID string) (*model.Battle, error) {
	battle, err := s.transition(ctx, battleID, model.BattleStatusClosed)
	if err != nil {
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 关闭帮战，日期：%s", actorGameID, battle.BattleDate.Format("2006/01/02 15:04")),
		model.LogTypeOther)
	return battle, nil
}

func (s *battleService) Publish(ctx context.Context, battleID, actorGameID string) (*model.Battle, error) {
	battle, err := s.transition(ctx, battleID, model.BattleStatusPublished)
	if err != nil {
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 发布阵型", actorGameID),
		model.LogTypeOther)
	return battle, nil
}

func (s *battleService) Confirm(ctx context.Context, battleID, actorGameID string) (*model.Battle, error) {
	battle, err := s.repo.Battle.GetByID(ctx, battleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}

	// confirm 的前置条件单独报错，便于前端提示
	if battle.Status != model.BattleStatusPublished {
		if battle.Status == model.BattleStatusOpen || battle.Status == model.BattleStatusClosed {
			return nil, ErrFormationNotPublished
		}
		return nil, ErrInvalidTransition
	}

	// 先写出勤，写完才推进状态：部分失败时帮战停在 published，
	// 重新 confirm 会重跑记录器，其存在性防线保证不产生重复行
	if err := s.attendance.RecordForBattle(ctx, battle); err != nil {
		s.logger.Error("记录出勤失败", zap.String("battle_id", battle.BattleID), zap.Error(err))
		return nil, err
	}

	battle.Status = model.BattleStatusConfirmed
	if err := s.repo.Battle.Update(ctx, battle); err != nil {
		s.logger.Error("确认帮战失败", zap.Error(err))
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 确认阵型并记录出勤", actorGameID),
		model.LogTypeOther)

	s.logger.Info("帮战已确认", zap.String("battle_id", battle.BattleID))
	return battle, nil
}

// transition 按状态机推进一步
func (s *battleService) transition(ctx context.Context, battleID, next string) (*model.Battle, error) {
	battle, err := s.repo.Battle.GetByID(ctx, battleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}

	if !battle.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	battle.Status = next
	if err := s.repo.Battle.Update(ctx, battle); err != nil {
		s.logger.Error("更新帮战状态失败",
			zap.String("battle_id", battleID),
			zap.String("next", next),
			zap.Error(err),
		)
		return nil, err
	}
	return battle, nil
}

func (s *battleService) Resolve(ctx context.Context, battleID string) (*model.Battle, error) {
	if battleID != "" {
		battle, err := s.repo.Battle.GetByID(ctx, battleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBattleNotFound
			}
			return nil, err
		}
		return battle, nil
	}
	return s.Current(ctx)
}

func (s *battleService) Current(ctx context.Context) (*model.Battle, error) {
	battle, err := s.repo.Battle.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenBattle
		}
		return nil, err
	}
	return battle, nil
}

func (s *battleService) List(ctx context.Context) ([]model.Battle, error) {
	return s.repo.Battle.List(ctx)
}

// 供测试替换的时钟
var timeNow = time.Now
