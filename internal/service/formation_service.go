package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 阵型模块业务错误 ──

var (
	ErrBattleConfirmed = errors.New("帮战已确认，阵型不可再修改")
	ErrUnknownTeam     = errors.New("小队名称不在配置名单中")
	ErrUnknownJob      = errors.New("职业不在配置名单中")
)

// DuplicateAssignmentError 同一玩家占据了两个阵型格子
type DuplicateAssignmentError struct {
	GameID string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("玩家 %s 已被指派到其他格子", e.GameID)
}

// FormationService 阵型指派业务接口
//
// 保存为全量覆盖；校验保证一名玩家至多占一个格子，
// 扫描顺序固定为 团 → 小队 → 格子，遇到的第一个重复即报错。
type FormationService interface {
	// Save 校验并整体保存阵型
	Save(ctx context.Context, battleID string, formation model.Formation, actorGameID string) error
	// ReadAdmin 管理员视图：完整阵型 + 按职业分组的报名候选
	ReadAdmin(ctx context.Context, battle *model.Battle) (*dto.FormationAdminResponse, error)
	// ReadMember 成员视图：发布后只返回本人格子
	ReadMember(ctx context.Context, battle *model.Battle, gameID string) (*dto.MemberSlotResponse, error)
}

type formationService struct {
	cfg    *config.GuildConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFormationService 创建 FormationService 实例
func NewFormationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) FormationService {
	return &formationService{cfg: &cfg.Guild, repo: repo, logger: logger}
}

func (s *formationService) Save(ctx context.Context, battleID string, formation model.Formation, actorGameID string) error {
	battle, err := s.repo.Battle.GetByID(ctx, battleID)
	if err != nil {
		return ErrBattleNotFound
	}
	if battle.Status == model.BattleStatusConfirmed {
		return ErrBattleConfirmed
	}

	if err := s.validate(&formation); err != nil {
		return err
	}

	battle.Formation = formation
	if err := s.repo.Battle.Update(ctx, battle); err != nil {
		s.logger.Error("保存阵型失败", zap.String("battle_id", battleID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 保存阵型", actorGameID),
		model.LogTypeOther)
	return nil
}

// validate 校验小队/职业名称合法，且无玩家占据两个格子
func (s *formationService) validate(f *model.Formation) error {
	seen := make(map[string]bool)
	for _, g := range f.Groups {
		for _, t := range g.Teams {
			if !s.cfg.IsValidTeam(t.Name) {
				return ErrUnknownTeam
			}
			for _, slot := range t.Slots {
				if !s.cfg.IsValidJob(slot.Job) {
					return ErrUnknownJob
				}
				if slot.GameID == "" {
					continue
				}
				if seen[slot.GameID] {
					return &DuplicateAssignmentError{GameID: slot.GameID}
				}
				seen[slot.GameID] = true
			}
		}
	}
	return nil
}

func (s *formationService) ReadAdmin(ctx context.Context, battle *model.Battle) (*dto.FormationAdminResponse, error) {
	regs, err := s.repo.Registration.ListByBattle(ctx, battle.BattleID)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string][]dto.RegistrationResponse)
	for _, r := range regs {
		candidates[r.Job] = append(candidates[r.Job], dto.RegistrationResponse{
			GameID:   r.GameID,
			Job:      r.Job,
			IsProxy:  r.IsProxy,
			ProxyBy:  r.ProxyBy,
			IsBackup: r.IsBackup,
		})
	}

	return &dto.FormationAdminResponse{
		Formation:  battle.Formation,
		Candidates: candidates,
	}, nil
}

func (s *formationService) ReadMember(ctx context.Context, battle *model.Battle, gameID string) (*dto.MemberSlotResponse, error) {
	published := battle.Status == model.BattleStatusPublished || battle.Status == model.BattleStatusConfirmed
	if !published {
		return &dto.MemberSlotResponse{Published: false}, nil
	}

	group, team, job, found := battle.Formation.FindSlot(gameID)
	if !found {
		return &dto.MemberSlotResponse{Published: true, Assigned: false}, nil
	}

	return &dto.MemberSlotResponse{
		Published: true,
		Assigned:  true,
		Group:     group,
		Team:      team,
		Job:       job,
	}, nil
}
