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

// AttendanceService 出勤记录业务接口
//
// 候选集是本场全部报名行；attended 取决于配置策略：
//   - formation（默认）：玩家出现在最终阵型中才算出勤
//   - registered：报名即算出勤
type AttendanceService interface {
	// RecordForBattle 确认帮战时为每位报名者写入一条出勤记录
	RecordForBattle(ctx context.Context, battle *model.Battle) error
	// Summary 个人出勤汇总：次数、缺席、出勤率与明细
	Summary(ctx context.Context, userID string) (*dto.AttendanceSummaryResponse, error)
}

type attendanceService struct {
	cfg    *config.GuildConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{cfg: &cfg.Guild, repo: repo, logger: logger}
}

func (s *attendanceService) RecordForBattle(ctx context.Context, battle *model.Battle) error {
	regs, err := s.repo.Registration.ListByBattle(ctx, battle.BattleID)
	if err != nil {
		return err
	}

	for _, reg := range regs {
		// 存在性防线：确认是单向变迁，但部分失败后重跑不应产生重复行
		exists, err := s.repo.Attendance.Exists(ctx, reg.GameID, battle.BattleID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		attended := true
		if s.cfg.AttendancePolicy == "formation" {
			attended = battle.Formation.Contains(reg.GameID)
		}

		record := &model.AttendanceRecord{
			GameID:   reg.GameID,
			BattleID: battle.BattleID,
			Attended: attended,
		}
		if err := s.repo.Attendance.Create(ctx, record); err != nil {
			s.logger.Error("写入出勤记录失败",
				zap.String("game_id", reg.GameID),
				zap.String("battle_id", battle.BattleID),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Info("出勤记录完成",
		zap.String("battle_id", battle.BattleID),
		zap.Int("candidates", len(regs)),
	)
	return nil
}

func (s *attendanceService) Summary(ctx context.Context, userID string) (*dto.AttendanceSummaryResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	gameID := user.GameIDOrEmpty()
	if gameID == "" {
		return nil, ErrUserNotSetup
	}

	records, err := s.repo.Attendance.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	attended := 0
	rows := make([]dto.AttendanceRecordRow, 0, len(records))
	for _, r := range records {
		if r.Attended {
			attended++
		}

		row := dto.AttendanceRecordRow{Attended: r.Attended, Team: "-"}
		if r.Battle != nil {
			row.Date = r.Battle.BattleDate
			row.BattleName = fmt.Sprintf("幫戰 %s", r.Battle.BattleDate.Format("2006/01/02"))
			if team := r.Battle.Formation.TeamOf(gameID); team != "" {
				row.Team = team
			}
		}
		rows = append(rows, row)
	}

	total := len(records)
	rate := "0.00"
	if total > 0 {
		rate = fmt.Sprintf("%.2f", float64(attended)/float64(total)*100)
	}

	return &dto.AttendanceSummaryResponse{
		Stats: dto.AttendanceStats{
			Attended:       attended,
			Absent:         total - attended,
			AttendanceRate: rate,
		},
		Records: rows,
	}, nil
}
