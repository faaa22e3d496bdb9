package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ChangeLogService 变更日志业务接口
// 写入是尽力而为：日志落库失败只记录错误，不回滚主操作
type ChangeLogService interface {
	// Append 追加一条变更日志（主操作成功后调用）
	Append(ctx context.Context, gameID, message, logType string)
	// List 按条件查询变更日志（管理员）
	List(ctx context.Context, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error)
}

type changeLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChangeLogService 创建 ChangeLogService 实例
func NewChangeLogService(repo *repository.Repository, logger *zap.Logger) ChangeLogService {
	return &changeLogService{repo: repo, logger: logger}
}

func (s *changeLogService) Append(ctx context.Context, gameID, message, logType string) {
	appendChangeLog(ctx, s.repo, s.logger, gameID, message, logType)
}

func (s *changeLogService) List(ctx context.Context, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error) {
	filter := repository.ChangeLogFilter{
		GameID:  req.GameID,
		LogType: req.LogType,
	}
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		filter.Day = &day
	}

	logs, total, err := s.repo.ChangeLog.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询变更日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ChangeLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.ChangeLogResponse{
			ID:        l.ChangeLogID,
			GameID:    l.GameID,
			Message:   l.Message,
			LogType:   l.LogType,
			CreatedAt: l.CreatedAt,
		})
	}
	return result, total, nil
}
