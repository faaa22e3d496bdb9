package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

var ErrInvalidDate = errors.New("日期格式错误")

// appendChangeLog 各业务模块共用的日志追加入口
// 尽力而为：失败只打日志，绝不影响主操作的结果
func appendChangeLog(ctx context.Context, repo *repository.Repository, logger *zap.Logger, gameID, message, logType string) {
	entry := &model.ChangeLog{
		GameID:  gameID,
		Message: message,
		LogType: logType,
	}
	if err := repo.ChangeLog.Create(ctx, entry); err != nil {
		logger.Error("写入变更日志失败",
			zap.String("game_id", gameID),
			zap.String("log_type", logType),
			zap.Error(err),
		)
	}
}
