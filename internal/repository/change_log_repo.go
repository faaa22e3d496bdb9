package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// ChangeLogFilter 变更日志查询条件
type ChangeLogFilter struct {
	Day     *time.Time // 按天过滤（当天 00:00 起 24 小时）
	GameID  string
	LogType string
}

// ChangeLogRepository 变更日志数据访问接口（只追加）
type ChangeLogRepository interface {
	Create(ctx context.Context, log *model.ChangeLog) error
	List(ctx context.Context, filter ChangeLogFilter, offset, limit int) ([]model.ChangeLog, int64, error)
}

// changeLogRepo ChangeLogRepository 的 GORM 实现
type changeLogRepo struct {
	db *gorm.DB
}

// NewChangeLogRepo 创建 ChangeLogRepository 实例
func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Create(ctx context.Context, log *model.ChangeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *changeLogRepo) List(ctx context.Context, filter ChangeLogFilter, offset, limit int) ([]model.ChangeLog, int64, error) {
	var logs []model.ChangeLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ChangeLog{})

	if filter.Day != nil {
		start := filter.Day.Truncate(24 * time.Hour)
		db = db.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}
	if filter.GameID != "" {
		db = db.Where("game_id = ?", filter.GameID)
	}
	if filter.LogType != "" {
		db = db.Where("log_type = ?", filter.LogType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
