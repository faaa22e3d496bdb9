package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// AttendanceRepository 出勤记录数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	Exists(ctx context.Context, gameID, battleID string) (bool, error)
	DeleteByGameID(ctx context.Context, gameID string) error
	ListByGameID(ctx context.Context, gameID string) ([]model.AttendanceRecord, error)
	ListByBattle(ctx context.Context, battleID string) ([]model.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) Exists(ctx context.Context, gameID, battleID string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("game_id = ? AND battle_id = ?", gameID, battleID).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// DeleteByGameID 删除成员时级联清理其全部出勤记录
func (r *attendanceRepo) DeleteByGameID(ctx context.Context, gameID string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&model.AttendanceRecord{}).Error
}

func (r *attendanceRepo) ListByGameID(ctx context.Context, gameID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Battle").
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) ListByBattle(ctx context.Context, battleID string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("battle_id = ?", battleID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Battle").
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
