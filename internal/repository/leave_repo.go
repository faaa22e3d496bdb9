package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	GetActiveByGameIDAndDate(ctx context.Context, gameID string, date time.Time) (*model.LeaveRequest, error)
	Update(ctx context.Context, leave *model.LeaveRequest) error
	DeleteByGameID(ctx context.Context, gameID string) error
	ListByGameID(ctx context.Context, gameID string) ([]model.LeaveRequest, error)
	ListPending(ctx context.Context) ([]model.LeaveRequest, error)
}

// leaveRepo LeaveRepository 的 GORM 实现
type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// GetActiveByGameIDAndDate 查询成员在某日的有效请假单（未被驳回的）
func (r *leaveRepo) GetActiveByGameIDAndDate(ctx context.Context, gameID string, date time.Time) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	day := model.DateOnly(date)
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND leave_date = ? AND status <> ?",
			gameID, day, model.LeaveStatusRejected).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) Update(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

// DeleteByGameID 删除成员时级联清理其全部请假单
func (r *leaveRepo) DeleteByGameID(ctx context.Context, gameID string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&model.LeaveRequest{}).Error
}

func (r *leaveRepo) ListByGameID(ctx context.Context, gameID string) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("leave_date DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepo) ListPending(ctx context.Context) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", model.LeaveStatusPending).
		Order("leave_date ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}
