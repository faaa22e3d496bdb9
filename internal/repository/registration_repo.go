package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// RegistrationRepository 报名数据访问接口
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	Get(ctx context.Context, gameID, battleID string) (*model.Registration, error)
	Delete(ctx context.Context, gameID, battleID string) error
	DeleteByGameID(ctx context.Context, gameID string) error
	ListByBattle(ctx context.Context, battleID string) ([]model.Registration, error)
	CountByBattle(ctx context.Context, battleID string) (int64, error)
}

// registrationRepo RegistrationRepository 的 GORM 实现
type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo 创建 RegistrationRepository 实例
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) Get(ctx context.Context, gameID, battleID string) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND battle_id = ?", gameID, battleID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) Delete(ctx context.Context, gameID, battleID string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ? AND battle_id = ?", gameID, battleID).
		Delete(&model.Registration{}).Error
}

// DeleteByGameID 删除成员时级联清理其全部报名
func (r *registrationRepo) DeleteByGameID(ctx context.Context, gameID string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&model.Registration{}).Error
}

func (r *registrationRepo) ListByBattle(ctx context.Context, battleID string) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Where("battle_id = ?", battleID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepo) CountByBattle(ctx context.Context, battleID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("battle_id = ?", battleID).
		Count(&total).Error
	return total, err
}
