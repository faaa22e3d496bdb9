package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// BattleRepository 帮战数据访问接口
type BattleRepository interface {
	Create(ctx context.Context, battle *model.Battle) error
	GetByID(ctx context.Context, id string) (*model.Battle, error)
	GetOpen(ctx context.Context) (*model.Battle, error)
	Update(ctx context.Context, battle *model.Battle) error
	List(ctx context.Context) ([]model.Battle, error)
}

// battleRepo BattleRepository 的 GORM 实现
type battleRepo struct {
	db *gorm.DB
}

// NewBattleRepo 创建 BattleRepository 实例
func NewBattleRepo(db *gorm.DB) BattleRepository {
	return &battleRepo{db: db}
}

func (r *battleRepo) Create(ctx context.Context, battle *model.Battle) error {
	return r.db.WithContext(ctx).Create(battle).Error
}

func (r *battleRepo) GetByID(ctx context.Context, id string) (*model.Battle, error) {
	var battle model.Battle
	err := r.db.WithContext(ctx).
		Where("battle_id = ?", id).
		First(&battle).Error
	if err != nil {
		return nil, err
	}
	return &battle, nil
}

// GetOpen 查询当前开放报名的帮战
// 数据库上有 status='open' 的部分唯一索引，至多一条
func (r *battleRepo) GetOpen(ctx context.Context) (*model.Battle, error) {
	var battle model.Battle
	err := r.db.WithContext(ctx).
		Where("status = ?", model.BattleStatusOpen).
		First(&battle).Error
	if err != nil {
		return nil, err
	}
	return &battle, nil
}

func (r *battleRepo) Update(ctx context.Context, battle *model.Battle) error {
	return r.db.WithContext(ctx).Save(battle).Error
}

func (r *battleRepo) List(ctx context.Context) ([]model.Battle, error) {
	var battles []model.Battle
	err := r.db.WithContext(ctx).
		Order("battle_date ASC").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}
