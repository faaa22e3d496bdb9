package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/model"
)

// UserRepository 成员数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*model.User, error)
	GetByGameID(ctx context.Context, gameID string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, job string) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	CountOnLeave(ctx context.Context) (int64, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByGameID(ctx context.Context, gameID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "user_id = ?", id).Error
}

func (r *userRepo) List(ctx context.Context, job string) ([]model.User, error) {
	var users []model.User
	db := r.db.WithContext(ctx).Order("game_id ASC")
	if job != "" {
		db = db.Where("job = ?", job)
	}
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}

func (r *userRepo) CountOnLeave(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("on_leave = ?", true).
		Count(&total).Error
	return total, err
}
