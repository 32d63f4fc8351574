package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
)

// UserRepository 店面用户仓储接口
type UserRepository interface {
	GetByName(ctx context.Context, name string) (*model.User, error)
	GetByID(ctx context.Context, uid int64) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	CountClients(ctx context.Context) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, uid int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// CountClients 注册用户总数（uid > 0，匿名不算）
func (r *userRepo) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid > 0").
		Count(&count).Error
	return count, err
}
