package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ucmob_admin/internal/model"
)

// ==================== 接口定义 ====================

// TokenRepository API 令牌仓储接口
type TokenRepository interface {
	UserIDByToken(ctx context.Context, token string) (int64, error)
	TokenByUserID(ctx context.Context, userID int64) (string, error)
	Create(ctx context.Context, t *model.UserToken) error
}

// DeviceRepository 推送设备仓储接口
type DeviceRepository interface {
	GetByToken(ctx context.Context, deviceToken string) (*model.UserDevice, error)
	Create(ctx context.Context, d *model.UserDevice) error
	UpdateToken(ctx context.Context, oldToken, newToken string) (int64, error)
	DeleteByToken(ctx context.Context, deviceToken string) (int64, error)
	ListAll(ctx context.Context) ([]model.UserDevice, error)
}

// ==================== 仓储实现 ====================

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepository 创建令牌仓储
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) UserIDByToken(ctx context.Context, token string) (int64, error) {
	var t model.UserToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&t).Error
	if err != nil {
		return 0, err
	}
	return t.UserID, nil
}

func (r *tokenRepo) TokenByUserID(ctx context.Context, userID int64) (string, error) {
	var t model.UserToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return t.Token, nil
}

func (r *tokenRepo) Create(ctx context.Context, t *model.UserToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

type deviceRepo struct {
	db *gorm.DB
}

// NewDeviceRepository 创建设备仓储
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) GetByToken(ctx context.Context, deviceToken string) (*model.UserDevice, error) {
	var d model.UserDevice
	err := r.db.WithContext(ctx).
		Where("device_token = ?", deviceToken).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deviceRepo) Create(ctx context.Context, d *model.UserDevice) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deviceRepo) UpdateToken(ctx context.Context, oldToken, newToken string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.UserDevice{}).
		Where("device_token = ?", oldToken).
		Update("device_token", newToken)
	return res.RowsAffected, res.Error
}

func (r *deviceRepo) DeleteByToken(ctx context.Context, deviceToken string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("device_token = ?", deviceToken).
		Delete(&model.UserDevice{})
	return res.RowsAffected, res.Error
}

func (r *deviceRepo) ListAll(ctx context.Context) ([]model.UserDevice, error) {
	var devices []model.UserDevice
	err := r.db.WithContext(ctx).Find(&devices).Error
	return devices, err
}
