package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ucmob_admin/internal/api/dto"
	"ucmob_admin/internal/model"
	"ucmob_admin/internal/repository"
)

// ==================== 错误 ====================
// 错误文本就是信封里的 error 字段，改动会破坏移动端兼容

var (
	ErrMissingToken = errors.New("You need to be logged!")
	ErrInvalidToken = errors.New("Your token is no longer relevant!")
	// 登录失败统一口径：不区分密码错误和非管理员（信息隐藏）
	ErrIncorrectCredentials = errors.New("Incorrect email or password")
	ErrParameters           = errors.New("Parameters error")
)

// ==================== AuthService 鉴权服务 ====================

// AuthService 登录、API 令牌和推送设备注册
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	deviceRepo repository.DeviceRepository
}

// NewAuthService 创建鉴权服务
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	deviceRepo repository.DeviceRepository,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		deviceRepo: deviceRepo,
	}
}

// Authenticate 校验 API 令牌，返回用户 id
// 所有带 token 的路由都先走这里，失败即短路，不执行任何业务逻辑
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrMissingToken
	}
	userID, err := s.tokenRepo.UserIDByToken(ctx, token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Login 账号密码登录，只放行管理员
// 已有令牌直接复用，没有就生成一个并持久化；顺带注册推送设备
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" || req.Token != "" {
		return nil, ErrParameters
	}

	user, err := s.userRepo.GetByName(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrIncorrectCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Pass), []byte(req.Password)); err != nil {
		return nil, ErrIncorrectCredentials
	}
	if user.Role != model.RoleAdministrator {
		return nil, ErrIncorrectCredentials
	}

	token, err := s.tokenRepo.TokenByUserID(ctx, user.UID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = strings.ReplaceAll(uuid.NewString(), "-", "")
		err = s.tokenRepo.Create(ctx, &model.UserToken{
			UserID: user.UID,
			Token:  token,
		})
		if err != nil {
			return nil, err
		}
	}

	if req.DeviceToken != "" {
		if err := s.registerDevice(ctx, user.UID, req.DeviceToken, req.OsType); err != nil {
			return nil, err
		}
	}

	return &dto.LoginResponse{Token: token}, nil
}

// registerDevice 设备令牌全局唯一，已注册的跳过
func (s *AuthService) registerDevice(ctx context.Context, userID int64, deviceToken, osType string) error {
	existing, err := s.deviceRepo.GetByToken(ctx, deviceToken)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.deviceRepo.Create(ctx, &model.UserDevice{
		UserID:      userID,
		DeviceToken: deviceToken,
		OsType:      osType,
	})
}

// DeleteDeviceToken 注销推送设备，令牌不存在算参数错误
func (s *AuthService) DeleteDeviceToken(ctx context.Context, oldToken string) error {
	if oldToken == "" {
		return ErrParameters
	}
	existing, err := s.deviceRepo.GetByToken(ctx, oldToken)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrParameters
	}
	rows, err := s.deviceRepo.DeleteByToken(ctx, oldToken)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrParameters
	}
	return nil
}

// UpdateDeviceToken 原地更换设备令牌
func (s *AuthService) UpdateDeviceToken(ctx context.Context, oldToken, newToken string) error {
	if oldToken == "" || newToken == "" {
		return ErrParameters
	}
	existing, err := s.deviceRepo.GetByToken(ctx, oldToken)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrParameters
	}
	rows, err := s.deviceRepo.UpdateToken(ctx, oldToken, newToken)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrParameters
	}
	return nil
}
