package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
	"github.com/cheivoy/battle-system/pkg/discord"
	"github.com/cheivoy/battle-system/pkg/jwt"
	"github.com/cheivoy/battle-system/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrNotAllowedMember = errors.New("非本帮成员，无法登录")
	ErrInvalidState     = errors.New("state 校验失败，请重新登录")
	ErrInvalidRefresh   = errors.New("refresh token 无效")
)

// DiscordOAuth Discord OAuth 客户端抽象（便于测试替换）
type DiscordOAuth interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*discord.Identity, error)
}

// AuthService 认证业务接口
//
// 身份由 Discord OAuth 提供；本服务只消费 (discord_id, username) 与白名单事实，
// 首次登录自动建档，之后由 JWT 维持会话
type AuthService interface {
	// LoginURL 生成 Discord 授权跳转地址
	LoginURL(ctx context.Context) (string, error)
	// Callback 处理授权回调：换取身份、校验白名单、签发 Token 对
	Callback(ctx context.Context, req *dto.CallbackRequest) (*dto.TokenResponse, error)
	// Refresh 用 Refresh Token 换取新的 Token 对
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将 Token 加入黑名单
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	oauth  DiscordOAuth
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	oauth DiscordOAuth,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		oauth:  oauth,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

const (
	statePrefix = "oauth:state:"
	stateTTL    = 10 * time.Minute
)

func (s *authService) LoginURL(ctx context.Context) (string, error) {
	state := uuid.New().String()
	// Redis 不可用时降级为不校验 state（与限流中间件同一策略）
	if s.rdb != nil {
		if err := s.rdb.SetState(ctx, statePrefix+state, stateTTL); err != nil {
			s.logger.Warn("写入 OAuth state 失败", zap.Error(err))
		}
	}
	return s.oauth.AuthorizeURL(state), nil
}

func (s *authService) Callback(ctx context.Context, req *dto.CallbackRequest) (*dto.TokenResponse, error) {
	if s.rdb != nil {
		ok, err := s.rdb.TakeState(ctx, statePrefix+req.State)
		if err != nil {
			s.logger.Warn("校验 OAuth state 失败", zap.Error(err))
		} else if !ok {
			return nil, ErrInvalidState
		}
	}

	identity, err := s.oauth.Exchange(ctx, req.Code)
	if err != nil {
		s.logger.Warn("Discord 授权码兑换失败", zap.Error(err))
		return nil, err
	}

	if !s.cfg.Guild.IsAllowedMember(identity.ID) {
		s.logger.Info("拒绝非白名单用户登录", zap.String("discord_id", identity.ID))
		return nil, ErrNotAllowedMember
	}

	user, err := s.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// upsertUser 首次登录建档；主管理员自动授予管理员权限
func (s *authService) upsertUser(ctx context.Context, identity *discord.Identity) (*model.User, error) {
	user, err := s.repo.User.GetByDiscordID(ctx, identity.ID)
	if err == nil {
		if user.DiscordUsername != identity.Username {
			user.DiscordUsername = identity.Username
			if err := s.repo.User.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		DiscordID:       identity.ID,
		DiscordUsername: identity.Username,
		IsAdmin:         identity.ID == s.cfg.Guild.MasterAdminID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("discord_id", identity.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("新成员首次登录",
		zap.String("discord_id", identity.ID),
		zap.String("username", identity.Username),
	)
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 旧 refresh token 即刻作废
	if s.rdb != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("作废旧 refresh token 失败", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("登出失败: %w", err)
	}
	return nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         *toUserResponse(user),
	}, nil
}
