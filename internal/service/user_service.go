package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound   = errors.New("用户不存在")
	ErrGameIDExists   = errors.New("此游戏 ID 已存在")
	ErrInvalidGameID  = errors.New("游戏 ID 格式错误")
	ErrInvalidJob     = errors.New("无效的职业")
	ErrAlreadySetup   = errors.New("已完成初始设定")
	ErrMemberNotFound = errors.New("成员不存在")
	ErrDeleteSelf     = errors.New("不能删除自己")
)

// 游戏 ID：3-20 位字母数字
var gameIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

// UserService 用户业务接口
type UserService interface {
	// GetByID 查询用户信息
	GetByID(ctx context.Context, userID string) (*dto.UserResponse, error)
	// Setup 首次设定游戏 ID 与职业
	Setup(ctx context.Context, userID string, req *dto.SetupRequest) (*dto.UserResponse, error)
	// ChangeJob 更换职业
	ChangeJob(ctx context.Context, userID string, req *dto.ChangeJobRequest) error
	// ChangeGameID 更换游戏 ID
	ChangeGameID(ctx context.Context, userID string, req *dto.ChangeGameIDRequest) error
	// ListMembers 成员列表（管理员，可按职业过滤）
	ListMembers(ctx context.Context, req *dto.MemberListRequest) ([]dto.MemberResponse, error)
	// ToggleLeave 切换成员请假旗标（管理员）
	ToggleLeave(ctx context.Context, actorGameID string, req *dto.ToggleLeaveRequest) error
	// ToggleAdmin 切换成员管理员权限（管理员）
	ToggleAdmin(ctx context.Context, actorGameID string, req *dto.ToggleAdminRequest) error
	// DeleteMember 删除成员并级联清理其报名/请假/出勤记录（管理员）
	DeleteMember(ctx context.Context, actorUserID, actorGameID string, req *dto.DeleteMemberRequest) error
	// Stats 管理面板统计
	Stats(ctx context.Context, battleID string) (*dto.StatsResponse, error)
}

type userService struct {
	cfg    *config.GuildConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: &cfg.Guild, repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Setup(ctx context.Context, userID string, req *dto.SetupRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.GameIDOrEmpty() != "" {
		return nil, ErrAlreadySetup
	}

	if !gameIDPattern.MatchString(req.GameID) {
		return nil, ErrInvalidGameID
	}
	if !s.cfg.IsValidJob(req.Job) {
		return nil, ErrInvalidJob
	}
	if err := s.ensureGameIDFree(ctx, req.GameID); err != nil {
		return nil, err
	}

	gameID := req.GameID
	user.GameID = &gameID
	user.Job = req.Job
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("初始设定失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, gameID,
		fmt.Sprintf("用户 %s 完成初始设定，职业：%s", gameID, req.Job),
		model.LogTypeOther)
	return toUserResponse(user), nil
}

func (s *userService) ChangeJob(ctx context.Context, userID string, req *dto.ChangeJobRequest) error {
	if !s.cfg.IsValidJob(req.Job) {
		return ErrInvalidJob
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.GameIDOrEmpty() == "" {
		return ErrUserNotSetup
	}

	oldJob := user.Job
	user.Job = req.Job
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更换职业失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, user.GameIDOrEmpty(),
		fmt.Sprintf("用户 %s 将职业从 %s 更换为 %s", user.GameIDOrEmpty(), oldJob, req.Job),
		model.LogTypeJobChange)
	return nil
}

func (s *userService) ChangeGameID(ctx context.Context, userID string, req *dto.ChangeGameIDRequest) error {
	if !gameIDPattern.MatchString(req.GameID) {
		return ErrInvalidGameID
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.ensureGameIDFree(ctx, req.GameID); err != nil {
		return err
	}

	oldID := user.GameIDOrEmpty()
	gameID := req.GameID
	user.GameID = &gameID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更换游戏 ID 失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, gameID,
		fmt.Sprintf("用户将游戏 ID 从 %s 更换为 %s", oldID, gameID),
		model.LogTypeIDChange)
	return nil
}

// ensureGameIDFree 游戏 ID 唯一性检查
func (s *userService) ensureGameIDFree(ctx context.Context, gameID string) error {
	if _, err := s.repo.User.GetByGameID(ctx, gameID); err == nil {
		return ErrGameIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *userService) ListMembers(ctx context.Context, req *dto.MemberListRequest) ([]dto.MemberResponse, error) {
	users, err := s.repo.User.List(ctx, req.Job)
	if err != nil {
		return nil, err
	}

	members := make([]dto.MemberResponse, 0, len(users))
	for _, u := range users {
		members = append(members, dto.MemberResponse{
			GameID:  u.GameIDOrEmpty(),
			Job:     u.Job,
			IsAdmin: u.IsAdmin,
			OnLeave: u.OnLeave,
		})
	}
	return members, nil
}

func (s *userService) ToggleLeave(ctx context.Context, actorGameID string, req *dto.ToggleLeaveRequest) error {
	user, err := s.repo.User.GetByGameID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	user.OnLeave = *req.OnLeave
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新请假状态失败", zap.String("game_id", req.GameID), zap.Error(err))
		return err
	}

	state := "正常"
	if user.OnLeave {
		state = "請假"
	}
	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 将 %s 的状态设为 %s", actorGameID, req.GameID, state),
		model.LogTypeOther)
	return nil
}

func (s *userService) ToggleAdmin(ctx context.Context, actorGameID string, req *dto.ToggleAdminRequest) error {
	user, err := s.repo.User.GetByGameID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	user.IsAdmin = *req.IsAdmin
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新管理员权限失败", zap.String("game_id", req.GameID), zap.Error(err))
		return err
	}

	perm := "撤銷管理員"
	if user.IsAdmin {
		perm = "設為管理員"
	}
	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 将 %s %s", actorGameID, req.GameID, perm),
		model.LogTypeOther)
	return nil
}

func (s *userService) DeleteMember(ctx context.Context, actorUserID, actorGameID string, req *dto.DeleteMemberRequest) error {
	user, err := s.repo.User.GetByGameID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if user.UserID == actorUserID {
		return ErrDeleteSelf
	}

	// 级联清理该游戏 ID 名下的一切记录
	if err := s.repo.Registration.DeleteByGameID(ctx, req.GameID); err != nil {
		return err
	}
	if err := s.repo.Leave.DeleteByGameID(ctx, req.GameID); err != nil {
		return err
	}
	if err := s.repo.Attendance.DeleteByGameID(ctx, req.GameID); err != nil {
		return err
	}
	if err := s.repo.User.Delete(ctx, user.UserID); err != nil {
		s.logger.Error("删除成员失败", zap.String("game_id", req.GameID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s 删除成员 %s", actorGameID, req.GameID),
		model.LogTypeOther)
	return nil
}

func (s *userService) Stats(ctx context.Context, battleID string) (*dto.StatsResponse, error) {
	total, err := s.repo.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	onLeave, err := s.repo.User.CountOnLeave(ctx)
	if err != nil {
		return nil, err
	}

	var registered int64
	if battleID != "" {
		registered, err = s.repo.Registration.CountByBattle(ctx, battleID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.StatsResponse{
		TotalMembers: total,
		Registered:   registered,
		OnLeave:      onLeave,
	}, nil
}

// toUserResponse 模型转响应
func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.UserID,
		DiscordID:       u.DiscordID,
		DiscordUsername: u.DiscordUsername,
		GameID:          u.GameIDOrEmpty(),
		Job:             u.Job,
		IsAdmin:         u.IsAdmin,
		OnLeave:         u.OnLeave,
		NeedsSetup:      u.GameIDOrEmpty() == "" || u.Job == "",
	}
}
