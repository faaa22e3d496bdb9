package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 请假模块业务错误 ──

var (
	ErrLeaveExists   = errors.New("该日期已有请假单")
	ErrLeaveNotFound = errors.New("请假单不存在")
	ErrLeaveReviewed = errors.New("请假单已审批")
)

// LeaveService 请假业务接口
type LeaveService interface {
	// Submit 提交某日的请假单
	Submit(ctx context.Context, userID string, req *dto.SubmitLeaveRequest) (*dto.LeaveResponse, error)
	// MyLeaves 查询本人全部请假单
	MyLeaves(ctx context.Context, userID string) ([]dto.LeaveResponse, error)
	// Review 审批请假单（管理员）
	Review(ctx context.Context, actorGameID string, req *dto.ReviewLeaveRequest) error
	// ListPending 待审批请假单（管理员）
	ListPending(ctx context.Context) ([]dto.LeaveResponse, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Submit(ctx context.Context, userID string, req *dto.SubmitLeaveRequest) (*dto.LeaveResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	gameID := user.GameIDOrEmpty()
	if gameID == "" {
		return nil, ErrUserNotSetup
	}

	day := model.DateOnly(req.Date)
	if _, err := s.repo.Leave.GetActiveByGameIDAndDate(ctx, gameID, day); err == nil {
		return nil, ErrLeaveExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	leave := &model.LeaveRequest{
		GameID:    gameID,
		LeaveDate: day,
		Status:    model.LeaveStatusPending,
	}
	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("提交请假失败", zap.String("game_id", gameID), zap.Error(err))
		return nil, err
	}

	appendChangeLog(ctx, s.repo, s.logger, gameID,
		fmt.Sprintf("用户 %s 提交 %s 请假", gameID, day.Format("2006/01/02")),
		model.LogTypeLeave)

	return toLeaveResponse(leave), nil
}

func (s *leaveService) MyLeaves(ctx context.Context, userID string) ([]dto.LeaveResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	gameID := user.GameIDOrEmpty()
	if gameID == "" {
		return nil, ErrUserNotSetup
	}

	leaves, err := s.repo.Leave.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

func (s *leaveService) Review(ctx context.Context, actorGameID string, req *dto.ReviewLeaveRequest) error {
	leave, err := s.repo.Leave.GetByID(ctx, req.LeaveRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeaveNotFound
		}
		return err
	}
	if leave.Status != model.LeaveStatusPending {
		return ErrLeaveReviewed
	}

	verdict := "駁回"
	leave.Status = model.LeaveStatusRejected
	if *req.Approve {
		verdict = "批准"
		leave.Status = model.LeaveStatusApproved
	}
	if err := s.repo.Leave.Update(ctx, leave); err != nil {
		s.logger.Error("审批请假失败", zap.String("leave_request_id", req.LeaveRequestID), zap.Error(err))
		return err
	}

	appendChangeLog(ctx, s.repo, s.logger, actorGameID,
		fmt.Sprintf("用户 %s %s了 %s 的 %s 请假", actorGameID, verdict, leave.GameID, leave.LeaveDate.Format("2006/01/02")),
		model.LogTypeLeave)
	return nil
}

func (s *leaveService) ListPending(ctx context.Context) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

func toLeaveResponse(l *model.LeaveRequest) *dto.LeaveResponse {
	return &dto.LeaveResponse{
		ID:     l.LeaveRequestID,
		GameID: l.GameID,
		Date:   l.LeaveDate,
		Status: l.Status,
	}
}

func toLeaveResponses(leaves []model.LeaveRequest) []dto.LeaveResponse {
	result := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		result = append(result, *toLeaveResponse(&leaves[i]))
	}
	return result
}
