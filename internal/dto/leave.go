package dto

import "time"

// SubmitLeaveRequest 提交请假
type SubmitLeaveRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// ReviewLeaveRequest 审批请假（管理员）
type ReviewLeaveRequest struct {
	LeaveRequestID string `json:"leave_request_id" binding:"required"`
	Approve        *bool  `json:"approve"          binding:"required"`
}

// LeaveResponse 请假单响应
type LeaveResponse struct {
	ID     string    `json:"id"`
	GameID string    `json:"game_id"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}
