package model

import "time"

// 请假单状态
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest 请假表 — 对应 leave_requests
// 报名校验只排除 rejected 的请假单
type LeaveRequest struct {
	LeaveRequestID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_request_id"`
	GameID         string    `gorm:"type:varchar(20);not null;index"                json:"game_id"`
	LeaveDate      time.Time `gorm:"type:date;not null"                             json:"leave_date"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel
}

// TableName 指定表名
func (LeaveRequest) TableName() string { return "leave_requests" }

// DateOnly 取 t 在其所在时区的日历日，规整为 UTC 零点。
// leave_date 为 DATE 列，写入与查询两侧必须经过同一规整，
// 否则非 UTC 时区的当日零点会落到前一个 UTC 日。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
