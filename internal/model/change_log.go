package model

import "time"

// 变更日志类别
const (
	LogTypeRegister  = "register"
	LogTypeCancel    = "cancel"
	LogTypeLeave     = "leave"
	LogTypeJobChange = "job_change"
	LogTypeIDChange  = "id_change"
	LogTypeOther     = "other"
)

// ChangeLog 变更日志表 — 对应 change_logs
// 只追加，不修改不删除
type ChangeLog struct {
	ChangeLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_log_id"`
	GameID      string    `gorm:"type:varchar(20);not null;index"                json:"game_id"` // 操作者
	Message     string    `gorm:"type:varchar(500);not null"                     json:"message"`
	LogType     string    `gorm:"type:varchar(20);not null"                      json:"log_type"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"created_at"`
}

// TableName 指定表名
func (ChangeLog) TableName() string { return "change_logs" }
