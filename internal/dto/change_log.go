package dto

import "time"

// ChangeLogListRequest 变更日志查询（管理员）
type ChangeLogListRequest struct {
	PaginationRequest
	Date    string `form:"date"`    // YYYY-MM-DD，按天过滤
	GameID  string `form:"game_id"` // 按操作者过滤
	LogType string `form:"type"`    // 按类别过滤
}

// ChangeLogResponse 变更日志行
type ChangeLogResponse struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Message   string    `json:"message"`
	LogType   string    `json:"log_type"`
	CreatedAt time.Time `json:"created_at"`
}
