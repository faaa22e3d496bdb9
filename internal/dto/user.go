package dto

// UserResponse 成员信息响应
type UserResponse struct {
	ID              string `json:"id"`
	DiscordID       string `json:"discord_id"`
	DiscordUsername string `json:"discord_username"`
	GameID          string `json:"game_id,omitempty"`
	Job             string `json:"job,omitempty"`
	IsAdmin         bool   `json:"is_admin"`
	OnLeave         bool   `json:"on_leave"`
	NeedsSetup      bool   `json:"needs_setup"` // 尚未设定游戏 ID 或职业
}

// SetupRequest 首次设定游戏 ID 与职业
type SetupRequest struct {
	GameID string `json:"game_id" binding:"required"`
	Job    string `json:"job"     binding:"required"`
}

// ChangeJobRequest 更换职业请求
type ChangeJobRequest struct {
	Job string `json:"job" binding:"required"`
}

// ChangeGameIDRequest 更换游戏 ID 请求
type ChangeGameIDRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// ── 成员管理（管理员） ──

// MemberListRequest 成员列表查询
type MemberListRequest struct {
	Job string `form:"job"`
}

// MemberResponse 成员列表行
type MemberResponse struct {
	GameID  string `json:"game_id"`
	Job     string `json:"job,omitempty"`
	IsAdmin bool   `json:"is_admin"`
	OnLeave bool   `json:"on_leave"`
}

// ToggleLeaveRequest 切换请假状态
type ToggleLeaveRequest struct {
	GameID  string `json:"game_id"  binding:"required"`
	OnLeave *bool  `json:"on_leave" binding:"required"`
}

// ToggleAdminRequest 切换管理员权限
type ToggleAdminRequest struct {
	GameID  string `json:"game_id"  binding:"required"`
	IsAdmin *bool  `json:"is_admin" binding:"required"`
}

// DeleteMemberRequest 删除成员
type DeleteMemberRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// StatsResponse 管理面板统计
type StatsResponse struct {
	TotalMembers int64 `json:"total_members"`
	Registered   int64 `json:"registered"`
	OnLeave      int64 `json:"on_leave"`
}
