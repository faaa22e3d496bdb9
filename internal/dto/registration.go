package dto

// ProxyRegisterRequest 代报名请求
type ProxyRegisterRequest struct {
	BattleID string `json:"battle_id"`
	TargetID string `json:"target_id" binding:"required"`
	Reason   string `json:"reason"    binding:"required"`
}

// RegistrationResponse 报名行
type RegistrationResponse struct {
	GameID   string `json:"game_id"`
	Job      string `json:"job,omitempty"`
	IsProxy  bool   `json:"is_proxy"`
	ProxyBy  string `json:"proxy_by,omitempty"`
	IsBackup bool   `json:"is_backup"`
}

// RegistrationStatusResponse 本人报名状态
type RegistrationStatusResponse struct {
	Registered bool   `json:"registered"`
	IsBackup   bool   `json:"is_backup"`
	BattleID   string `json:"battle_id,omitempty"`
}
