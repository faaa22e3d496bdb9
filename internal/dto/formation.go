package dto

import "github.com/cheivoy/battle-system/internal/model"

// SaveFormationRequest 保存阵型（全量覆盖）
type SaveFormationRequest struct {
	BattleID  string          `json:"battle_id"`
	Formation model.Formation `json:"formation" binding:"required"`
}

// FormationAdminResponse 管理员阵型视图：完整阵型 + 按职业分组的候选名单
type FormationAdminResponse struct {
	Formation  model.Formation                   `json:"formation"`
	Candidates map[string][]RegistrationResponse `json:"candidates"` // job → 已报名玩家
}

// MemberSlotResponse 成员阵型视图：只含本人格子
type MemberSlotResponse struct {
	Published bool   `json:"published"`
	Assigned  bool   `json:"assigned"`
	Group     string `json:"group,omitempty"`
	Team      string `json:"team,omitempty"`
	Job       string `json:"job,omitempty"`
}
