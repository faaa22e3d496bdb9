package dto

import (
	"time"

	"github.com/cheivoy/battle-system/internal/model"
)

// OpenBattleRequest 开启新帮战
type OpenBattleRequest struct {
	Date     time.Time `json:"date"     binding:"required"`
	Deadline time.Time `json:"deadline" binding:"required"`
}

// BattleIDRequest 显式指定帮战（为空时解析为当前开放场次）
type BattleIDRequest struct {
	BattleID string `json:"battle_id" form:"battle_id"`
}

// BattleResponse 帮战信息响应
type BattleResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Deadline time.Time `json:"deadline"`
	Status   string    `json:"status"`
}

// NewBattleResponse 从模型构造响应
func NewBattleResponse(b *model.Battle) *BattleResponse {
	return &BattleResponse{
		ID:       b.BattleID,
		Date:     b.BattleDate,
		Deadline: b.Deadline,
		Status:   b.Status,
	}
}
