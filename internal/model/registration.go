package model

import "time"

// Registration 报名表 — 对应 registrations
// (GameID, BattleID) 唯一；IsBackup 表示截止后补报的后备名额
type Registration struct {
	RegistrationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"registration_id"`
	GameID         string    `gorm:"type:varchar(20);not null;uniqueIndex:uniq_reg_gb"  json:"game_id"`
	BattleID       string    `gorm:"type:uuid;not null;uniqueIndex:uniq_reg_gb"         json:"battle_id"`
	Job            string    `gorm:"type:varchar(20)"                                   json:"job,omitempty"` // 报名时的职业快照
	IsProxy        bool      `gorm:"not null;default:false"                             json:"is_proxy"`
	ProxyBy        string    `gorm:"type:varchar(20)"                                   json:"proxy_by,omitempty"`
	ProxyReason    string    `gorm:"type:varchar(200)"                                  json:"proxy_reason,omitempty"`
	IsBackup       bool      `gorm:"not null;default:false"                             json:"is_backup"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`

	// 关联
	Battle *Battle `gorm:"foreignKey:BattleID;references:BattleID" json:"battle,omitempty"`
}

// TableName 指定表名
func (Registration) TableName() string { return "registrations" }
