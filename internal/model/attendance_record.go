package model

import "time"

// AttendanceRecord 出勤记录表 — 对应 attendance_records
// 确认帮战时一次性写入，(GameID, BattleID) 唯一，写入后不再变更
type AttendanceRecord struct {
	AttendanceRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"attendance_record_id"`
	GameID             string    `gorm:"type:varchar(20);not null;uniqueIndex:uniq_att_gb" json:"game_id"`
	BattleID           string    `gorm:"type:uuid;not null;uniqueIndex:uniq_att_gb"        json:"battle_id"`
	Attended           bool      `gorm:"not null"                                          json:"attended"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                json:"created_at"`

	// 关联
	Battle *Battle `gorm:"foreignKey:BattleID;references:BattleID" json:"battle,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }
