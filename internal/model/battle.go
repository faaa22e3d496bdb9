package model

import "time"

// 帮战生命周期状态，只允许单向推进
const (
	BattleStatusOpen      = "open"      // 开放报名
	BattleStatusClosed    = "closed"    // 已截止
	BattleStatusPublished = "published" // 阵型已发布
	BattleStatusConfirmed = "confirmed" // 已确认并记录出勤
)

// Battle 帮战表 — 对应 battles
type Battle struct {
	BattleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"battle_id"`
	BattleDate time.Time `gorm:"not null"                                       json:"battle_date"`
	Deadline   time.Time `gorm:"not null"                                       json:"deadline"`
	Status     string    `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Formation  Formation `gorm:"type:jsonb;not null;default:'{}'"               json:"formation"`
	BaseModel
}

// TableName 指定表名
func (Battle) TableName() string { return "battles" }

// statusRank 状态在生命周期中的序号，用于单向推进校验
var statusRank = map[string]int{
	BattleStatusOpen:      0,
	BattleStatusClosed:    1,
	BattleStatusPublished: 2,
	BattleStatusConfirmed: 3,
}

// CanTransitionTo 是否允许从当前状态推进到 next
// 只允许相邻状态前移，禁止回退与跳级
func (b *Battle) CanTransitionTo(next string) bool {
	cur, ok1 := statusRank[b.Status]
	nxt, ok2 := statusRank[next]
	if !ok1 || !ok2 {
		return false
	}
	return nxt == cur+1
}

// DeadlinePassed 报名截止时间是否已过
func (b *Battle) DeadlinePassed(now time.Time) bool {
	return now.After(b.Deadline)
}
