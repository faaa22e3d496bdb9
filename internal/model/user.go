package model

// User 成员表 — 对应 users
// DiscordID 由登录边界写入；GameID 首次设定后才参与业务
type User struct {
	UserID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	DiscordID       string  `gorm:"type:varchar(32);not null;uniqueIndex"          json:"discord_id"`
	DiscordUsername string  `gorm:"type:varchar(100);not null"                     json:"discord_username"`
	GameID          *string `gorm:"type:varchar(20)"                               json:"game_id,omitempty"`
	Job             string  `gorm:"type:varchar(20)"                               json:"job,omitempty"`
	IsAdmin         bool    `gorm:"not null;default:false"                         json:"is_admin"`
	OnLeave         bool    `gorm:"not null;default:false"                         json:"on_leave"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// GameIDOrEmpty 返回游戏 ID，未设定时为空串
func (u *User) GameIDOrEmpty() string {
	if u.GameID == nil {
		return ""
	}
	return *u.GameID
}
