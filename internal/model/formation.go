package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 阵型 JSONB 自定义类型 ──
//
// 阵型是固定嵌套结构：团 → 小队 → 格子（职业 + 玩家）。
// 切片保持提交顺序，重复校验按 团 → 小队 → 格子 的顺序扫描。

// FormationSlot 阵型格子：一个职业位置及其指派的玩家
// GameID 为空表示该格未指派
type FormationSlot struct {
	Job    string `json:"job"`
	GameID string `json:"game_id,omitempty"`
}

// FormationTeam 一个小队及其全部格子
type FormationTeam struct {
	Name  string          `json:"name"`
	Slots []FormationSlot `json:"slots"`
}

// FormationGroup 一个团及其下属小队
type FormationGroup struct {
	Name  string          `json:"name"`
	Teams []FormationTeam `json:"teams"`
}

// Formation 一场帮战的完整阵型，整体读写（保存即全量覆盖）
// 对应 battles.formation JSONB 列，实现 GORM Scanner/Valuer 接口
type Formation struct {
	Groups []FormationGroup `json:"groups"`
}

// Scan 将 JSONB 文本解析为 Formation
func (f *Formation) Scan(src interface{}) error {
	if src == nil {
		*f = Formation{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Formation.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*f = Formation{}
		return nil
	}
	return json.Unmarshal(data, f)
}

// Value 将 Formation 序列化为 JSONB 文本
func (f Formation) Value() (driver.Value, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// IsEmpty 阵型是否完全未填写
func (f *Formation) IsEmpty() bool {
	return len(f.Groups) == 0
}

// FindSlot 返回指定玩家所在的 (团, 小队, 职业)，未上阵时 found=false
func (f *Formation) FindSlot(gameID string) (group, team, job string, found bool) {
	if gameID == "" {
		return "", "", "", false
	}
	for _, g := range f.Groups {
		for _, t := range g.Teams {
			for _, s := range t.Slots {
				if s.GameID == gameID {
					return g.Name, t.Name, s.Job, true
				}
			}
		}
	}
	return "", "", "", false
}

// Contains 玩家是否出现在阵型中
func (f *Formation) Contains(gameID string) bool {
	_, _, _, found := f.FindSlot(gameID)
	return found
}

// TeamOf 返回玩家所在小队名称，未上阵时返回空串
func (f *Formation) TeamOf(gameID string) string {
	_, team, _, found := f.FindSlot(gameID)
	if !found {
		return ""
	}
	return team
}
