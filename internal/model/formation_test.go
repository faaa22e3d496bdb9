package model

import "testing"

func sampleFormation() Formation {
	return Formation{
		Groups: []FormationGroup{
			{
				Name: "1",
				Teams: []FormationTeam{
					{
						Name: "進攻隊",
						Slots: []FormationSlot{
							{Job: "鐵衣", GameID: "player1"},
							{Job: "素問", GameID: ""},
						},
					},
					{
						Name:  "防守隊",
						Slots: []FormationSlot{{Job: "血河", GameID: "player2"}},
					},
				},
			},
		},
	}
}

func TestFormation_ScanValue_RoundTrip(t *testing.T) {
	f := sampleFormation()

	v, err := f.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}

	var decoded Formation
	if err := decoded.Scan(v); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}

	if len(decoded.Groups) != 1 {
		t.Fatalf("期望 1 个团，实际=%d", len(decoded.Groups))
	}
	if got := decoded.Groups[0].Teams[0].Slots[0].GameID; got != "player1" {
		t.Errorf("期望格子玩家=player1，实际=%s", got)
	}
}

func TestFormation_Scan_Null(t *testing.T) {
	var f Formation
	if err := f.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) 失败: %v", err)
	}
	if !f.IsEmpty() {
		t.Error("期望空阵型")
	}

	if err := f.Scan([]byte("{}")); err != nil {
		t.Fatalf("Scan({}) 失败: %v", err)
	}
	if !f.IsEmpty() {
		t.Error("期望空阵型")
	}
}

func TestFormation_FindSlot(t *testing.T) {
	f := sampleFormation()

	group, team, job, found := f.FindSlot("player1")
	if !found {
		t.Fatal("期望找到 player1")
	}
	if group != "1" || team != "進攻隊" || job != "鐵衣" {
		t.Errorf("定位错误: group=%s team=%s job=%s", group, team, job)
	}

	if _, _, _, found := f.FindSlot("nobody"); found {
		t.Error("不应找到未上阵的玩家")
	}
	// 空 ID 不应匹配任何未指派格子
	if _, _, _, found := f.FindSlot(""); found {
		t.Error("空 ID 不应匹配")
	}
}

func TestFormation_TeamOf(t *testing.T) {
	f := sampleFormation()

	if team := f.TeamOf("player2"); team != "防守隊" {
		t.Errorf("期望队伍=防守隊，实际=%s", team)
	}
	if team := f.TeamOf("nobody"); team != "" {
		t.Errorf("未上阵玩家应返回空串，实际=%s", team)
	}
}

func TestBattle_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BattleStatusOpen, BattleStatusClosed, true},
		{BattleStatusClosed, BattleStatusPublished, true},
		{BattleStatusPublished, BattleStatusConfirmed, true},
		{BattleStatusOpen, BattleStatusPublished, false}, // 跳级
		{BattleStatusClosed, BattleStatusOpen, false},    // 回退
		{BattleStatusConfirmed, BattleStatusOpen, false}, // 回退
		{BattleStatusConfirmed, BattleStatusClosed, false},
		{"draft", BattleStatusOpen, false}, // 非法状态
	}

	for _, tc := range cases {
		b := &Battle{Status: tc.from}
		if got := b.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s→%s 期望 %v，实际 %v", tc.from, tc.to, tc.want, got)
		}
	}
}
