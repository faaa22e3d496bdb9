package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 测试辅助 ──

func setupTestFormationService() (FormationService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewFormationService(newTestConfig(), repo, zap.NewNop())
	return svc, repo
}

func singleSlotFormation(team, job, gameID string) model.Formation {
	return model.Formation{
		Groups: []model.FormationGroup{{
			Name: "1",
			Teams: []model.FormationTeam{{
				Name:  team,
				Slots: []model.FormationSlot{{Job: job, GameID: gameID}},
			}},
		}},
	}
}

// ── Save 测试 ──

func TestFormationService_Save_Success(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))

	f := singleSlotFormation("進攻隊", "鐵衣", "player1")
	if err := svc.Save(context.Background(), battle.BattleID, f, "admin001"); err != nil {
		t.Fatalf("保存阵型应成功: %v", err)
	}

	saved, err := repo.Battle.GetByID(context.Background(), battle.BattleID)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Formation.Contains("player1") {
		t.Error("保存后阵型中应包含 player1")
	}
}

func TestFormationService_Save_Overwrites(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	ctx := context.Background()

	if err := svc.Save(ctx, battle.BattleID, singleSlotFormation("進攻隊", "鐵衣", "player1"), "admin001"); err != nil {
		t.Fatal(err)
	}
	// 第二次保存全量覆盖
	if err := svc.Save(ctx, battle.BattleID, singleSlotFormation("防守隊", "素問", "player2"), "admin001"); err != nil {
		t.Fatal(err)
	}

	saved, _ := repo.Battle.GetByID(ctx, battle.BattleID)
	if saved.Formation.Contains("player1") {
		t.Error("全量覆盖后不应再包含 player1")
	}
	if !saved.Formation.Contains("player2") {
		t.Error("覆盖后应包含 player2")
	}
}

func TestFormationService_Save_DuplicateAssignment(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))

	f := model.Formation{
		Groups: []model.FormationGroup{{
			Name: "1",
			Teams: []model.FormationTeam{{
				Name: "進攻隊",
				Slots: []model.FormationSlot{
					{Job: "鐵衣", GameID: "player1"},
					{Job: "素問", GameID: "player1"},
				},
			}},
		}},
	}

	err := svc.Save(context.Background(), battle.BattleID, f, "admin001")
	var dup *DuplicateAssignmentError
	if !errors.As(err, &dup) {
		t.Fatalf("期望 DuplicateAssignmentError，实际: %v", err)
	}
	if dup.GameID != "player1" {
		t.Errorf("错误应指明重复的玩家，实际=%s", dup.GameID)
	}
}

func TestFormationService_Save_EmptySlotsNotDuplicate(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))

	// 多个未指派格子不应互相视为重复
	f := model.Formation{
		Groups: []model.FormationGroup{{
			Name: "1",
			Teams: []model.FormationTeam{{
				Name: "進攻隊",
				Slots: []model.FormationSlot{
					{Job: "鐵衣"},
					{Job: "素問"},
					{Job: "血河", GameID: "player1"},
				},
			}},
		}},
	}
	if err := svc.Save(context.Background(), battle.BattleID, f, "admin001"); err != nil {
		t.Errorf("空格子不应触发重复校验: %v", err)
	}
}

func TestFormationService_Save_UnknownTeam(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))

	err := svc.Save(context.Background(), battle.BattleID, singleSlotFormation("神秘小隊", "鐵衣", "player1"), "admin001")
	if !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("期望 ErrUnknownTeam，实际: %v", err)
	}
}

func TestFormationService_Save_UnknownJob(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))

	err := svc.Save(context.Background(), battle.BattleID, singleSlotFormation("進攻隊", "刀客", "player1"), "admin001")
	if !errors.Is(err, ErrUnknownJob) {
		t.Errorf("期望 ErrUnknownJob，实际: %v", err)
	}
}

func TestFormationService_Save_ConfirmedBattle(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	battle.Status = model.BattleStatusConfirmed

	err := svc.Save(context.Background(), battle.BattleID, singleSlotFormation("進攻隊", "鐵衣", "player1"), "admin001")
	if !errors.Is(err, ErrBattleConfirmed) {
		t.Errorf("期望 ErrBattleConfirmed，实际: %v", err)
	}
}

// ── ReadAdmin 测试 ──

func TestFormationService_ReadAdmin_CandidatesByJob(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	ctx := context.Background()

	for _, reg := range []model.Registration{
		{GameID: "p1", BattleID: battle.BattleID, Job: "鐵衣"},
		{GameID: "p2", BattleID: battle.BattleID, Job: "鐵衣"},
		{GameID: "p3", BattleID: battle.BattleID, Job: "素問"},
	} {
		r := reg
		if err := repo.Registration.Create(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}

	view, err := svc.ReadAdmin(ctx, battle)
	if err != nil {
		t.Fatalf("ReadAdmin 应成功: %v", err)
	}
	if len(view.Candidates["鐵衣"]) != 2 {
		t.Errorf("期望 鐵衣 候选 2 人，实际=%d", len(view.Candidates["鐵衣"]))
	}
	if len(view.Candidates["素問"]) != 1 {
		t.Errorf("期望 素問 候选 1 人，实际=%d", len(view.Candidates["素問"]))
	}
}

// ── ReadMember 测试 ──

func TestFormationService_ReadMember_BeforePublish(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	battle.Formation = singleSlotFormation("進攻隊", "鐵衣", "player1")

	slot, err := svc.ReadMember(context.Background(), battle, "player1")
	if err != nil {
		t.Fatal(err)
	}
	if slot.Published {
		t.Error("未发布时成员不应看到阵型")
	}
	if slot.Assigned {
		t.Error("未发布时不应返回格子信息")
	}
}

func TestFormationService_ReadMember_PublishedAssigned(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	battle.Status = model.BattleStatusPublished
	battle.Formation = singleSlotFormation("進攻隊", "鐵衣", "player1")

	slot, err := svc.ReadMember(context.Background(), battle, "player1")
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Published || !slot.Assigned {
		t.Fatal("发布后上阵成员应能看到本人格子")
	}
	if slot.Group != "1" || slot.Team != "進攻隊" || slot.Job != "鐵衣" {
		t.Errorf("格子信息不符: group=%s team=%s job=%s", slot.Group, slot.Team, slot.Job)
	}
}

func TestFormationService_ReadMember_PublishedNotAssigned(t *testing.T) {
	svc, repo := setupTestFormationService()
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	battle.Status = model.BattleStatusPublished
	battle.Formation = singleSlotFormation("進攻隊", "鐵衣", "player1")

	slot, err := svc.ReadMember(context.Background(), battle, "player2")
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Published {
		t.Error("发布后应返回 published=true")
	}
	if slot.Assigned {
		t.Error("未上阵成员不应有格子")
	}
}
