package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 测试辅助 ──

func setupTestAttendanceService(cfg *config.Config) (AttendanceService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewAttendanceService(cfg, repo, zap.NewNop())
	return svc, repo
}

// ── RecordForBattle 测试 ──

func TestAttendanceService_RecordForBattle_FormationPolicy(t *testing.T) {
	svc, repo := setupTestAttendanceService(newTestConfig())
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	ctx := context.Background()

	for _, gameID := range []string{"p1", "p2", "p3"} {
		err := repo.Registration.Create(ctx, &model.Registration{
			GameID: gameID, BattleID: battle.BattleID, Job: "鐵衣",
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	battle.Formation = singleSlotFormation("進攻隊", "鐵衣", "p1")

	if err := svc.RecordForBattle(ctx, battle); err != nil {
		t.Fatalf("记录出勤应成功: %v", err)
	}

	records, _ := repo.Attendance.ListByBattle(ctx, battle.BattleID)
	if len(records) != 3 {
		t.Fatalf("每位报名者一条记录，期望 3，实际=%d", len(records))
	}
	attended := map[string]bool{}
	for _, r := range records {
		attended[r.GameID] = r.Attended
	}
	if !attended["p1"] {
		t.Error("p1 在阵型中，应出勤")
	}
	if attended["p2"] || attended["p3"] {
		t.Error("未上阵的报名者应记为缺席")
	}
}

func TestAttendanceService_RecordForBattle_RegisteredPolicy(t *testing.T) {
	cfg := newTestConfig()
	cfg.Guild.AttendancePolicy = "registered"
	svc, repo := setupTestAttendanceService(cfg)
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	ctx := context.Background()

	err := repo.Registration.Create(ctx, &model.Registration{
		GameID: "p1", BattleID: battle.BattleID, Job: "鐵衣",
	})
	if err != nil {
		t.Fatal(err)
	}
	// 阵型为空，registered 策略下报名即出勤

	if err := svc.RecordForBattle(ctx, battle); err != nil {
		t.Fatal(err)
	}
	records, _ := repo.Attendance.ListByBattle(ctx, battle.BattleID)
	if len(records) != 1 || !records[0].Attended {
		t.Error("registered 策略下报名者应直接记为出勤")
	}
}

func TestAttendanceService_RecordForBattle_Idempotent(t *testing.T) {
	svc, repo := setupTestAttendanceService(newTestConfig())
	battle := createOpenBattle(t, repo, time.Now().Add(24*time.Hour))
	ctx := context.Background()

	err := repo.Registration.Create(ctx, &model.Registration{
		GameID: "p1", BattleID: battle.BattleID, Job: "鐵衣",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.RecordForBattle(ctx, battle); err != nil {
		t.Fatal(err)
	}
	// 重跑不应产生重复行
	if err := svc.RecordForBattle(ctx, battle); err != nil {
		t.Fatalf("重跑应幂等: %v", err)
	}

	records, _ := repo.Attendance.ListByBattle(ctx, battle.BattleID)
	if len(records) != 1 {
		t.Errorf("期望 1 条记录，实际=%d", len(records))
	}
}

// ── Summary 测试 ──

func TestAttendanceService_Summary_Rate(t *testing.T) {
	svc, repo := setupTestAttendanceService(newTestConfig())
	createTestMember(t, repo, "uid-001", "player1", "鐵衣")
	ctx := context.Background()

	// 4 场：出勤 3 缺席 1 → 75.00
	for i, attended := range []bool{true, true, true, false} {
		battle := &model.Battle{
			BattleDate: time.Now().Add(time.Duration(-i*7*24) * time.Hour),
			Deadline:   time.Now().Add(time.Duration(-i*7*24-2) * time.Hour),
			Status:     model.BattleStatusConfirmed,
		}
		if err := repo.Battle.Create(ctx, battle); err != nil {
			t.Fatal(err)
		}
		err := repo.Attendance.Create(ctx, &model.AttendanceRecord{
			GameID:   "player1",
			BattleID: battle.BattleID,
			Attended: attended,
			Battle:   battle,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	summary, err := svc.Summary(ctx, "uid-001")
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.Stats.Attended != 3 || summary.Stats.Absent != 1 {
		t.Errorf("期望出勤 3 缺席 1，实际=%d/%d", summary.Stats.Attended, summary.Stats.Absent)
	}
	if summary.Stats.AttendanceRate != "75.00" {
		t.Errorf("期望出勤率 75.00，实际=%s", summary.Stats.AttendanceRate)
	}
	if len(summary.Records) != 4 {
		t.Errorf("期望 4 条明细，实际=%d", len(summary.Records))
	}
}

func TestAttendanceService_Summary_Empty(t *testing.T) {
	svc, repo := setupTestAttendanceService(newTestConfig())
	createTestMember(t, repo, "uid-001", "player1", "鐵衣")

	summary, err := svc.Summary(context.Background(), "uid-001")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Stats.AttendanceRate != "0.00" {
		t.Errorf("无记录时出勤率应为 0.00，实际=%s", summary.Stats.AttendanceRate)
	}
	if len(summary.Records) != 0 {
		t.Errorf("无记录时明细应为空，实际=%d", len(summary.Records))
	}
}

func TestAttendanceService_Summary_TeamFromFormation(t *testing.T) {
	svc, repo := setupTestAttendanceService(newTestConfig())
	createTestMember(t, repo, "uid-001", "player1", "鐵衣")
	ctx := context.Background()

	battle := &model.Battle{
		BattleDate: time.Now(),
		Deadline:   time.Now().Add(-2 * time.Hour),
		Status:     model.BattleStatusConfirmed,
		Formation:  singleSlotFormation("進攻隊", "鐵衣", "player1"),
	}
	if err := repo.Battle.Create(ctx, battle); err != nil {
		t.Fatal(err)
	}
	err := repo.Attendance.Create(ctx, &model.AttendanceRecord{
		GameID: "player1", BattleID: battle.BattleID, Attended: true, Battle: battle,
	})
	if err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Summary(ctx, "uid-001")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Records[0].Team != "進攻隊" {
		t.Errorf("期望小队 進攻隊，实际=%s", summary.Records[0].Team)
	}
}
