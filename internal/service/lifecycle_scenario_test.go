package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/internal/dto"
	"github.com/cheivoy/battle-system/internal/model"
)

// 完整走一遍帮战生命周期：
// 开启 → 成员报名 → 截止 → 排阵 → 发布 → 确认 → 出勤入账
func TestScenario_FullBattleLifecycle(t *testing.T) {
	repo := newMockRepository()
	cfg := newTestConfig()
	logger := zap.NewNop()

	attendanceSvc := NewAttendanceService(cfg, repo, logger)
	battleSvc := NewBattleService(repo, attendanceSvc, logger)
	regSvc := NewRegistrationService(cfg, repo, logger)
	formationSvc := NewFormationService(cfg, repo, logger)

	ctx := context.Background()
	createTestMember(t, repo, "uid-u", "playerU", "鐵衣")

	// 管理员开启帮战
	date := time.Now().Add(48 * time.Hour)
	battle, err := battleSvc.Open(ctx, &dto.OpenBattleRequest{
		Date:     date,
		Deadline: date.Add(-2 * time.Hour),
	}, "admin001")
	if err != nil {
		t.Fatalf("开启帮战失败: %v", err)
	}

	// 成员在截止前报名，不应是后备
	reg, err := regSvc.Register(ctx, "uid-u", battle)
	if err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if reg.IsBackup {
		t.Error("截止前报名不应是后备名额")
	}

	// 截止报名
	battle, err = battleSvc.Close(ctx, battle.BattleID, "admin001")
	if err != nil {
		t.Fatalf("截止失败: %v", err)
	}

	// 截止后不可再报名
	createTestMember(t, repo, "uid-late", "playerL", "素問")
	if _, err := regSvc.Register(ctx, "uid-late", battle); !errors.Is(err, ErrRegistrationOver) {
		t.Errorf("截止后报名应被拒绝，实际: %v", err)
	}

	// 管理员排阵：playerU 排进 1 团 進攻隊 鐵衣位
	formation := singleSlotFormation("進攻隊", "鐵衣", "playerU")
	if err := formationSvc.Save(ctx, battle.BattleID, formation, "admin001"); err != nil {
		t.Fatalf("保存阵型失败: %v", err)
	}

	// 同一玩家占两个格子应被拒绝
	double := singleSlotFormation("進攻隊", "鐵衣", "playerU")
	double.Groups[0].Teams[0].Slots = append(double.Groups[0].Teams[0].Slots,
		model.FormationSlot{Job: "素問", GameID: "playerU"})
	var dup *DuplicateAssignmentError
	if err := formationSvc.Save(ctx, battle.BattleID, double, "admin001"); !errors.As(err, &dup) {
		t.Errorf("重复指派应被拒绝，实际: %v", err)
	}

	// 发布阵型，成员可见本人格子
	battle, err = battleSvc.Publish(ctx, battle.BattleID, "admin001")
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	slot, err := formationSvc.ReadMember(ctx, battle, "playerU")
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Assigned || slot.Team != "進攻隊" {
		t.Errorf("发布后成员应看到本人格子: %+v", slot)
	}

	// 确认，出勤入账
	if _, err := battleSvc.Confirm(ctx, battle.BattleID, "admin001"); err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	summary, err := attendanceSvc.Summary(ctx, "uid-u")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Stats.Attended != 1 || summary.Stats.Absent != 0 {
		t.Errorf("期望出勤 1 缺席 0，实际=%d/%d", summary.Stats.Attended, summary.Stats.Absent)
	}
	if summary.Stats.AttendanceRate != "100.00" {
		t.Errorf("期望出勤率 100.00，实际=%s", summary.Stats.AttendanceRate)
	}

	// 确认后阵型冻结
	if err := formationSvc.Save(ctx, battle.BattleID, formation, "admin001"); !errors.Is(err, ErrBattleConfirmed) {
		t.Errorf("确认后保存阵型应被拒绝，实际: %v", err)
	}

	// 上一场结束后可以开下一场
	nextDate := time.Now().Add(7 * 24 * time.Hour)
	if _, err := battleSvc.Open(ctx, &dto.OpenBattleRequest{
		Date:     nextDate,
		Deadline: nextDate.Add(-2 * time.Hour),
	}, "admin001"); err != nil {
		t.Errorf("上一场确认后应能开启新帮战: %v", err)
	}
}

// 请假单阻断报名，驳回后恢复
func TestScenario_LeaveBlocksRegistration(t *testing.T) {
	repo := newMockRepository()
	cfg := newTestConfig()
	logger := zap.NewNop()

	attendanceSvc := NewAttendanceService(cfg, repo, logger)
	battleSvc := NewBattleService(repo, attendanceSvc, logger)
	regSvc := NewRegistrationService(cfg, repo, logger)
	leaveSvc := NewLeaveService(repo, logger)

	ctx := context.Background()
	createTestMember(t, repo, "uid-u", "playerU", "鐵衣")

	date := time.Now().Add(48 * time.Hour)
	battle, err := battleSvc.Open(ctx, &dto.OpenBattleRequest{
		Date:     date,
		Deadline: date.Add(-2 * time.Hour),
	}, "admin001")
	if err != nil {
		t.Fatal(err)
	}

	// 帮战当日请假
	leave, err := leaveSvc.Submit(ctx, "uid-u", &dto.SubmitLeaveRequest{Date: date})
	if err != nil {
		t.Fatalf("提交请假失败: %v", err)
	}

	if _, err := regSvc.Register(ctx, "uid-u", battle); !errors.Is(err, ErrOnLeave) {
		t.Errorf("请假当日报名应被拒绝，实际: %v", err)
	}

	// 管理员驳回请假后可以报名
	approve := false
	if err := leaveSvc.Review(ctx, "admin001", &dto.ReviewLeaveRequest{
		LeaveRequestID: leave.ID, Approve: &approve,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := regSvc.Register(ctx, "uid-u", battle); err != nil {
		t.Errorf("请假驳回后报名应成功: %v", err)
	}
}
