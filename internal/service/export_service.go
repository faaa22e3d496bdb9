package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords = errors.New("暂无出勤记录可导出")
	ErrExportNoBattles = errors.New("暂无帮战可导出")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 出勤统计导出为 Excel (.xlsx)，每位成员一行
//   - 帮战日程导出为 iCalendar (.ics)，供成员订阅
//   - Excel 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportAttendance 导出全员出勤统计为 Excel
	ExportAttendance(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportBattleCalendar 导出帮战日程为 iCalendar 文本
	ExportBattleCalendar(ctx context.Context) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportAttendance 列：游戏 ID / 职业 / 出勤 / 缺席 / 出勤率
func (s *exportService) ExportAttendance(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.Attendance.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询出勤记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoRecords
	}

	// 按成员聚合
	type memberStat struct {
		attended int
		total    int
	}
	stats := make(map[string]*memberStat)
	order := make([]string, 0)
	for _, r := range records {
		st, ok := stats[r.GameID]
		if !ok {
			st = &memberStat{}
			stats[r.GameID] = st
			order = append(order, r.GameID)
		}
		st.total++
		if r.Attended {
			st.attended++
		}
	}

	users, err := s.repo.User.List(ctx, "")
	if err != nil {
		return nil, "", err
	}
	jobs := make(map[string]string, len(users))
	for _, u := range users {
		jobs[u.GameIDOrEmpty()] = u.Job
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "出勤統計"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"遊戲 ID", "職業", "出勤", "缺席", "出勤率"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, gameID := range order {
		st := stats[gameID]
		rate := float64(st.attended) / float64(st.total) * 100
		values := []interface{}{
			gameID,
			jobs[gameID],
			st.attended,
			st.total - st.attended,
			fmt.Sprintf("%.2f%%", rate),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) ExportBattleCalendar(ctx context.Context) (string, error) {
	battles, err := s.repo.Battle.List(ctx)
	if err != nil {
		s.logger.Error("查询帮战列表失败", zap.Error(err))
		return "", err
	}
	if len(battles) == 0 {
		return "", ErrExportNoBattles
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//battle-system//guild battles//ZH")

	for _, b := range battles {
		event := cal.AddEvent(fmt.Sprintf("battle-%s", b.BattleID))
		event.SetSummary(fmt.Sprintf("幫戰 %s", b.BattleDate.Format("2006/01/02")))
		event.SetStartAt(b.BattleDate)
		event.SetEndAt(b.BattleDate.Add(2 * time.Hour))
		event.SetDescription(fmt.Sprintf("報名截止：%s", b.Deadline.Format("2006/01/02 15:04")))
		event.SetDtStampTime(time.Now())
	}

	return cal.Serialize(), nil
}
