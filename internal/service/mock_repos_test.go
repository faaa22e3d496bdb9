package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/model"
	"github.com/cheivoy/battle-system/internal/repository"
)

// ── Mock Repositories ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("test-user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByDiscordID(_ context.Context, discordID string) (*model.User, error) {
	for _, u := range m.users {
		if u.DiscordID == discordID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByGameID(_ context.Context, gameID string) (*model.User, error) {
	for _, u := range m.users {
		if u.GameIDOrEmpty() == gameID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, job string) ([]model.User, error) {
	var all []model.User
	for _, u := range m.users {
		if job != "" && u.Job != job {
			continue
		}
		all = append(all, *u)
	}
	return all, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) CountOnLeave(_ context.Context) (int64, error) {
	var total int64
	for _, u := range m.users {
		if u.OnLeave {
			total++
		}
	}
	return total, nil
}

type mockBattleRepo struct {
	battles map[string]*model.Battle // key: battle_id
	seq     int
}

func newMockBattleRepo() *mockBattleRepo {
	return &mockBattleRepo{battles: make(map[string]*model.Battle)}
}

func (m *mockBattleRepo) Create(_ context.Context, battle *model.Battle) error {
	if battle.BattleID == "" {
		m.seq++
		battle.BattleID = fmt.Sprintf("test-battle-%d", m.seq)
	}
	m.battles[battle.BattleID] = battle
	return nil
}

func (m *mockBattleRepo) GetByID(_ context.Context, id string) (*model.Battle, error) {
	if b, ok := m.battles[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBattleRepo) GetOpen(_ context.Context) (*model.Battle, error) {
	for _, b := range m.battles {
		if b.Status == model.BattleStatusOpen {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBattleRepo) Update(_ context.Context, battle *model.Battle) error {
	m.battles[battle.BattleID] = battle
	return nil
}

func (m *mockBattleRepo) List(_ context.Context) ([]model.Battle, error) {
	var all []model.Battle
	for _, b := range m.battles {
		all = append(all, *b)
	}
	// 按日期升序
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].BattleDate.Before(all[i].BattleDate) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	return all, nil
}

type mockRegistrationRepo struct {
	regs map[string]*model.Registration // key: game_id|battle_id
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{regs: make(map[string]*model.Registration)}
}

func regKey(gameID, battleID string) string {
	return gameID + "|" + battleID
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.Registration) error {
	key := regKey(reg.GameID, reg.BattleID)
	if _, ok := m.regs[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	reg.CreatedAt = time.Now()
	m.regs[key] = reg
	return nil
}

func (m *mockRegistrationRepo) Get(_ context.Context, gameID, battleID string) (*model.Registration, error) {
	if r, ok := m.regs[regKey(gameID, battleID)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) Delete(_ context.Context, gameID, battleID string) error {
	delete(m.regs, regKey(gameID, battleID))
	return nil
}

func (m *mockRegistrationRepo) DeleteByGameID(_ context.Context, gameID string) error {
	for key, r := range m.regs {
		if r.GameID == gameID {
			delete(m.regs, key)
		}
	}
	return nil
}

func (m *mockRegistrationRepo) ListByBattle(_ context.Context, battleID string) ([]model.Registration, error) {
	var all []model.Registration
	for _, r := range m.regs {
		if r.BattleID == battleID {
			all = append(all, *r)
		}
	}
	// 按报名时间升序
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].CreatedAt.Before(all[i].CreatedAt) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	return all, nil
}

func (m *mockRegistrationRepo) CountByBattle(_ context.Context, battleID string) (int64, error) {
	var total int64
	for _, r := range m.regs {
		if r.BattleID == battleID {
			total++
		}
	}
	return total, nil
}

type mockLeaveRepo struct {
	leaves map[string]*model.LeaveRequest // key: leave_request_id
	seq    int
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[string]*model.LeaveRequest)}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.LeaveRequest) error {
	if leave.LeaveRequestID == "" {
		m.seq++
		leave.LeaveRequestID = fmt.Sprintf("test-leave-%d", m.seq)
	}
	m.leaves[leave.LeaveRequestID] = leave
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	if l, ok := m.leaves[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) GetActiveByGameIDAndDate(_ context.Context, gameID string, date time.Time) (*model.LeaveRequest, error) {
	day := model.DateOnly(date)
	for _, l := range m.leaves {
		if l.GameID == gameID && model.DateOnly(l.LeaveDate).Equal(day) && l.Status != model.LeaveStatusRejected {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Update(_ context.Context, leave *model.LeaveRequest) error {
	m.leaves[leave.LeaveRequestID] = leave
	return nil
}

func (m *mockLeaveRepo) DeleteByGameID(_ context.Context, gameID string) error {
	for key, l := range m.leaves {
		if l.GameID == gameID {
			delete(m.leaves, key)
		}
	}
	return nil
}

func (m *mockLeaveRepo) ListByGameID(_ context.Context, gameID string) ([]model.LeaveRequest, error) {
	var all []model.LeaveRequest
	for _, l := range m.leaves {
		if l.GameID == gameID {
			all = append(all, *l)
		}
	}
	return all, nil
}

func (m *mockLeaveRepo) ListPending(_ context.Context) ([]model.LeaveRequest, error) {
	var all []model.LeaveRequest
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusPending {
			all = append(all, *l)
		}
	}
	return all, nil
}

type mockAttendanceRepo struct {
	records   map[string]*model.AttendanceRecord // key: game_id|battle_id
	createErr error                              // 注入写入故障
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := regKey(record.GameID, record.BattleID)
	if _, ok := m.records[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	record.CreatedAt = time.Now()
	m.records[key] = record
	return nil
}

func (m *mockAttendanceRepo) Exists(_ context.Context, gameID, battleID string) (bool, error) {
	_, ok := m.records[regKey(gameID, battleID)]
	return ok, nil
}

func (m *mockAttendanceRepo) DeleteByGameID(_ context.Context, gameID string) error {
	for key, r := range m.records {
		if r.GameID == gameID {
			delete(m.records, key)
		}
	}
	return nil
}

func (m *mockAttendanceRepo) ListByGameID(_ context.Context, gameID string) ([]model.AttendanceRecord, error) {
	var all []model.AttendanceRecord
	for _, r := range m.records {
		if r.GameID == gameID {
			all = append(all, *r)
		}
	}
	return all, nil
}

func (m *mockAttendanceRepo) ListByBattle(_ context.Context, battleID string) ([]model.AttendanceRecord, error) {
	var all []model.AttendanceRecord
	for _, r := range m.records {
		if r.BattleID == battleID {
			all = append(all, *r)
		}
	}
	return all, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	var all []model.AttendanceRecord
	for _, r := range m.records {
		all = append(all, *r)
	}
	return all, nil
}

type mockChangeLogRepo struct {
	logs []model.ChangeLog
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{}
}

func (m *mockChangeLogRepo) Create(_ context.Context, log *model.ChangeLog) error {
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockChangeLogRepo) List(_ context.Context, filter repository.ChangeLogFilter, offset, limit int) ([]model.ChangeLog, int64, error) {
	var matched []model.ChangeLog
	for _, l := range m.logs {
		if filter.GameID != "" && l.GameID != filter.GameID {
			continue
		}
		if filter.LogType != "" && l.LogType != filter.LogType {
			continue
		}
		if filter.Day != nil {
			start := filter.Day.Truncate(24 * time.Hour)
			if l.CreatedAt.Before(start) || !l.CreatedAt.Before(start.Add(24*time.Hour)) {
				continue
			}
		}
		matched = append(matched, l)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── 共用测试环境 ──

// newMockRepository 全部仓储的内存实现
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Battle:       newMockBattleRepo(),
		Registration: newMockRegistrationRepo(),
		Leave:        newMockLeaveRepo(),
		Attendance:   newMockAttendanceRepo(),
		ChangeLog:    newMockChangeLogRepo(),
	}
}

// newTestConfig 填好帮会名单的测试配置
func newTestConfig() *config.Config {
	return &config.Config{
		Guild: config.GuildConfig{
			Jobs:             []string{"素問", "血河", "九靈", "龍吟", "碎夢", "神相", "鐵衣"},
			Teams:            []string{"進攻隊", "防守隊", "機動隊"},
			AttendancePolicy: "formation",
			MasterAdminID:    "discord-master",
		},
	}
}
