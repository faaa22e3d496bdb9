package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Battle       BattleRepository
	Registration RegistrationRepository
	Leave        LeaveRepository
	Attendance   AttendanceRepository
	ChangeLog    ChangeLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Battle:       NewBattleRepo(db),
		Registration: NewRegistrationRepo(db),
		Leave:        NewLeaveRepo(db),
		Attendance:   NewAttendanceRepo(db),
		ChangeLog:    NewChangeLogRepo(db),
	}
}
