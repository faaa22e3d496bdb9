package dto

import "time"

// AttendanceStats 出勤统计
type AttendanceStats struct {
	Attended       int    `json:"attended"`
	Absent         int    `json:"absent"`
	AttendanceRate string `json:"attendance_rate"` // "75.00"，无记录时 "0.00"
}

// AttendanceRecordRow 出勤明细行
type AttendanceRecordRow struct {
	Date       time.Time `json:"date"`
	BattleName string    `json:"battle_name"`
	Team       string    `json:"team"` // 未上阵为 "-"
	Attended   bool      `json:"attended"`
}

// AttendanceSummaryResponse 个人出勤汇总
type AttendanceSummaryResponse struct {
	Stats   AttendanceStats       `json:"stats"`
	Records []AttendanceRecordRow `json:"records"`
}
