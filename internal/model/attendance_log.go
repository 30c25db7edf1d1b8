package model

import "time"

// 考勤状态
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// AttendanceLog 考勤流水 — 对应 attendance_logs
// (uid, date, period_index) 唯一，重复标记按覆盖处理
type AttendanceLog struct {
	AttendanceLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"attendance_log_id"`
	UID             string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_attendance_logs_slot;index:idx_attendance_logs_uid_date" json:"uid"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_logs_slot;index:idx_attendance_logs_uid_date"         json:"date"`
	PeriodIndex     int       `gorm:"type:smallint;not null;uniqueIndex:uq_attendance_logs_slot" json:"period_index"`
	SubjectID       string    `gorm:"type:varchar(100);not null"                              json:"subject_id"`
	Status          string    `gorm:"type:varchar(10);not null"                               json:"status"`
	MarkedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                      json:"marked_at"`
}

// TableName 指定表名
func (AttendanceLog) TableName() string { return "attendance_logs" }

// IsValidStatus 校验考勤状态取值
func IsValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}
