package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// AttendanceRepository 考勤流水数据访问接口
type AttendanceRepository interface {
	// Upsert 按 (uid, date, period_index) 冲突覆盖，保证重复标记幂等
	Upsert(ctx context.Context, log *model.AttendanceLog) error
	ListByUserAndRange(ctx context.Context, uid string, start, end time.Time) ([]model.AttendanceLog, error)
	ListByUser(ctx context.Context, uid string) ([]model.AttendanceLog, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, log *model.AttendanceLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}, {Name: "date"}, {Name: "period_index"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_id", "status", "marked_at",
			}),
		}).
		Create(log).Error
}

func (r *attendanceRepo) ListByUserAndRange(ctx context.Context, uid string, start, end time.Time) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("uid = ? AND date >= ? AND date <= ?", uid, start, end).
		Order("date ASC, period_index ASC").
		Find(&logs).Error
	return logs, err
}

func (r *attendanceRepo) ListByUser(ctx context.Context, uid string) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("date ASC, period_index ASC").
		Find(&logs).Error
	return logs, err
}
