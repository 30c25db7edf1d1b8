package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// TimetableRepository 周课表数据访问接口
type TimetableRepository interface {
	GetByUserAndSemester(ctx context.Context, uid, semesterID string) (*model.WeeklyTimetable, error)
	// GetLatest 返回用户最近更新的一份课表（semester_id 未指定时使用）
	GetLatest(ctx context.Context, uid string) (*model.WeeklyTimetable, error)
	// Upsert 按 (uid, semester_id) 冲突覆盖
	Upsert(ctx context.Context, tt *model.WeeklyTimetable) error
	Delete(ctx context.Context, uid, semesterID string) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) GetByUserAndSemester(ctx context.Context, uid, semesterID string) (*model.WeeklyTimetable, error) {
	var tt model.WeeklyTimetable
	err := r.db.WithContext(ctx).
		Where("uid = ? AND semester_id = ?", uid, semesterID).
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *timetableRepo) GetLatest(ctx context.Context, uid string) (*model.WeeklyTimetable, error) {
	var tt model.WeeklyTimetable
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("updated_at DESC").
		First(&tt).Error
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

func (r *timetableRepo) Upsert(ctx context.Context, tt *model.WeeklyTimetable) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}, {Name: "semester_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"periods_per_day", "locked", "start_date", "end_date", "days",
				"updated_at", "updated_by",
			}),
		}).
		Create(tt).Error
}

func (r *timetableRepo) Delete(ctx context.Context, uid, semesterID string) error {
	return r.db.WithContext(ctx).
		Where("uid = ? AND semester_id = ?", uid, semesterID).
		Delete(&model.WeeklyTimetable{}).Error
}
