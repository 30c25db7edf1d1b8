package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// HolidayRepository 假日数据访问接口
type HolidayRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	// ListRange 返回 [start, end] 区间内的假日，按日期升序
	ListRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error)
	ListAll(ctx context.Context) ([]model.Holiday, error)
	// Upsert 按 date 冲突覆盖
	Upsert(ctx context.Context, h *model.Holiday) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepo) ListRange(ctx context.Context, start, end time.Time) ([]model.Holiday, error) {
	var list []model.Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *holidayRepo) ListAll(ctx context.Context) ([]model.Holiday, error) {
	var list []model.Holiday
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *holidayRepo) Upsert(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_holiday", "early_close_after_period", "reason",
				"updated_at", "updated_by",
			}),
		}).
		Create(h).Error
}
