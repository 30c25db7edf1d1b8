package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// TemplateRepository 课表模板数据访问接口
type TemplateRepository interface {
	GetByID(ctx context.Context, templateID string) (*model.TimetableTemplate, error)
	// List 按班级维度过滤，空条件表示不过滤
	List(ctx context.Context, branch, division, semester string) ([]model.TimetableTemplate, error)
	// Upsert 按 template_id 冲突覆盖
	Upsert(ctx context.Context, tpl *model.TimetableTemplate) error
	Delete(ctx context.Context, templateID string) error
}

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepo 创建 TemplateRepository 实例
func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) GetByID(ctx context.Context, templateID string) (*model.TimetableTemplate, error) {
	var tpl model.TimetableTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) List(ctx context.Context, branch, division, semester string) ([]model.TimetableTemplate, error) {
	q := r.db.WithContext(ctx).Model(&model.TimetableTemplate{})
	if branch != "" {
		q = q.Where("branch = ?", branch)
	}
	if division != "" {
		q = q.Where("division = ?", division)
	}
	if semester != "" {
		q = q.Where("semester = ?", semester)
	}
	var list []model.TimetableTemplate
	err := q.Order("template_id ASC").Find(&list).Error
	return list, err
}

func (r *templateRepo) Upsert(ctx context.Context, tpl *model.TimetableTemplate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "template_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"branch", "division", "semester", "name", "periods_per_day",
				"subjects", "days", "verified_by", "updated_at", "updated_by",
			}),
		}).
		Create(tpl).Error
}

func (r *templateRepo) Delete(ctx context.Context, templateID string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Delete(&model.TimetableTemplate{}).Error
}
