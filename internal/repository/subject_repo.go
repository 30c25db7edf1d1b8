package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classtrack/backend/internal/model"
)

// SubjectRepository 科目目录数据访问接口
type SubjectRepository interface {
	GetByUserAndSemester(ctx context.Context, uid, semesterID string) (*model.SubjectCatalog, error)
	// Upsert 按 (uid, semester_id) 冲突覆盖
	Upsert(ctx context.Context, sc *model.SubjectCatalog) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) GetByUserAndSemester(ctx context.Context, uid, semesterID string) (*model.SubjectCatalog, error) {
	var sc model.SubjectCatalog
	err := r.db.WithContext(ctx).
		Where("uid = ? AND semester_id = ?", uid, semesterID).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *subjectRepo) Upsert(ctx context.Context, sc *model.SubjectCatalog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}, {Name: "semester_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"items", "updated_at", "updated_by",
			}),
		}).
		Create(sc).Error
}
