package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// SubjectService 科目目录业务接口
// 目录纯描述性，不参与解析；科目在课表中引用了目录外的 ID 也是合法的
type SubjectService interface {
	// Save 保存科目目录（整体替换）
	Save(ctx context.Context, uid string, req *dto.SaveSubjectsRequest) (*dto.SubjectCatalogResponse, error)
	// Get 获取科目目录，不存在时返回空列表
	Get(ctx context.Context, uid, semesterID string) (*dto.SubjectCatalogResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Save(ctx context.Context, uid string, req *dto.SaveSubjectsRequest) (*dto.SubjectCatalogResponse, error) {
	items := make(model.SubjectItems, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.SubjectItem{ID: it.ID, Name: it.Name, Color: it.Color})
	}

	sc := &model.SubjectCatalog{
		UID:        uid,
		SemesterID: req.SemesterID,
		Items:      items,
		BaseModel:  model.BaseModel{UpdatedBy: &uid},
	}
	if err := s.repo.Subject.Upsert(ctx, sc); err != nil {
		s.logger.Error("保存科目目录失败", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("保存科目目录失败: %w", err)
	}
	return toSubjectCatalogDTO(sc), nil
}

func (s *subjectService) Get(ctx context.Context, uid, semesterID string) (*dto.SubjectCatalogResponse, error) {
	sc, err := s.repo.Subject.GetByUserAndSemester(ctx, uid, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未建目录不算错误，返回空列表
			return &dto.SubjectCatalogResponse{SemesterID: semesterID, Items: []dto.SubjectItemDTO{}}, nil
		}
		return nil, fmt.Errorf("查询科目目录失败: %w", err)
	}
	return toSubjectCatalogDTO(sc), nil
}

func toSubjectCatalogDTO(sc *model.SubjectCatalog) *dto.SubjectCatalogResponse {
	items := make([]dto.SubjectItemDTO, 0, len(sc.Items))
	for _, it := range sc.Items {
		items = append(items, dto.SubjectItemDTO{ID: it.ID, Name: it.Name, Color: it.Color})
	}
	return &dto.SubjectCatalogResponse{
		SemesterID: sc.SemesterID,
		Items:      items,
		UpdatedAt:  sc.UpdatedAt.Format(time.RFC3339),
	}
}
