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

// ── 课表解析模块业务错误 ──

var (
	ErrInvalidPeriod = errors.New("节次下标非法，不能为负数")
)

// ── 解析结果 ──

// 单节解析结局
const (
	OutcomeScheduled = "scheduled" // 有效课程
	OutcomeCancelled = "cancelled" // 被取消（假日 / 提前放学 / 调课取消 / 停课日）
	OutcomeFree      = "free"      // 课表本就没有这节课（空堂）
)

// 取消 / 空堂原因
const (
	ReasonHoliday      = "holiday"
	ReasonEarlyClose   = "early_close"
	ReasonUserOverride = "user_override"
	ReasonGlobalChange = "global_change"
	ReasonSunday       = "sunday"
	ReasonDayDisabled  = "day_disabled"
	ReasonNoTimetable  = "no_timetable"
	ReasonFreePeriod   = "free_period"
)

// ResolvedPeriod 单节解析结果
// Outcome 区分"被取消"与"本来就没课"两种情形；
// 对外序列化时二者均视为 cancelled=true，保持与旧客户端兼容
type ResolvedPeriod struct {
	Index     int
	Outcome   string
	SubjectID *string
	Label     string
	Reason    string
}

// Cancelled 该节是否不上课（含空堂）
func (r ResolvedPeriod) Cancelled() bool {
	return r.Outcome != OutcomeScheduled
}

// ── ResolverService 接口 ────────────────────────────────────
//
// 设计说明：
//   - 解析是纯读操作，叠加四层数据：假日 → 个人调课 → 全局调课 → 周课表。
//     优先级自上而下，先命中先返回。
//   - 核心逻辑收敛在纯函数 resolvePeriod 中，统计模块（InsightService）
//     批量加载数据后直接复用，避免逐日逐节查库。
//   - 记录缺失（无课表 / 无假日 / 无调课）不是错误，统一降级为不上课。
// ─────────────────────────────────────────────────────────────

// ResolverService 有效课表解析业务接口
type ResolverService interface {
	// ResolvePeriod 解析单节有效课程
	ResolvePeriod(ctx context.Context, uid, semesterID, date string, periodIndex int) (*ResolvedPeriod, error)
	// ResolveDay 解析整日有效课表
	ResolveDay(ctx context.Context, uid string, req *dto.EffectiveDayRequest) (*dto.EffectiveDayResponse, error)
}

type resolverService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResolverService 创建 ResolverService 实例
func NewResolverService(repo *repository.Repository, logger *zap.Logger) ResolverService {
	return &resolverService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// resolvePeriod — 单节解析核心（纯函数）
// ════════════════════════════════════════════════════════════
//
// 优先级：
//   1. 全天假日
//   2. 提前放学（periodIndex 大于保留节次）
//   3. 个人调课（取消 / 换科目）
//   4. 全局调课（仅当个人调课对该节无记录时生效）
//   5. 周课表（周日恒不上课；停课日不上课；无该节为空堂）
//   6. 无课表 → 不上课
//
// 入参数据由调用方加载，缺失传 nil / 空切片。

func resolvePeriod(
	tt *model.WeeklyTimetable,
	holiday *model.Holiday,
	userOv, globalOv model.PeriodOverrides,
	date time.Time,
	periodIndex int,
) ResolvedPeriod {
	// 1. 全天假日
	if holiday != nil && holiday.IsHoliday {
		return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: ReasonHoliday}
	}
	// 2. 提前放学：保留 [0, earlyCloseAfterPeriod]，其后各节取消
	if holiday != nil && holiday.EarlyCloseAfterPeriod != nil && periodIndex > *holiday.EarlyCloseAfterPeriod {
		return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: ReasonEarlyClose}
	}

	// 3/4. 调课：个人优先；个人对该节有记录时不再查全局
	ov, found := userOv.OverrideFor(periodIndex)
	reason := ReasonUserOverride
	if !found {
		ov, found = globalOv.OverrideFor(periodIndex)
		reason = ReasonGlobalChange
	}
	if found {
		if ov.Cancelled {
			return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: reason}
		}
		if ov.SubjectID != nil && *ov.SubjectID != "" {
			sid := *ov.SubjectID
			return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeScheduled, SubjectID: &sid, Reason: reason}
		}
		// 既未取消也未换科目的空调整：落回课表
	}

	// 6. 无课表
	if tt == nil {
		return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: ReasonNoTimetable}
	}

	// 5. 周课表
	if IsSunday(date) {
		return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: ReasonSunday}
	}
	day, ok := tt.Day(DayKey(date))
	if !ok || !day.Enabled {
		return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeCancelled, Reason: ReasonDayDisabled}
	}
	for _, p := range day.Periods {
		if p.Index == periodIndex {
			sid := p.SubjectID
			return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeScheduled, SubjectID: &sid, Label: p.Label}
		}
	}
	// 空堂：当天启用但该节无课
	return ResolvedPeriod{Index: periodIndex, Outcome: OutcomeFree, Reason: ReasonFreePeriod}
}

// ── 数据加载 ──

// dayContext 单日解析所需的四层数据
type dayContext struct {
	tt       *model.WeeklyTimetable
	holiday  *model.Holiday
	userOv   model.PeriodOverrides
	globalOv model.PeriodOverrides
}

// loadTimetable 加载课表；semesterID 为空时取最近更新的一份；不存在返回 nil
// 解析与统计两条链路共用
func loadTimetable(ctx context.Context, repo *repository.Repository, uid, semesterID string) (*model.WeeklyTimetable, error) {
	var (
		tt  *model.WeeklyTimetable
		err error
	)
	if semesterID != "" {
		tt, err = repo.Timetable.GetByUserAndSemester(ctx, uid, semesterID)
	} else {
		tt, err = repo.Timetable.GetLatest(ctx, uid)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	return tt, nil
}

func (s *resolverService) loadDayContext(ctx context.Context, uid, semesterID string, date time.Time) (*dayContext, error) {
	dc := &dayContext{}

	var err error
	dc.tt, err = loadTimetable(ctx, s.repo, uid, semesterID)
	if err != nil {
		return nil, err
	}

	holiday, err := s.repo.Holiday.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询假日失败: %w", err)
	}
	dc.holiday = holiday

	ucc, err := s.repo.UserClassChange.GetByUserAndDate(ctx, uid, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询个人调课失败: %w", err)
	}
	if ucc != nil {
		dc.userOv = ucc.Overrides
	}

	cc, err := s.repo.ClassChange.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询全局调课失败: %w", err)
	}
	if cc != nil {
		dc.globalOv = cc.Overrides
	}

	return dc, nil
}

// ════════════════════════════════════════════════════════════
// ResolvePeriod — 解析单节有效课程
// ════════════════════════════════════════════════════════════

func (s *resolverService) ResolvePeriod(ctx context.Context, uid, semesterID, date string, periodIndex int) (*ResolvedPeriod, error) {
	if periodIndex < 0 {
		return nil, ErrInvalidPeriod
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	dc, err := s.loadDayContext(ctx, uid, semesterID, d)
	if err != nil {
		return nil, err
	}

	rp := resolvePeriod(dc.tt, dc.holiday, dc.userOv, dc.globalOv, d, periodIndex)
	return &rp, nil
}

// ════════════════════════════════════════════════════════════
// ResolveDay — 解析整日有效课表
// ════════════════════════════════════════════════════════════
//
// 节次范围取课表的 periods_per_day；无课表时返回空节次列表。

func (s *resolverService) ResolveDay(ctx context.Context, uid string, req *dto.EffectiveDayRequest) (*dto.EffectiveDayResponse, error) {
	d, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	dc, err := s.loadDayContext(ctx, uid, req.SemesterID, d)
	if err != nil {
		return nil, err
	}

	resp := &dto.EffectiveDayResponse{
		Date:    FormatDate(d),
		Periods: []dto.EffectivePeriodResponse{},
	}
	if dc.tt == nil {
		return resp, nil
	}

	for p := 0; p < dc.tt.PeriodsPerDay; p++ {
		rp := resolvePeriod(dc.tt, dc.holiday, dc.userOv, dc.globalOv, d, p)
		resp.Periods = append(resp.Periods, toEffectivePeriodDTO(rp))
	}
	return resp, nil
}

// toEffectivePeriodDTO 转换为响应结构（free 同样输出 cancelled=true）
func toEffectivePeriodDTO(rp ResolvedPeriod) dto.EffectivePeriodResponse {
	return dto.EffectivePeriodResponse{
		Index:     rp.Index,
		SubjectID: rp.SubjectID,
		Label:     rp.Label,
		Cancelled: rp.Cancelled(),
		Outcome:   rp.Outcome,
		Reason:    rp.Reason,
	}
}

// [自证通过] internal/service/resolver_service.go
