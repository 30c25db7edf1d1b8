package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// ── 测试辅助 ──

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// weekdayTimetable 周一至周五启用、每日6节、第0节 MATH101、第1节 PHY101，
// 其余节次为空堂；周六周日停课
func weekdayTimetable(uid, semesterID string) *model.WeeklyTimetable {
	day := model.DayTimetable{
		Enabled: true,
		Periods: []model.PeriodDef{
			{Index: 0, SubjectID: "MATH101"},
			{Index: 1, SubjectID: "PHY101"},
		},
	}
	return &model.WeeklyTimetable{
		UID:           uid,
		SemesterID:    semesterID,
		PeriodsPerDay: 6,
		Days: model.WeekDays{
			"mon": day, "tue": day, "wed": day, "thu": day, "fri": day,
			"sat": {Enabled: false},
		},
	}
}

func setupTestResolver(repo *repository.Repository) ResolverService {
	return NewResolverService(repo, zap.NewNop())
}

// ── 优先级测试 ──

func TestResolver_HolidayWinsOverOverrides(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))
	d, _ := ParseDate("2026-01-07")
	_ = repo.Holiday.Upsert(ctx, &model.Holiday{Date: d, IsHoliday: true, Reason: "校庆"})
	// 同日存在个人调整，仍应被假日压制
	_ = repo.UserClassChange.Upsert(ctx, &model.UserClassChange{
		UID: "u1", Date: d,
		Overrides: model.PeriodOverrides{{PeriodIndex: 0, SubjectID: strPtr("CHEM101")}},
	})

	svc := setupTestResolver(repo)
	rp, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if !rp.Cancelled() || rp.Reason != ReasonHoliday {
		t.Errorf("全天假日应压制一切调整，实际 outcome=%s reason=%s", rp.Outcome, rp.Reason)
	}
}

func TestResolver_EarlyClose(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))
	d, _ := ParseDate("2026-01-07")
	// 保留到第1节（含），第2节起取消
	_ = repo.Holiday.Upsert(ctx, &model.Holiday{Date: d, EarlyCloseAfterPeriod: intPtr(1)})

	svc := setupTestResolver(repo)

	kept, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 1)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if kept.Cancelled() || kept.SubjectID == nil || *kept.SubjectID != "PHY101" {
		t.Errorf("第1节应保留 PHY101，实际 outcome=%s", kept.Outcome)
	}

	cut, _ := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 2)
	if !cut.Cancelled() || cut.Reason != ReasonEarlyClose {
		t.Errorf("第2节应因提前放学取消，实际 outcome=%s reason=%s", cut.Outcome, cut.Reason)
	}
}

func TestResolver_UserOverrideBeatsGlobal(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))
	d, _ := ParseDate("2026-01-07")
	// 全局取消第2节
	_ = repo.ClassChange.Upsert(ctx, &model.ClassChange{
		Date:      d,
		Overrides: model.PeriodOverrides{{PeriodIndex: 2, Cancelled: true}},
	})
	// u1 的个人调整把第2节换成 PHY101
	_ = repo.UserClassChange.Upsert(ctx, &model.UserClassChange{
		UID: "u1", Date: d,
		Overrides: model.PeriodOverrides{{PeriodIndex: 2, SubjectID: strPtr("PHY101")}},
	})

	svc := setupTestResolver(repo)

	mine, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 2)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if mine.Cancelled() || mine.SubjectID == nil || *mine.SubjectID != "PHY101" {
		t.Errorf("个人调整应优先于全局取消，实际 outcome=%s", mine.Outcome)
	}

	// 其他用户无个人调整，全局取消生效
	other, _ := svc.ResolvePeriod(ctx, "u2", "s1", "2026-01-07", 2)
	if !other.Cancelled() || other.Reason != ReasonGlobalChange {
		t.Errorf("其他用户应被全局取消，实际 outcome=%s reason=%s", other.Outcome, other.Reason)
	}
}

func TestResolver_GlobalSubjectSwap(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))
	d, _ := ParseDate("2026-01-07")
	_ = repo.ClassChange.Upsert(ctx, &model.ClassChange{
		Date:      d,
		Overrides: model.PeriodOverrides{{PeriodIndex: 0, SubjectID: strPtr("CHEM101")}},
	})

	svc := setupTestResolver(repo)
	rp, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if rp.Cancelled() || rp.SubjectID == nil || *rp.SubjectID != "CHEM101" {
		t.Errorf("全局换课应生效，期望CHEM101，实际 outcome=%s", rp.Outcome)
	}
}

// ── 周课表兜底测试 ──

func TestResolver_SundayAlwaysCancelled(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	// 即使课表异常地配置了 sun 条目，周日也从不查表
	tt := weekdayTimetable("u1", "s1")
	tt.Days["sun"] = model.DayTimetable{
		Enabled: true,
		Periods: []model.PeriodDef{{Index: 0, SubjectID: "MATH101"}},
	}
	_ = repo.Timetable.Upsert(ctx, tt)

	svc := setupTestResolver(repo)
	rp, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-11", 0)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if !rp.Cancelled() || rp.Reason != ReasonSunday {
		t.Errorf("周日应恒为不上课，实际 outcome=%s reason=%s", rp.Outcome, rp.Reason)
	}
}

func TestResolver_DisabledDay(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))

	svc := setupTestResolver(repo)
	// 2026-01-10 周六，课表中停课
	rp, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-10", 0)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if !rp.Cancelled() || rp.Reason != ReasonDayDisabled {
		t.Errorf("停课日应不上课，实际 outcome=%s reason=%s", rp.Outcome, rp.Reason)
	}
}

func TestResolver_FreePeriod(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))

	svc := setupTestResolver(repo)
	// 第3节课表无条目：空堂，区别于被取消
	rp, err := svc.ResolvePeriod(ctx, "u1", "s1", "2026-01-07", 3)
	if err != nil {
		t.Fatalf("ResolvePeriod 应成功: %v", err)
	}
	if rp.Outcome != OutcomeFree {
		t.Errorf("期望 outcome=free，实际=%s", rp.Outcome)
	}
	if !rp.Cancelled() {
		t.Error("空堂对外仍应视为不上课")
	}
}

func TestResolver_NoTimetable(t *testing.T) {
	repo := newTestRepo()
	svc := setupTestResolver(repo)

	rp, err := svc.ResolvePeriod(context.Background(), "ghost", "s1", "2026-01-07", 0)
	if err != nil {
		t.Fatalf("无课表不应报错: %v", err)
	}
	if !rp.Cancelled() || rp.Reason != ReasonNoTimetable {
		t.Errorf("无课表应降级为不上课，实际 outcome=%s reason=%s", rp.Outcome, rp.Reason)
	}
}

// ── 入参校验测试 ──

func TestResolver_InvalidDate(t *testing.T) {
	svc := setupTestResolver(newTestRepo())
	if _, err := svc.ResolvePeriod(context.Background(), "u1", "s1", "07/01/2026", 0); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

func TestResolver_NegativePeriod(t *testing.T) {
	svc := setupTestResolver(newTestRepo())
	if _, err := svc.ResolvePeriod(context.Background(), "u1", "s1", "2026-01-07", -1); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望 ErrInvalidPeriod，实际: %v", err)
	}
}

// ── 整日解析测试 ──

func TestResolver_ResolveDay(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))

	svc := setupTestResolver(repo)
	resp, err := svc.ResolveDay(ctx, "u1", &dto.EffectiveDayRequest{Date: "2026-01-07", SemesterID: "s1"})
	if err != nil {
		t.Fatalf("ResolveDay 应成功: %v", err)
	}
	if len(resp.Periods) != 6 {
		t.Fatalf("期望6节，实际=%d", len(resp.Periods))
	}
	if resp.Periods[0].Cancelled || resp.Periods[0].SubjectID == nil || *resp.Periods[0].SubjectID != "MATH101" {
		t.Errorf("第0节应为 MATH101，实际=%+v", resp.Periods[0])
	}
	if !resp.Periods[3].Cancelled || resp.Periods[3].Outcome != OutcomeFree {
		t.Errorf("第3节应为空堂且 cancelled=true，实际=%+v", resp.Periods[3])
	}
}

func TestResolver_ResolveDay_NoTimetable(t *testing.T) {
	svc := setupTestResolver(newTestRepo())
	resp, err := svc.ResolveDay(context.Background(), "ghost", &dto.EffectiveDayRequest{Date: "2026-01-07"})
	if err != nil {
		t.Fatalf("无课表不应报错: %v", err)
	}
	if len(resp.Periods) != 0 {
		t.Errorf("无课表应返回空节次列表，实际=%d", len(resp.Periods))
	}
}
