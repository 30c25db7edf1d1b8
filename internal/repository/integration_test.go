//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=classtrack password=classtrack_password dbname=classtrack_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.WeeklyTimetable{},
		&model.Holiday{},
		&model.ClassChange{},
		&model.UserClassChange{},
		&model.AttendanceLog{},
		&model.SubjectCatalog{},
		&model.TimetableTemplate{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func testUID() string {
	return fmt.Sprintf("it-user-%d", time.Now().UnixNano())
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	return d
}

// ═══════════════════════════════════════════════════════════
// TimetableRepository
// ═══════════════════════════════════════════════════════════

func TestTimetableRepository_UpsertReplacesBySemester(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTimetableRepo(testDB)
	uid := testUID()

	tt := &model.WeeklyTimetable{
		UID:           uid,
		SemesterID:    "2026-spring",
		PeriodsPerDay: 6,
		Days: model.WeekDays{
			model.DayMon: {Enabled: true, Periods: []model.PeriodDef{{Index: 0, SubjectID: "MATH101"}}},
		},
	}
	if err := repo.Upsert(ctx, tt); err != nil {
		t.Fatalf("首次保存失败: %v", err)
	}

	tt2 := &model.WeeklyTimetable{
		UID:           uid,
		SemesterID:    "2026-spring",
		PeriodsPerDay: 8,
		Days: model.WeekDays{
			model.DayMon: {Enabled: true, Periods: []model.PeriodDef{{Index: 0, SubjectID: "PHY101"}}},
		},
	}
	if err := repo.Upsert(ctx, tt2); err != nil {
		t.Fatalf("二次保存失败: %v", err)
	}

	got, err := repo.GetByUserAndSemester(ctx, uid, "2026-spring")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.PeriodsPerDay != 8 {
		t.Errorf("期望 periods_per_day=8，实际 %d", got.PeriodsPerDay)
	}

	var count int64
	testDB.Model(&model.WeeklyTimetable{}).Where("uid = ?", uid).Count(&count)
	if count != 1 {
		t.Errorf("期望同学期覆盖后仅 1 条记录，实际 %d", count)
	}
}

// ═══════════════════════════════════════════════════════════
// HolidayRepository
// ═══════════════════════════════════════════════════════════

func TestHolidayRepository_UpsertByDate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHolidayRepo(testDB)
	date := mustDate(t, "2099-01-26")

	early := 3
	if err := repo.Upsert(ctx, &model.Holiday{Date: date, IsHoliday: true, Reason: "共和国日"}); err != nil {
		t.Fatalf("首次保存失败: %v", err)
	}
	if err := repo.Upsert(ctx, &model.Holiday{Date: date, IsHoliday: false, EarlyCloseAfterPeriod: &early}); err != nil {
		t.Fatalf("二次保存失败: %v", err)
	}

	got, err := repo.GetByDate(ctx, date)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.IsHoliday {
		t.Error("期望覆盖后 is_holiday=false")
	}
	if got.EarlyCloseAfterPeriod == nil || *got.EarlyCloseAfterPeriod != 3 {
		t.Error("期望覆盖后 early_close_after_period=3")
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceRepository
// ═══════════════════════════════════════════════════════════

func TestAttendanceRepository_UpsertSlotAndListRange(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAttendanceRepo(testDB)
	uid := testUID()
	date := mustDate(t, "2026-03-02")

	log := &model.AttendanceLog{
		UID: uid, Date: date, PeriodIndex: 0,
		SubjectID: "MATH101", Status: model.StatusPresent,
		MarkedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, log); err != nil {
		t.Fatalf("首次标记失败: %v", err)
	}

	// 同一槽位覆盖
	log2 := &model.AttendanceLog{
		UID: uid, Date: date, PeriodIndex: 0,
		SubjectID: "MATH101", Status: model.StatusAbsent,
		MarkedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, log2); err != nil {
		t.Fatalf("二次标记失败: %v", err)
	}

	logs, err := repo.ListByUserAndRange(ctx, uid, date, date)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("期望同一槽位仅 1 条记录，实际 %d", len(logs))
	}
	if logs[0].Status != model.StatusAbsent {
		t.Errorf("期望覆盖后状态为 absent，实际 %s", logs[0].Status)
	}
}
