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

func setupTestTimetable() (TimetableService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewTimetableService(repo, nil, zap.NewNop())
	return svc, repo
}

func validSaveRequest() *dto.SaveTimetableRequest {
	return &dto.SaveTimetableRequest{
		SemesterID:    "s1",
		PeriodsPerDay: 6,
		Days: map[string]dto.DayDTO{
			"mon": {Enabled: true, Periods: []dto.PeriodDefDTO{{Index: 0, SubjectID: "MATH101"}}},
			"sat": {Enabled: false},
		},
	}
}

func TestTimetable_SaveAndGet(t *testing.T) {
	svc, _ := setupTestTimetable()
	ctx := context.Background()

	saved, err := svc.Save(ctx, "u1", validSaveRequest())
	if err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}
	if saved.PeriodsPerDay != 6 {
		t.Errorf("期望PeriodsPerDay=6，实际=%d", saved.PeriodsPerDay)
	}

	got, err := svc.Get(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	mon, ok := got.Days["mon"]
	if !ok || !mon.Enabled || len(mon.Periods) != 1 || mon.Periods[0].SubjectID != "MATH101" {
		t.Errorf("课表内容错误: %+v", got.Days)
	}
}

func TestTimetable_GetMissing(t *testing.T) {
	svc, _ := setupTestTimetable()
	if _, err := svc.Get(context.Background(), "ghost", "s1"); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("期望 ErrTimetableNotFound，实际: %v", err)
	}
}

func TestTimetable_SaveLockedRejected(t *testing.T) {
	svc, _ := setupTestTimetable()
	ctx := context.Background()

	req := validSaveRequest()
	req.Locked = true
	if _, err := svc.Save(ctx, "u1", req); err != nil {
		t.Fatalf("首次 Save 应成功: %v", err)
	}

	if _, err := svc.Save(ctx, "u1", validSaveRequest()); !errors.Is(err, ErrTimetableLocked) {
		t.Errorf("锁定课表应拒绝覆盖，实际: %v", err)
	}
}

func TestTimetable_SaveValidation(t *testing.T) {
	svc, _ := setupTestTimetable()
	ctx := context.Background()

	// 非法日键
	bad := validSaveRequest()
	bad.Days["monday"] = dto.DayDTO{Enabled: true}
	if _, err := svc.Save(ctx, "u1", bad); !errors.Is(err, ErrTimetableInvalid) {
		t.Errorf("非法日键期望 ErrTimetableInvalid，实际: %v", err)
	}

	// 节次下标越界
	bad = validSaveRequest()
	bad.Days["mon"] = dto.DayDTO{Enabled: true, Periods: []dto.PeriodDefDTO{{Index: 6, SubjectID: "X"}}}
	if _, err := svc.Save(ctx, "u1", bad); !errors.Is(err, ErrTimetableInvalid) {
		t.Errorf("节次越界期望 ErrTimetableInvalid，实际: %v", err)
	}

	// 节次下标重复
	bad = validSaveRequest()
	bad.Days["mon"] = dto.DayDTO{Enabled: true, Periods: []dto.PeriodDefDTO{
		{Index: 0, SubjectID: "X"}, {Index: 0, SubjectID: "Y"},
	}}
	if _, err := svc.Save(ctx, "u1", bad); !errors.Is(err, ErrTimetableInvalid) {
		t.Errorf("节次重复期望 ErrTimetableInvalid，实际: %v", err)
	}

	// 起止日期倒序
	bad = validSaveRequest()
	bad.StartDate = strPtr("2026-06-01")
	bad.EndDate = strPtr("2026-01-01")
	if _, err := svc.Save(ctx, "u1", bad); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("日期倒序期望 ErrInvalidRange，实际: %v", err)
	}

	// 日期格式错误
	bad = validSaveRequest()
	bad.StartDate = strPtr("01/06/2026")
	if _, err := svc.Save(ctx, "u1", bad); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("日期格式错误期望 ErrInvalidDate，实际: %v", err)
	}
}

func TestTimetable_Delete(t *testing.T) {
	svc, _ := setupTestTimetable()
	ctx := context.Background()

	if _, err := svc.Save(ctx, "u1", validSaveRequest()); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if err := svc.Delete(ctx, "u1", "s1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.Get(ctx, "u1", "s1"); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("删除后 Get 期望 ErrTimetableNotFound，实际: %v", err)
	}

	// 重复删除
	if err := svc.Delete(ctx, "u1", "s1"); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("重复删除期望 ErrTimetableNotFound，实际: %v", err)
	}
}

func TestTimetable_DeleteLockedRejected(t *testing.T) {
	svc, _ := setupTestTimetable()
	ctx := context.Background()

	req := validSaveRequest()
	req.Locked = true
	if _, err := svc.Save(ctx, "u1", req); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	if err := svc.Delete(ctx, "u1", "s1"); !errors.Is(err, ErrTimetableLocked) {
		t.Errorf("锁定课表应拒绝删除，实际: %v", err)
	}
}

func TestTimetable_ApplyTemplate(t *testing.T) {
	svc, repo := setupTestTimetable()
	ctx := context.Background()

	_ = repo.Template.Upsert(ctx, &model.TimetableTemplate{
		TemplateID:    "cse_alpha_3",
		Branch:        "CSE",
		Division:      "Alpha",
		Semester:      "3",
		PeriodsPerDay: 6,
		Subjects:      model.SubjectItems{{ID: "MATH101", Name: "数学"}},
		Days: model.WeekDays{
			"mon": {Enabled: true, Periods: []model.PeriodDef{{Index: 0, SubjectID: "MATH101"}}},
		},
	})

	result, err := svc.ApplyTemplate(ctx, "u1", &dto.ApplyTemplateRequest{TemplateID: "cse_alpha_3", SemesterID: "s1"})
	if err != nil {
		t.Fatalf("ApplyTemplate 应成功: %v", err)
	}
	if result.PeriodsPerDay != 6 {
		t.Errorf("期望PeriodsPerDay=6，实际=%d", result.PeriodsPerDay)
	}
	mon, ok := result.Days["mon"]
	if !ok || len(mon.Periods) != 1 || mon.Periods[0].SubjectID != "MATH101" {
		t.Errorf("模板课表未复制: %+v", result.Days)
	}

	// 科目目录一并复制
	sc, err := repo.Subject.GetByUserAndSemester(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("科目目录应已写入: %v", err)
	}
	if len(sc.Items) != 1 || sc.Items[0].ID != "MATH101" {
		t.Errorf("科目目录内容错误: %+v", sc.Items)
	}
}

func TestTimetable_ApplyTemplateMissing(t *testing.T) {
	svc, _ := setupTestTimetable()
	_, err := svc.ApplyTemplate(context.Background(), "u1", &dto.ApplyTemplateRequest{TemplateID: "nope", SemesterID: "s1"})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("期望 ErrTemplateNotFound，实际: %v", err)
	}
}
