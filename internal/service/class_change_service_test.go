package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtrack/backend/internal/dto"
)

func setupTestClassChange() ClassChangeService {
	return NewClassChangeService(newTestRepo(), nil, zap.NewNop())
}

func TestClassChange_SetAndGetGlobal(t *testing.T) {
	svc := setupTestClassChange()
	ctx := context.Background()

	_, err := svc.SetGlobal(ctx, "admin", &dto.SetClassChangeRequest{
		Date: "2026-01-07",
		Overrides: []dto.PeriodOverrideDTO{
			{PeriodIndex: 2, Cancelled: true},
			{PeriodIndex: 3, SubjectID: strPtr("CHEM101")},
		},
	})
	if err != nil {
		t.Fatalf("SetGlobal 应成功: %v", err)
	}

	cc, err := svc.GetGlobal(ctx, "2026-01-07")
	if err != nil {
		t.Fatalf("GetGlobal 应成功: %v", err)
	}
	if len(cc.Overrides) != 2 {
		t.Fatalf("期望2条调整，实际=%d", len(cc.Overrides))
	}
}

func TestClassChange_SetGlobalReplacesByDate(t *testing.T) {
	svc := setupTestClassChange()
	ctx := context.Background()

	_, _ = svc.SetGlobal(ctx, "admin", &dto.SetClassChangeRequest{
		Date:      "2026-01-07",
		Overrides: []dto.PeriodOverrideDTO{{PeriodIndex: 2, Cancelled: true}},
	})
	// 整体替换为新列表
	_, err := svc.SetGlobal(ctx, "admin", &dto.SetClassChangeRequest{
		Date:      "2026-01-07",
		Overrides: []dto.PeriodOverrideDTO{{PeriodIndex: 5, Cancelled: true}},
	})
	if err != nil {
		t.Fatalf("覆盖 SetGlobal 应成功: %v", err)
	}

	cc, _ := svc.GetGlobal(ctx, "2026-01-07")
	if len(cc.Overrides) != 1 || cc.Overrides[0].PeriodIndex != 5 {
		t.Errorf("期望整体替换为第5节调整，实际=%+v", cc.Overrides)
	}
}

func TestClassChange_DuplicatePeriod(t *testing.T) {
	svc := setupTestClassChange()
	_, err := svc.SetGlobal(context.Background(), "admin", &dto.SetClassChangeRequest{
		Date: "2026-01-07",
		Overrides: []dto.PeriodOverrideDTO{
			{PeriodIndex: 2, Cancelled: true},
			{PeriodIndex: 2, SubjectID: strPtr("CHEM101")},
		},
	})
	if !errors.Is(err, ErrOverrideDuplicatePeriod) {
		t.Errorf("期望 ErrOverrideDuplicatePeriod，实际: %v", err)
	}
}

func TestClassChange_GetGlobalMissing(t *testing.T) {
	svc := setupTestClassChange()
	if _, err := svc.GetGlobal(context.Background(), "2026-01-07"); !errors.Is(err, ErrClassChangeNotFound) {
		t.Errorf("期望 ErrClassChangeNotFound，实际: %v", err)
	}
}

func TestClassChange_ListGlobal(t *testing.T) {
	svc := setupTestClassChange()
	ctx := context.Background()
	for _, date := range []string{"2026-01-07", "2026-01-14", "2026-02-04"} {
		_, _ = svc.SetGlobal(ctx, "admin", &dto.SetClassChangeRequest{
			Date:      date,
			Overrides: []dto.PeriodOverrideDTO{{PeriodIndex: 0, Cancelled: true}},
		})
	}

	list, err := svc.ListGlobal(ctx, "2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("ListGlobal 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("区间过滤期望2条，实际=%d", len(list))
	}

	if _, err := svc.ListGlobal(ctx, "2026-02-01", "2026-01-01"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("期望 ErrInvalidRange，实际: %v", err)
	}
}

func TestClassChange_SetAndGetUser(t *testing.T) {
	svc := setupTestClassChange()
	ctx := context.Background()

	_, err := svc.SetUser(ctx, "u1", &dto.SetClassChangeRequest{
		Date:      "2026-01-07",
		Overrides: []dto.PeriodOverrideDTO{{PeriodIndex: 2, SubjectID: strPtr("PHY101")}},
	})
	if err != nil {
		t.Fatalf("SetUser 应成功: %v", err)
	}

	mine, err := svc.GetUser(ctx, "u1", "2026-01-07")
	if err != nil {
		t.Fatalf("GetUser 应成功: %v", err)
	}
	if len(mine.Overrides) != 1 || mine.Overrides[0].SubjectID == nil || *mine.Overrides[0].SubjectID != "PHY101" {
		t.Errorf("个人调整内容错误: %+v", mine.Overrides)
	}

	// 其他用户查不到
	if _, err := svc.GetUser(ctx, "u2", "2026-01-07"); !errors.Is(err, ErrClassChangeNotFound) {
		t.Errorf("期望 ErrClassChangeNotFound，实际: %v", err)
	}
}
