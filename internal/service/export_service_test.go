package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtrack/backend/internal/dto"
)

func TestExport_Insights(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	_ = repo.Timetable.Upsert(ctx, weekdayTimetable("u1", "s1"))
	markPresent(t, repo, "u1", "2026-01-05", "MATH101", 0)

	insight := setupTestInsight(repo, nil)
	svc := NewExportService(insight, zap.NewNop())

	buf, filename, err := svc.ExportInsights(ctx, "u1", &dto.InsightRequest{
		SemesterID: "s1", Start: "2026-01-05", End: "2026-01-09",
	})
	if err != nil {
		t.Fatalf("ExportInsights 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("导出内容为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") || !strings.Contains(filename, "2026-01-05") {
		t.Errorf("文件名错误: %s", filename)
	}

	// 回读校验内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出文件应可打开: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("考勤统计")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + MATH101 + PHY101 + 总计
	if len(rows) != 4 {
		t.Fatalf("期望4行，实际=%d", len(rows))
	}
	if rows[1][0] != "MATH101" || rows[1][1] != "5" || rows[1][2] != "1" {
		t.Errorf("MATH101 行内容错误: %v", rows[1])
	}
	if rows[3][0] != "总计" {
		t.Errorf("末行应为总计，实际: %v", rows[3])
	}
}

func TestExport_PropagatesComputeError(t *testing.T) {
	repo := newTestRepo()
	_ = repo.Timetable.Upsert(context.Background(), weekdayTimetable("u1", "s1"))

	insight := setupTestInsight(repo, nil)
	svc := NewExportService(insight, zap.NewNop())

	_, _, err := svc.ExportInsights(context.Background(), "u1", &dto.InsightRequest{
		SemesterID: "s1", Start: "2026-01-30", End: "2026-01-05",
	})
	if err == nil {
		t.Fatal("非法区间应报错")
	}
}
