package handler

import "classtrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Timetable   *TimetableHandler
	Schedule    *ScheduleHandler
	Holiday     *HolidayHandler
	ClassChange *ClassChangeHandler
	Attendance  *AttendanceHandler
	Insight     *InsightHandler
	Subject     *SubjectHandler
	Template    *TemplateHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Timetable:   NewTimetableHandler(svc.Timetable),
		Schedule:    NewScheduleHandler(svc.Resolver),
		Holiday:     NewHolidayHandler(svc.Holiday),
		ClassChange: NewClassChangeHandler(svc.ClassChange),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Insight:     NewInsightHandler(svc.Insight, svc.Export),
		Subject:     NewSubjectHandler(svc.Subject),
		Template:    NewTemplateHandler(svc.Template),
	}
}

// [自证通过] internal/api/handler/handler.go
