package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classtrack/backend/config"
	"classtrack/backend/internal/api/handler"
	"classtrack/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要调用方身份） ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		// 周课表模块
		timetable := v1.Group("/timetable")
		{
			timetable.GET("", h.Timetable.GetTimetable)
			timetable.PUT("", h.Timetable.SaveTimetable)
			timetable.POST("/apply-template", h.Timetable.ApplyTemplate)
			timetable.DELETE("/:semester_id", h.Timetable.DeleteTimetable)
		}

		// 有效课表解析模块
		schedule := v1.Group("/schedule")
		{
			schedule.GET("/effective", h.Schedule.GetEffectiveDay)
			schedule.GET("/effective/:period", h.Schedule.GetEffectivePeriod)
		}

		// 假日 / 提前放学模块（全局生效）
		holidays := v1.Group("/holidays")
		{
			holidays.GET("", h.Holiday.ListHolidays)
			holidays.PUT("", h.Holiday.SetHoliday)
			holidays.POST("/import-ics", h.Holiday.ImportICSHolidays)
			holidays.GET("/:date", h.Holiday.GetHoliday)
		}

		// 全局调课模块
		classChanges := v1.Group("/class-changes")
		{
			classChanges.GET("", h.ClassChange.ListGlobalChanges)
			classChanges.PUT("", h.ClassChange.SetGlobalChange)
			classChanges.GET("/:date", h.ClassChange.GetGlobalChange)
		}

		// 个人调课模块（仅对本人生效）
		my := v1.Group("/my")
		{
			my.PUT("/class-changes", h.ClassChange.SetUserChange)
			my.GET("/class-changes/:date", h.ClassChange.GetUserChange)
		}

		// 考勤流水模块
		attendance := v1.Group("/attendance")
		{
			attendance.POST("", h.Attendance.MarkAttendance)
			attendance.GET("", h.Attendance.ListAttendance)
		}

		// 考勤统计模块
		insights := v1.Group("/insights")
		{
			insights.GET("", h.Insight.GetInsights)
			insights.GET("/export", h.Insight.ExportInsights)
		}

		// 科目目录模块
		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Subject.GetSubjects)
			subjects.PUT("", h.Subject.SaveSubjects)
		}

		// 班级课表模板模块
		templates := v1.Group("/templates")
		{
			templates.GET("", h.Template.ListTemplates)
			templates.PUT("", h.Template.SaveTemplate)
			templates.GET("/:id", h.Template.GetTemplate)
			templates.DELETE("/:id", h.Template.DeleteTemplate)
		}
	}

	return r
}
