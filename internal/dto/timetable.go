package dto

import "fmt"

// ── 周课表模块 DTO ──

// PeriodDefDTO 单节课定义
type PeriodDefDTO struct {
	Index     int    `json:"index"      binding:"min=0"`
	SubjectID string `json:"subject_id" binding:"required,max=100"`
	Label     string `json:"label"      binding:"omitempty,max=100"`
}

// DayDTO 单日课表
type DayDTO struct {
	Enabled bool           `json:"enabled"`
	Periods []PeriodDefDTO `json:"periods" binding:"dive"`
}

// SaveTimetableRequest 保存周课表请求（整表替换）
type SaveTimetableRequest struct {
	SemesterID    string            `json:"semester_id"     binding:"required,max=50"`
	PeriodsPerDay int               `json:"periods_per_day" binding:"required,min=1,max=12"`
	Locked        bool              `json:"locked"`
	StartDate     *string           `json:"start_date"` // YYYY-MM-DD
	EndDate       *string           `json:"end_date"`   // YYYY-MM-DD
	Days          map[string]DayDTO `json:"days"        binding:"required"`
}

// Validate 校验业务规则（日键合法性与节次下标范围）
func (r *SaveTimetableRequest) Validate() error {
	valid := map[string]bool{
		"mon": true, "tue": true, "wed": true, "thu": true,
		"fri": true, "sat": true, "sun": true,
	}
	for key, day := range r.Days {
		if !valid[key] {
			return fmt.Errorf("非法的日键: %s", key)
		}
		seen := make(map[int]bool, len(day.Periods))
		for _, p := range day.Periods {
			if p.Index >= r.PeriodsPerDay {
				return fmt.Errorf("日 %s 的节次下标 %d 超出每日节数 %d", key, p.Index, r.PeriodsPerDay)
			}
			if seen[p.Index] {
				return fmt.Errorf("日 %s 的节次下标 %d 重复定义", key, p.Index)
			}
			seen[p.Index] = true
		}
	}
	return nil
}

// TimetableResponse 周课表响应
type TimetableResponse struct {
	TimetableID   string            `json:"timetable_id"`
	SemesterID    string            `json:"semester_id"`
	PeriodsPerDay int               `json:"periods_per_day"`
	Locked        bool              `json:"locked"`
	StartDate     *string           `json:"start_date,omitempty"`
	EndDate       *string           `json:"end_date,omitempty"`
	Days          map[string]DayDTO `json:"days"`
	UpdatedAt     string            `json:"updated_at"`
}

// ApplyTemplateRequest 套用班级模板请求
type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required,max=255"`
	SemesterID string `json:"semester_id" binding:"required,max=50"`
}
