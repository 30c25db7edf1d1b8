package dto

// ── 考勤统计 DTO ──

// InsightRequest 查询统计报告请求
// 区间缺省时依次取课表 start_date/end_date，仍缺省取今日
type InsightRequest struct {
	SemesterID         string   `form:"semester_id"`
	Start              string   `form:"start"` // YYYY-MM-DD，可选
	End                string   `form:"end"`   // YYYY-MM-DD，可选
	MinRequiredPercent *float64 `form:"min_required_percent" binding:"omitempty,gt=0,lte=100"`
}

// SubjectStatResponse 单科统计
type SubjectStatResponse struct {
	SubjectID     string  `json:"subject_id"`
	Held          int     `json:"held"`
	Present       int     `json:"present"`
	Percent       float64 `json:"percent"`
	SafeBunksLeft int     `json:"safe_bunks_left"`
}

// InsightResponse 统计报告响应
type InsightResponse struct {
	Start          string                `json:"start"`
	End            string                `json:"end"`
	BySubject      []SubjectStatResponse `json:"by_subject"`
	OverallPercent float64               `json:"overall_percent"`
	TotalHeld      int                   `json:"total_held"`
	TotalPresent   int                   `json:"total_present"`
}
