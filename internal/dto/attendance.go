package dto

// ── 考勤模块 DTO ──

// MarkAttendanceRequest 标记考勤请求
// 同一 (date, period_index) 重复提交按覆盖处理
type MarkAttendanceRequest struct {
	Date        string `json:"date"         binding:"required"` // YYYY-MM-DD
	PeriodIndex int    `json:"period_index" binding:"min=0"`
	SubjectID   string `json:"subject_id"   binding:"required,max=100"`
	Status      string `json:"status"       binding:"required,oneof=present absent"`
}

// AttendanceLogResponse 考勤流水响应
type AttendanceLogResponse struct {
	Date        string `json:"date"`
	PeriodIndex int    `json:"period_index"`
	SubjectID   string `json:"subject_id"`
	Status      string `json:"status"`
	MarkedAt    string `json:"marked_at"`
}

// ListAttendanceRequest 查询考勤流水请求
type ListAttendanceRequest struct {
	Start string `form:"start"` // YYYY-MM-DD，可选
	End   string `form:"end"`   // YYYY-MM-DD，可选
}
