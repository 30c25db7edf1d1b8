package dto

// ── 当日有效课表 DTO ──

// EffectiveDayRequest 查询当日有效课表请求
type EffectiveDayRequest struct {
	Date       string `form:"date"        binding:"required"` // YYYY-MM-DD
	SemesterID string `form:"semester_id"`
}

// EffectivePeriodResponse 解析后的单节结果
// Outcome 取值 scheduled / cancelled / free；
// free 表示课表本就没有这节课，对外同样带 cancelled=true
type EffectivePeriodResponse struct {
	Index     int     `json:"index"`
	SubjectID *string `json:"subject_id"`
	Label     string  `json:"label,omitempty"`
	Cancelled bool    `json:"cancelled"`
	Outcome   string  `json:"outcome"`
	Reason    string  `json:"reason,omitempty"`
}

// EffectiveDayResponse 当日有效课表响应
type EffectiveDayResponse struct {
	Date    string                    `json:"date"`
	Periods []EffectivePeriodResponse `json:"periods"`
}
