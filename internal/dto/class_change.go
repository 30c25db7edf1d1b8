package dto

import "fmt"

// ── 调课模块 DTO ──

// PeriodOverrideDTO 单节调整
type PeriodOverrideDTO struct {
	PeriodIndex int     `json:"period_index" binding:"min=0"`
	SubjectID   *string `json:"subject_id"   binding:"omitempty,max=100"`
	Cancelled   bool    `json:"cancelled"`
}

// SetClassChangeRequest 设置调课请求（按日期整体替换）
// 全局与个人调课共用该结构
type SetClassChangeRequest struct {
	Date      string              `json:"date"      binding:"required"` // YYYY-MM-DD
	Overrides []PeriodOverrideDTO `json:"overrides" binding:"required,dive"`
}

// Validate 校验业务规则（同一节次不允许出现两条调整）
func (r *SetClassChangeRequest) Validate() error {
	seen := make(map[int]bool, len(r.Overrides))
	for _, ov := range r.Overrides {
		if seen[ov.PeriodIndex] {
			return fmt.Errorf("节次 %d 存在重复调整", ov.PeriodIndex)
		}
		seen[ov.PeriodIndex] = true
	}
	return nil
}

// ClassChangeResponse 调课响应
type ClassChangeResponse struct {
	Date      string              `json:"date"`
	Overrides []PeriodOverrideDTO `json:"overrides"`
}
