package dto

import "fmt"

// ── 假日模块 DTO ──

// SetHolidayRequest 设置 / 更新假日请求（按日期合并覆盖）
type SetHolidayRequest struct {
	Date                  string `json:"date"                     binding:"required"` // YYYY-MM-DD
	IsHoliday             bool   `json:"is_holiday"`
	EarlyCloseAfterPeriod *int   `json:"early_close_after_period" binding:"omitempty,min=0"`
	Reason                string `json:"reason"                   binding:"omitempty,max=255"`
}

// HolidayResponse 假日响应
type HolidayResponse struct {
	Date                  string `json:"date"`
	IsHoliday             bool   `json:"is_holiday"`
	EarlyCloseAfterPeriod *int   `json:"early_close_after_period,omitempty"`
	Reason                string `json:"reason,omitempty"`
}

// ListHolidaysRequest 查询假日列表请求
type ListHolidaysRequest struct {
	Start string `form:"start"` // YYYY-MM-DD，可选
	End   string `form:"end"`   // YYYY-MM-DD，可选
}

// ImportICSHolidaysRequest ICS 假日导入请求
// URL 与 ICS 原文二选一
type ImportICSHolidaysRequest struct {
	URL string `json:"url" binding:"omitempty,url"`
	ICS string `json:"ics" binding:"omitempty"`
}

// Validate 校验业务规则
func (r *ImportICSHolidaysRequest) Validate() error {
	if r.URL == "" && r.ICS == "" {
		return fmt.Errorf("url 与 ics 必须提供其一")
	}
	if r.URL != "" && r.ICS != "" {
		return fmt.Errorf("url 与 ics 不能同时提供")
	}
	return nil
}

// ImportICSHolidaysResponse ICS 假日导入响应
type ImportICSHolidaysResponse struct {
	ImportedCount int               `json:"imported_count"`
	Holidays      []HolidayResponse `json:"holidays"`
}
