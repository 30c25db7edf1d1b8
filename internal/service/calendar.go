package service

import (
	"errors"
	"time"

	"classtrack/backend/internal/model"
)

// ── 日历工具 ────────────────────────────────────────────────
//
// 职责：ISO 日期解析 / 星期分类 / 日期区间枚举。
// 所有日期均按 YYYY-MM-DD 文本交换，内部统一使用 UTC 零点。
// ─────────────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

// ErrInvalidDate 日期格式非法
var ErrInvalidDate = errors.New("日期格式非法，应为 YYYY-MM-DD")

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate 格式化为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DayKey 星期 → 周课表日键
// 周日直接返回 sun，解析链路对周日从不查课表
func DayKey(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return model.DayMon
	case time.Tuesday:
		return model.DayTue
	case time.Wednesday:
		return model.DayWed
	case time.Thursday:
		return model.DayThu
	case time.Friday:
		return model.DayFri
	case time.Saturday:
		return model.DaySat
	default:
		return model.DaySun
	}
}

// IsSunday 是否周日
func IsSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}

// EnumerateDates 枚举闭区间 [start, end] 内的全部日期
// start > end 时返回空切片，区间校验由调用方负责
func EnumerateDates(start, end time.Time) []time.Time {
	if start.After(end) {
		return nil
	}
	n := int(end.Sub(start).Hours()/24) + 1
	dates := make([]time.Time, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
