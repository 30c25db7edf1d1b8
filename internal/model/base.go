package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── JSONB 自定义类型 ──

// scanJSON 将 PostgreSQL JSONB 列反序列化到目标结构
func scanJSON(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scanJSON: unsupported type %T", src)
	}
	return json.Unmarshal(data, dst)
}

// PeriodDef 单节课定义（节次下标从 0 开始）
type PeriodDef struct {
	Index     int    `json:"index"`
	SubjectID string `json:"subject_id"`
	Label     string `json:"label,omitempty"`
}

// DayTimetable 单日课表
// Enabled 为 false 表示该天默认停课（如周日；周六可由用户启用）
type DayTimetable struct {
	Enabled bool        `json:"enabled"`
	Periods []PeriodDef `json:"periods"`
}

// WeekDays 周课表映射，键为 mon..sun
type WeekDays map[string]DayTimetable

func (w *WeekDays) Scan(src interface{}) error { return scanJSON(src, w) }

func (w WeekDays) Value() (driver.Value, error) {
	if w == nil {
		return "{}", nil
	}
	return json.Marshal(w)
}

// PeriodOverride 单节调整：换科目或仅取消该节
type PeriodOverride struct {
	PeriodIndex int     `json:"period_index"`
	SubjectID   *string `json:"subject_id,omitempty"`
	Cancelled   bool    `json:"cancelled,omitempty"`
}

// PeriodOverrides JSONB 存储的调整列表
type PeriodOverrides []PeriodOverride

func (o *PeriodOverrides) Scan(src interface{}) error { return scanJSON(src, o) }

func (o PeriodOverrides) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	return json.Marshal(o)
}

// SubjectItem 科目目录条目
type SubjectItem struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// SubjectItems JSONB 存储的科目列表
type SubjectItems []SubjectItem

func (s *SubjectItems) Scan(src interface{}) error { return scanJSON(src, s) }

func (s SubjectItems) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// ── 星期键 ──

// 周课表的日键，与 WeekDays 的键保持一致
const (
	DayMon = "mon"
	DayTue = "tue"
	DayWed = "wed"
	DayThu = "thu"
	DayFri = "fri"
	DaySat = "sat"
	DaySun = "sun"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(255)"                  json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(255)"                  json:"updated_by,omitempty"`
}

// [自证通过] internal/model/base.go
