package model

import "time"

// Holiday 假日 / 提前放学记录 — 对应 holidays，全局生效
// IsHoliday 为 true 表示全天停课，优先于 EarlyCloseAfterPeriod；
// EarlyCloseAfterPeriod 表示保留到该节（含）为止，之后各节取消
type Holiday struct {
	HolidayID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Date                  time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"date"`
	IsHoliday             bool      `gorm:"not null;default:false"                         json:"is_holiday"`
	EarlyCloseAfterPeriod *int      `gorm:"type:smallint"                                  json:"early_close_after_period,omitempty"`
	Reason                string    `gorm:"type:varchar(255)"                              json:"reason,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
