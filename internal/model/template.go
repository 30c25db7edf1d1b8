package model

// TimetableTemplate 班级课表模板 — 对应 timetable_templates
// 主键为 branch_division_semester 小写拼接的 slug，由管理端维护，
// 学生可一键套用生成个人周课表
type TimetableTemplate struct {
	TemplateID    string       `gorm:"type:varchar(255);primaryKey"     json:"template_id"`
	Branch        string       `gorm:"type:varchar(50);not null"        json:"branch"`
	Division      string       `gorm:"type:varchar(50);not null"        json:"division"`
	Semester      string       `gorm:"type:varchar(50);not null"        json:"semester"`
	Name          string       `gorm:"type:varchar(100)"                json:"name,omitempty"`
	PeriodsPerDay int          `gorm:"type:smallint;not null"           json:"periods_per_day"`
	Subjects      SubjectItems `gorm:"type:jsonb;not null;default:'[]'" json:"subjects"`
	Days          WeekDays     `gorm:"type:jsonb;not null;default:'{}'" json:"days"`
	VerifiedBy    *string      `gorm:"type:varchar(255)"                json:"verified_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (TimetableTemplate) TableName() string { return "timetable_templates" }
