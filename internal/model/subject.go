package model

// SubjectCatalog 用户科目目录 — 对应 subject_catalogs
// 每个用户在一个学期内唯一，Items 为整体替换式的科目列表
type SubjectCatalog struct {
	SubjectCatalogID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_catalog_id"`
	UID              string       `gorm:"type:varchar(255);not null;uniqueIndex:uq_subject_catalogs_uid_semester" json:"uid"`
	SemesterID       string       `gorm:"type:varchar(50);not null;uniqueIndex:uq_subject_catalogs_uid_semester"  json:"semester_id"`
	Items            SubjectItems `gorm:"type:jsonb;not null;default:'[]'"               json:"items"`
	BaseModel
}

// TableName 指定表名
func (SubjectCatalog) TableName() string { return "subject_catalogs" }
