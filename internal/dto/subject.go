package dto

// ── 科目目录 DTO ──

// SubjectItemDTO 科目条目
type SubjectItemDTO struct {
	ID    string `json:"id"    binding:"required,max=100"`
	Name  string `json:"name"  binding:"omitempty,max=100"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// SaveSubjectsRequest 保存科目目录请求（整体替换）
type SaveSubjectsRequest struct {
	SemesterID string           `json:"semester_id" binding:"required,max=50"`
	Items      []SubjectItemDTO `json:"items"       binding:"required,dive"`
}

// SubjectCatalogResponse 科目目录响应
type SubjectCatalogResponse struct {
	SemesterID string           `json:"semester_id"`
	Items      []SubjectItemDTO `json:"items"`
	UpdatedAt  string           `json:"updated_at"`
}
