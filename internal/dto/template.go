package dto

// ── 课表模板 DTO ──

// SaveTemplateRequest 保存班级课表模板请求
// 模板 ID 由 branch_division_semester 小写拼接生成，无需传入
type SaveTemplateRequest struct {
	Branch        string            `json:"branch"          binding:"required,max=50"`
	Division      string            `json:"division"        binding:"required,max=50"`
	Semester      string            `json:"semester"        binding:"required,max=50"`
	Name          string            `json:"name"            binding:"omitempty,max=100"`
	PeriodsPerDay int               `json:"periods_per_day" binding:"required,min=1,max=12"`
	Subjects      []SubjectItemDTO  `json:"subjects"        binding:"dive"`
	Days          map[string]DayDTO `json:"days"            binding:"required"`
	VerifiedBy    *string           `json:"verified_by"     binding:"omitempty,max=255"`
}

// TemplateResponse 课表模板响应
type TemplateResponse struct {
	TemplateID    string            `json:"template_id"`
	Branch        string            `json:"branch"`
	Division      string            `json:"division"`
	Semester      string            `json:"semester"`
	Name          string            `json:"name,omitempty"`
	PeriodsPerDay int               `json:"periods_per_day"`
	Subjects      []SubjectItemDTO  `json:"subjects"`
	Days          map[string]DayDTO `json:"days"`
	VerifiedBy    *string           `json:"verified_by,omitempty"`
	UpdatedAt     string            `json:"updated_at"`
}

// ListTemplatesRequest 查询模板列表请求
type ListTemplatesRequest struct {
	Branch   string `form:"branch"`
	Division string `form:"division"`
	Semester string `form:"semester"`
}
