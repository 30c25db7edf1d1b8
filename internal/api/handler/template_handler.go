package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// TemplateHandler 班级课表模板模块 HTTP 处理器
type TemplateHandler struct {
	templateSvc service.TemplateService
}

// NewTemplateHandler 创建 TemplateHandler
func NewTemplateHandler(templateSvc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// SaveTemplate 保存模板（按班级标识生成的 slug 覆盖）
// PUT /api/v1/templates
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tpl, err := h.templateSvc.Save(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, tpl)
}

// GetTemplate 按 ID 查询模板
// GET /api/v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.templateSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, tpl)
}

// ListTemplates 按班级维度过滤模板列表
// GET /api/v1/templates?branch=&division=&semester=
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var req dto.ListTemplatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.templateSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, list)
}

// DeleteTemplate 删除模板
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTemplateError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTemplateError 模板模块错误 → HTTP 响应
func (h *TemplateHandler) handleTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 20101, err.Error())
	case errors.Is(err, service.ErrTemplateInvalid):
		response.BadRequest(c, 20102, err.Error())
	default:
		response.InternalError(c)
	}
}
