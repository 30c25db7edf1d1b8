package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// SubjectHandler 科目目录模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// SaveSubjects 保存科目目录（整体替换）
// PUT /api/v1/subjects
func (h *SubjectHandler) SaveSubjects(c *gin.Context) {
	var req dto.SaveSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	catalog, err := h.subjectSvc.Save(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, catalog)
}

// GetSubjects 获取科目目录
// GET /api/v1/subjects?semester_id=
func (h *SubjectHandler) GetSubjects(c *gin.Context) {
	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	catalog, err := h.subjectSvc.Get(c.Request.Context(), uid, c.Query("semester_id"))
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, catalog)
}

func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidDate) {
		response.BadRequest(c, 10001, err.Error())
		return
	}
	response.InternalError(c)
}
