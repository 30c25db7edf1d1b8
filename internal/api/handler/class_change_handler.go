package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// ClassChangeHandler 调课模块 HTTP 处理器（全局调课 + 个人调课）
type ClassChangeHandler struct {
	classChangeSvc service.ClassChangeService
}

// NewClassChangeHandler 创建 ClassChangeHandler
func NewClassChangeHandler(classChangeSvc service.ClassChangeService) *ClassChangeHandler {
	return &ClassChangeHandler{classChangeSvc: classChangeSvc}
}

// SetGlobalChange 设置某日全局调课（整日覆盖）
// PUT /api/v1/class-changes
func (h *ClassChangeHandler) SetGlobalChange(c *gin.Context) {
	var req dto.SetClassChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cc, err := h.classChangeSvc.SetGlobal(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleClassChangeError(c, err)
		return
	}

	response.OK(c, cc)
}

// GetGlobalChange 查询某日全局调课
// GET /api/v1/class-changes/:date
func (h *ClassChangeHandler) GetGlobalChange(c *gin.Context) {
	cc, err := h.classChangeSvc.GetGlobal(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handleClassChangeError(c, err)
		return
	}

	response.OK(c, cc)
}

// ListGlobalChanges 查询区间内全局调课
// GET /api/v1/class-changes?start=&end=
func (h *ClassChangeHandler) ListGlobalChanges(c *gin.Context) {
	list, err := h.classChangeSvc.ListGlobal(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		h.handleClassChangeError(c, err)
		return
	}

	response.OK(c, list)
}

// SetUserChange 设置某日个人调课（整日覆盖，仅对本人生效）
// PUT /api/v1/my/class-changes
func (h *ClassChangeHandler) SetUserChange(c *gin.Context) {
	var req dto.SetClassChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cc, err := h.classChangeSvc.SetUser(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleClassChangeError(c, err)
		return
	}

	response.OK(c, cc)
}

// GetUserChange 查询某日个人调课
// GET /api/v1/my/class-changes/:date
func (h *ClassChangeHandler) GetUserChange(c *gin.Context) {
	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cc, err := h.classChangeSvc.GetUser(c.Request.Context(), uid, c.Param("date"))
	if err != nil {
		h.handleClassChangeError(c, err)
		return
	}

	response.OK(c, cc)
}

// handleClassChangeError 调课模块错误 → HTTP 响应
func (h *ClassChangeHandler) handleClassChangeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassChangeNotFound):
		response.NotFound(c, 20301, err.Error())
	case errors.Is(err, service.ErrOverrideDuplicatePeriod):
		response.BadRequest(c, 20302, err.Error())
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
