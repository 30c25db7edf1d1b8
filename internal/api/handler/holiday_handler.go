package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// HolidayHandler 假日 / 提前放学模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// SetHoliday 设置 / 更新某日假日记录
// PUT /api/v1/holidays
func (h *HolidayHandler) SetHoliday(c *gin.Context) {
	var req dto.SetHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	hd, err := h.holidaySvc.Set(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, hd)
}

// GetHoliday 查询某日假日记录
// GET /api/v1/holidays/:date
func (h *HolidayHandler) GetHoliday(c *gin.Context) {
	hd, err := h.holidaySvc.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, hd)
}

// ListHolidays 查询假日列表
// GET /api/v1/holidays?start=&end=
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var req dto.ListHolidaysRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.holidaySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, list)
}

// ImportICSHolidays 从 iCalendar 批量导入全天假日
// POST /api/v1/holidays/import-ics
func (h *HolidayHandler) ImportICSHolidays(c *gin.Context) {
	var req dto.ImportICSHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.holidaySvc.ImportICS(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, result)
}

// handleHolidayError 假日模块错误 → HTTP 响应
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 20201, err.Error())
	case errors.Is(err, service.ErrHolidayICSParseFailed):
		response.BadRequest(c, 20202, err.Error())
	case errors.Is(err, service.ErrHolidayICSEmpty):
		response.BadRequest(c, 20203, err.Error())
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
