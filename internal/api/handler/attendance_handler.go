package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// AttendanceHandler 考勤流水模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkAttendance 标记某节考勤（同一槽位重复提交时覆盖）
// POST /api/v1/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	log, err := h.attendanceSvc.Mark(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, log)
}

// ListAttendance 查询考勤流水
// GET /api/v1/attendance?start=&end=
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.ListAttendanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.attendanceSvc.List(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, list)
}

// handleAttendanceError 考勤模块错误 → HTTP 响应
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceInvalidStatus):
		response.BadRequest(c, 20401, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
