package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/service"
	"classtrack/backend/pkg/response"
)

// ScheduleHandler 有效课表解析 HTTP 处理器
type ScheduleHandler struct {
	resolverSvc service.ResolverService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(resolverSvc service.ResolverService) *ScheduleHandler {
	return &ScheduleHandler{resolverSvc: resolverSvc}
}

// GetEffectiveDay 查询当日有效课表（叠加假日与调课后）
// GET /api/v1/schedule/effective?date=&semester_id=
func (h *ScheduleHandler) GetEffectiveDay(c *gin.Context) {
	var req dto.EffectiveDayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	day, err := h.resolverSvc.ResolveDay(c.Request.Context(), uid, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, day)
}

// GetEffectivePeriod 查询单节有效课程
// GET /api/v1/schedule/effective/:period?date=&semester_id=
func (h *ScheduleHandler) GetEffectivePeriod(c *gin.Context) {
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil {
		response.BadRequest(c, 10001, "节次下标必须为整数")
		return
	}

	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rp, err := h.resolverSvc.ResolvePeriod(c.Request.Context(), uid, c.Query("semester_id"), c.Query("date"), period)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{
		"index":      rp.Index,
		"subject_id": rp.SubjectID,
		"label":      rp.Label,
		"cancelled":  rp.Cancelled(),
		"outcome":    rp.Outcome,
		"reason":     rp.Reason,
	})
}

// handleScheduleError 解析模块错误 → HTTP 响应
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
