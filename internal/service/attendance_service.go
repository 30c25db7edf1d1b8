package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"classtrack/backend/internal/dto"
	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceInvalidStatus = errors.New("考勤状态非法，仅支持 present / absent")
)

// ── AttendanceService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 标记按 (uid, date, period_index) 幂等覆盖：同一节重复提交
//     只保留最新状态，不产生重复记录。
//   - 流水只追加 / 覆盖，从不删除，统计模块按区间读取。
//   - 标记写入影响统计结果，成功后失效该用户的报告缓存。
// ─────────────────────────────────────────────────────────────

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Mark 标记某节考勤（幂等覆盖）
	Mark(ctx context.Context, uid string, req *dto.MarkAttendanceRequest) (*dto.AttendanceLogResponse, error)
	// List 查询考勤流水，start/end 缺省表示不限
	List(ctx context.Context, uid string, req *dto.ListAttendanceRequest) ([]dto.AttendanceLogResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	cache  InsightCache
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, cache InsightCache, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, cache: cache, logger: logger}
}

func (s *attendanceService) Mark(ctx context.Context, uid string, req *dto.MarkAttendanceRequest) (*dto.AttendanceLogResponse, error) {
	d, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.PeriodIndex < 0 {
		return nil, ErrInvalidPeriod
	}
	if !model.IsValidStatus(req.Status) {
		return nil, ErrAttendanceInvalidStatus
	}

	log := &model.AttendanceLog{
		UID:         uid,
		Date:        d,
		PeriodIndex: req.PeriodIndex,
		SubjectID:   req.SubjectID,
		Status:      req.Status,
		MarkedAt:    time.Now().UTC(),
	}
	if err := s.repo.Attendance.Upsert(ctx, log); err != nil {
		s.logger.Error("标记考勤失败", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("标记考勤失败: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUser(ctx, uid); err != nil {
			s.logger.Warn("失效统计缓存失败", zap.String("uid", uid), zap.Error(err))
		}
	}
	return toAttendanceLogDTO(log), nil
}

func (s *attendanceService) List(ctx context.Context, uid string, req *dto.ListAttendanceRequest) ([]dto.AttendanceLogResponse, error) {
	var (
		logs []model.AttendanceLog
		err  error
	)
	if req.Start == "" && req.End == "" {
		logs, err = s.repo.Attendance.ListByUser(ctx, uid)
	} else {
		from, to, perr := listBounds(req.Start, req.End)
		if perr != nil {
			return nil, perr
		}
		logs, err = s.repo.Attendance.ListByUserAndRange(ctx, uid, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("查询考勤流水失败: %w", err)
	}

	out := make([]dto.AttendanceLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, *toAttendanceLogDTO(&logs[i]))
	}
	return out, nil
}

// listBounds 补齐单边缺省的查询区间
func listBounds(start, end string) (time.Time, time.Time, error) {
	from := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if start != "" {
		d, err := ParseDate(start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	if end != "" {
		d, err := ParseDate(end)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}

func toAttendanceLogDTO(log *model.AttendanceLog) *dto.AttendanceLogResponse {
	return &dto.AttendanceLogResponse{
		Date:        FormatDate(log.Date),
		PeriodIndex: log.PeriodIndex,
		SubjectID:   log.SubjectID,
		Status:      log.Status,
		MarkedAt:    log.MarkedAt.Format(time.RFC3339),
	}
}
