package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"classtrack/backend/internal/model"
	"classtrack/backend/internal/repository"
)

// newTestRepo 全 mock 的 Repository 聚合，各测试文件共用
func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Timetable:       newMockTimetableRepo(),
		Holiday:         newMockHolidayRepo(),
		ClassChange:     newMockClassChangeRepo(),
		UserClassChange: newMockUserClassChangeRepo(),
		Attendance:      newMockAttendanceRepo(),
		Subject:         newMockSubjectRepo(),
		Template:        newMockTemplateRepo(),
	}
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	tables map[string]*model.WeeklyTimetable // key: uid_semesterId
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{tables: make(map[string]*model.WeeklyTimetable)}
}

func ttKey(uid, semesterID string) string { return uid + "_" + semesterID }

func (m *mockTimetableRepo) GetByUserAndSemester(_ context.Context, uid, semesterID string) (*model.WeeklyTimetable, error) {
	if tt, ok := m.tables[ttKey(uid, semesterID)]; ok {
		return tt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) GetLatest(_ context.Context, uid string) (*model.WeeklyTimetable, error) {
	var latest *model.WeeklyTimetable
	for _, tt := range m.tables {
		if tt.UID != uid {
			continue
		}
		if latest == nil || tt.UpdatedAt.After(latest.UpdatedAt) {
			latest = tt
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockTimetableRepo) Upsert(_ context.Context, tt *model.WeeklyTimetable) error {
	tt.UpdatedAt = time.Now()
	m.tables[ttKey(tt.UID, tt.SemesterID)] = tt
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, uid, semesterID string) error {
	delete(m.tables, ttKey(uid, semesterID))
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // key: YYYY-MM-DD
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	if h, ok := m.holidays[FormatDate(date)]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListRange(_ context.Context, start, end time.Time) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) ListAll(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) Upsert(_ context.Context, h *model.Holiday) error {
	m.holidays[FormatDate(h.Date)] = h
	return nil
}

// ── Mock ClassChangeRepository ──

type mockClassChangeRepo struct {
	changes map[string]*model.ClassChange // key: YYYY-MM-DD
}

func newMockClassChangeRepo() *mockClassChangeRepo {
	return &mockClassChangeRepo{changes: make(map[string]*model.ClassChange)}
}

func (m *mockClassChangeRepo) GetByDate(_ context.Context, date time.Time) (*model.ClassChange, error) {
	if cc, ok := m.changes[FormatDate(date)]; ok {
		return cc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassChangeRepo) ListRange(_ context.Context, start, end time.Time) ([]model.ClassChange, error) {
	var result []model.ClassChange
	for _, cc := range m.changes {
		if !cc.Date.Before(start) && !cc.Date.After(end) {
			result = append(result, *cc)
		}
	}
	return result, nil
}

func (m *mockClassChangeRepo) Upsert(_ context.Context, cc *model.ClassChange) error {
	m.changes[FormatDate(cc.Date)] = cc
	return nil
}

// ── Mock UserClassChangeRepository ──

type mockUserClassChangeRepo struct {
	changes map[string]*model.UserClassChange // key: uid_YYYY-MM-DD
}

func newMockUserClassChangeRepo() *mockUserClassChangeRepo {
	return &mockUserClassChangeRepo{changes: make(map[string]*model.UserClassChange)}
}

func (m *mockUserClassChangeRepo) GetByUserAndDate(_ context.Context, uid string, date time.Time) (*model.UserClassChange, error) {
	if ucc, ok := m.changes[uid+"_"+FormatDate(date)]; ok {
		return ucc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserClassChangeRepo) ListRange(_ context.Context, uid string, start, end time.Time) ([]model.UserClassChange, error) {
	var result []model.UserClassChange
	for _, ucc := range m.changes {
		if ucc.UID == uid && !ucc.Date.Before(start) && !ucc.Date.After(end) {
			result = append(result, *ucc)
		}
	}
	return result, nil
}

func (m *mockUserClassChangeRepo) Upsert(_ context.Context, ucc *model.UserClassChange) error {
	m.changes[ucc.UID+"_"+FormatDate(ucc.Date)] = ucc
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	logs map[string]*model.AttendanceLog // key: uid_YYYY-MM-DD_period
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{logs: make(map[string]*model.AttendanceLog)}
}

func logKey(uid string, date time.Time, period int) string {
	return fmt.Sprintf("%s_%s_%d", uid, FormatDate(date), period)
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, log *model.AttendanceLog) error {
	m.logs[logKey(log.UID, log.Date, log.PeriodIndex)] = log
	return nil
}

func (m *mockAttendanceRepo) ListByUserAndRange(_ context.Context, uid string, start, end time.Time) ([]model.AttendanceLog, error) {
	var result []model.AttendanceLog
	for _, log := range m.logs {
		if log.UID == uid && !log.Date.Before(start) && !log.Date.After(end) {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByUser(_ context.Context, uid string) ([]model.AttendanceLog, error) {
	var result []model.AttendanceLog
	for _, log := range m.logs {
		if log.UID == uid {
			result = append(result, *log)
		}
	}
	return result, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	catalogs map[string]*model.SubjectCatalog // key: uid_semesterId
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{catalogs: make(map[string]*model.SubjectCatalog)}
}

func (m *mockSubjectRepo) GetByUserAndSemester(_ context.Context, uid, semesterID string) (*model.SubjectCatalog, error) {
	if sc, ok := m.catalogs[ttKey(uid, semesterID)]; ok {
		return sc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Upsert(_ context.Context, sc *model.SubjectCatalog) error {
	m.catalogs[ttKey(sc.UID, sc.SemesterID)] = sc
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.TimetableTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.TimetableTemplate)}
}

func (m *mockTemplateRepo) GetByID(_ context.Context, templateID string) (*model.TimetableTemplate, error) {
	if tpl, ok := m.templates[templateID]; ok {
		return tpl, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) List(_ context.Context, branch, division, semester string) ([]model.TimetableTemplate, error) {
	var result []model.TimetableTemplate
	for _, tpl := range m.templates {
		if branch != "" && tpl.Branch != branch {
			continue
		}
		if division != "" && tpl.Division != division {
			continue
		}
		if semester != "" && tpl.Semester != semester {
			continue
		}
		result = append(result, *tpl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TemplateID < result[j].TemplateID })
	return result, nil
}

func (m *mockTemplateRepo) Upsert(_ context.Context, tpl *model.TimetableTemplate) error {
	m.templates[tpl.TemplateID] = tpl
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context, templateID string) error {
	delete(m.templates, templateID)
	return nil
}

// ── Mock InsightCache ──

type mockInsightCache struct {
	entries map[string]string
}

func newMockInsightCache() *mockInsightCache {
	return &mockInsightCache{entries: make(map[string]string)}
}

func cacheKey(uid, semesterID, start, end string, pct float64) string {
	return fmt.Sprintf("%s:%s:%s:%s:%g", uid, semesterID, start, end, pct)
}

func (m *mockInsightCache) GetInsight(_ context.Context, uid, semesterID, start, end string, pct float64) (string, error) {
	return m.entries[cacheKey(uid, semesterID, start, end, pct)], nil
}

func (m *mockInsightCache) SetInsight(_ context.Context, uid, semesterID, start, end string, pct float64, payload string, _ time.Duration) error {
	m.entries[cacheKey(uid, semesterID, start, end, pct)] = payload
	return nil
}

func (m *mockInsightCache) InvalidateUser(_ context.Context, uid string) error {
	for k := range m.entries {
		if len(k) >= len(uid) && k[:len(uid)] == uid {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *mockInsightCache) InvalidateAll(_ context.Context) error {
	m.entries = make(map[string]string)
	return nil
}
