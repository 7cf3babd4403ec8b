package user

import (
	"fmt"

	"github.com/trezcool/darasa/core/record"
)

type Teacher struct {
	User

	schedules []*record.Schedule
	students  []*Student // referenced, not owned
}

func NewTeacher(id int, name, email, pwd string) (*Teacher, error) {
	usr, err := newUser(id, name, email, pwd, []string{RoleTeacher})
	if err != nil {
		return nil, err
	}
	return &Teacher{User: usr}, nil
}

func (t *Teacher) Account() *User { return &t.User }
func (t *Teacher) Role() string   { return RoleTeacher }
func (t *Teacher) member()        {}

// CreateSchedule creates a schedule and keeps a reference to it. IDs are not checked for duplicates.
func (t *Teacher) CreateSchedule(id int, course, slot string) *record.Schedule {
	sch := &record.Schedule{ID: id, CourseName: course, TimeSlot: slot}
	t.schedules = append(t.schedules, sch)
	return sch
}

func (t *Teacher) Schedules() []*record.Schedule {
	res := make([]*record.Schedule, len(t.schedules))
	copy(res, t.schedules)
	return res
}

// MarkAttendance marks attendance on behalf of s. The entry belongs to s.
func (t *Teacher) MarkAttendance(s *Student, present bool) bool {
	if s == nil {
		return false
	}
	return s.MarkAttendance(present)
}

// GenerateReport writes a report about s and hands it over to s.
func (t *Teacher) GenerateReport(s *Student, reportType string) record.Report {
	if s == nil {
		return record.Report{}
	}
	rate, total := s.AttendanceRate()
	r := record.Report{
		ID:          len(s.reports) + 1,
		Type:        reportType,
		GeneratedAt: record.Now(),
		Content: fmt.Sprintf(
			"%s report for %s (ID: %d, Email: %s): %d attendance entries, %.1f%% present. Prepared by %s.",
			reportType, s.Name, s.ID, s.Email, total, rate, t.Name,
		),
	}
	s.AddReport(r)
	return r
}

// FlagLowAttendance reports whether the attendance rate of s is strictly below threshold percent.
// A student with no attendance entries is never flagged.
func (t *Teacher) FlagLowAttendance(s *Student, threshold float64) bool {
	if s == nil {
		return false
	}
	rate, total := s.AttendanceRate()
	if total == 0 {
		return false
	}
	return rate < threshold
}

// AddStudent keeps a reference to s; s is not owned by t.
func (t *Teacher) AddStudent(s *Student) {
	if s == nil {
		return
	}
	t.students = append(t.students, s)
}

func (t *Teacher) Students() []*Student {
	res := make([]*Student, len(t.students))
	copy(res, t.students)
	return res
}

// LowAttendanceStudents returns the students of t flagged by FlagLowAttendance.
func (t *Teacher) LowAttendanceStudents(threshold float64) []*Student {
	var flagged []*Student
	for _, s := range t.students {
		if t.FlagLowAttendance(s, threshold) {
			flagged = append(flagged, s)
		}
	}
	return flagged
}
