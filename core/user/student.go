package user

import (
	"time"

	"github.com/trezcool/darasa/core/record"
)

// Profile is created with its Student and lives as long as the Student does.
type Profile struct {
	StudentName string    `json:"student_name"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type Student struct {
	User

	profile *Profile

	// owned
	attendance []record.Attendance
	reports    []record.Report

	// referenced, shared with other students
	notifications []*record.Notification
}

func NewStudent(id int, name, email, pwd string) (*Student, error) {
	usr, err := newUser(id, name, email, pwd, []string{RoleStudent})
	if err != nil {
		return nil, err
	}
	return &Student{
		User:    usr,
		profile: &Profile{StudentName: name, CreatedAt: usr.CreatedAt},
	}, nil
}

func (s *Student) Account() *User { return &s.User }
func (s *Student) Role() string   { return RoleStudent }
func (s *Student) member()        {}

func (s *Student) Profile() *Profile { return s.profile }

// MarkAttendance records the student as present or absent today.
// Attendance IDs are sequential per student, starting at 1.
func (s *Student) MarkAttendance(present bool) bool {
	s.attendance = append(s.attendance, record.Attendance{
		ID:        len(s.attendance) + 1,
		StudentID: s.ID,
		Date:      record.Now(),
		Status:    record.StatusOf(present),
	})
	return true
}

// Attendance returns the attendance entries in the order they were marked.
func (s *Student) Attendance() []record.Attendance {
	res := make([]record.Attendance, len(s.attendance))
	copy(res, s.attendance)
	return res
}

// AttendanceRate returns the percentage of days present and the number of entries.
func (s *Student) AttendanceRate() (float64, int) {
	return record.AttendanceRate(s.attendance)
}

func (s *Student) AddReport(r record.Report) {
	s.reports = append(s.reports, r)
}

func (s *Student) Reports() []record.Report {
	res := make([]record.Report, len(s.reports))
	copy(res, s.reports)
	return res
}

func (s *Student) AddNotification(n *record.Notification) {
	s.notifications = append(s.notifications, n)
}

// ReceiveAlerts returns the notifications the student received.
func (s *Student) ReceiveAlerts() []*record.Notification {
	res := make([]*record.Notification, len(s.notifications))
	copy(res, s.notifications)
	return res
}

func (s *Student) SubmitLeaveApplication(reason string, from, to time.Time) bool {
	return true
}
