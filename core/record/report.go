package record

import "time"

const (
	ReportAttendance  = "Attendance"
	ReportPerformance = "Class Performance"
	ReportProgress    = "Progress"
)

type Report struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generated_at"` // UTC
	Content     string    `json:"content"`
}
