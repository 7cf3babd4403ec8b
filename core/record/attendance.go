package record

import "time"

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
)

// StatusOf maps a presence flag to its AttendanceStatus.
func StatusOf(present bool) AttendanceStatus {
	if present {
		return Present
	}
	return Absent
}

// Attendance is a single attendance entry of a Student.
// It only lives in the collection of the Student it belongs to.
type Attendance struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	Date      time.Time        `json:"date"` // UTC
	Status    AttendanceStatus `json:"status"`
}

func (a Attendance) IsPresent() bool { return a.Status == Present }

// AttendanceRate returns the percentage of present entries in records and the number of entries.
// The rate is 0 when records is empty.
func AttendanceRate(records []Attendance) (rate float64, total int) {
	total = len(records)
	if total == 0 {
		return 0, 0
	}
	var present int
	for _, a := range records {
		if a.IsPresent() {
			present++
		}
	}
	return float64(present) / float64(total) * 100, total
}
