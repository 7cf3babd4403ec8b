package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, Present, StatusOf(true))
	assert.Equal(t, Absent, StatusOf(false))
}

func TestAttendanceRate(t *testing.T) {
	att := func(statuses ...AttendanceStatus) []Attendance {
		records := make([]Attendance, 0, len(statuses))
		for i, s := range statuses {
			records = append(records, Attendance{ID: i + 1, StudentID: 1, Status: s})
		}
		return records
	}

	tests := []struct {
		name      string
		records   []Attendance
		wantRate  float64
		wantTotal int
	}{
		{name: "no records", records: nil},
		{name: "all present", records: att(Present, Present), wantRate: 100, wantTotal: 2},
		{name: "all absent", records: att(Absent, Absent, Absent), wantRate: 0, wantTotal: 3},
		{name: "half", records: att(Present, Absent), wantRate: 50, wantTotal: 2},
		{name: "three quarters", records: att(Present, Absent, Present, Present), wantRate: 75, wantTotal: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, total := AttendanceRate(tt.records)
			assert.Equal(t, tt.wantTotal, total)
			assert.InDelta(t, tt.wantRate, rate, 1e-9)
		})
	}
}

func TestNotification_Send(t *testing.T) {
	var nilNotif *Notification
	assert.False(t, nilNotif.Send())
	assert.True(t, (&Notification{ID: 1, Message: "hello"}).Send())
}

func TestNow(t *testing.T) {
	assert.Equal(t, "UTC", Now().Location().String())
}
