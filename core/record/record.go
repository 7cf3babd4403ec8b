// Package record holds the plain records (attendance, notifications, reports and schedules)
// owned or referenced by school members.
package record

import "time"

// NowFunc returns the current time; records are stamped in UTC.
var NowFunc = time.Now // mockable

func Now() time.Time {
	return NowFunc().UTC()
}
