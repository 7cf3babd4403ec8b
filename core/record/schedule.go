package record

// Schedule is a course time slot. It exists independently of whoever holds it.
type Schedule struct {
	ID         int    `json:"id"`
	CourseName string `json:"course_name"`
	TimeSlot   string `json:"time_slot"`
}
