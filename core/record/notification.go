package record

import "time"

// Notification is issued once and may be referenced by many Students at the same time.
type Notification struct {
	ID       int       `json:"id"`
	Message  string    `json:"message"`
	IssuedAt time.Time `json:"issued_at"` // UTC
}

// Send accepts the notification for delivery to one recipient.
func (n *Notification) Send() bool {
	return n != nil
}
