package entity

import "time"

// Connection records that a student reached out to a tutor.
type Connection struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}
