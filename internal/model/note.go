package model

import "time"

// Note is an append-only annotation on a job, ordered by creation time.
type Note struct {
	ID        int       `json:"id"`
	JobID     int       `json:"job_id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
