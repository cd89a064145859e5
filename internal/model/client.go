package model

import "time"

// Client owns zero or more vehicles. Deleting a client cascades to its
// vehicles and their jobs (notes and quotes keep their orphaned references).
type Client struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
