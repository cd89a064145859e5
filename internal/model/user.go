package model

import "time"

// Roles disponibles. "mecanico" es el rol por defecto para personal de taller.
const (
	RolAdmin    = "admin"
	RolMecanico = "mecanico"
)

// User is a workshop system account. PasswordHash is bcrypt and is never
// serialized into API responses (repositories strip it via DTOs).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
