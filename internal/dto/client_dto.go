package dto

// CreateClientRequest mirrors the intake form: a new client may be registered
// together with their first vehicle in one step. The vehicle part is taken
// when Plate is non-empty.
type CreateClientRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`

	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// ClientRow is the denormalized list projection.
type ClientRow struct {
	ID            int    `json:"id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CreatedAt     string `json:"created_at"`
	VehiclesCount int    `json:"vehicles_count"`
}

type CreateClientResponse struct {
	ClientID  int  `json:"client_id"`
	VehicleID *int `json:"vehicle_id,omitempty"`
}
