package dto

type CreateVehicleRequest struct {
	ClientID int    `json:"client_id" validate:"required,gt=0"`
	Plate    string `json:"plate" validate:"required"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     *int   `json:"year"`
	VIN      string `json:"vin"`
	Color    string `json:"color"`
}

type UpdateVehicleRequest struct {
	ClientID *int    `json:"client_id"`
	Plate    *string `json:"plate"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	Year     *int    `json:"year"`
	VIN      *string `json:"vin"`
	Color    *string `json:"color"`
}

// VehicleRow is the denormalized list projection (vehicle + owner name).
type VehicleRow struct {
	ID         int    `json:"id"`
	ClientID   int    `json:"client_id"`
	ClientName string `json:"client_name"`
	Plate      string `json:"plate"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Year       *int   `json:"year"`
	VIN        string `json:"vin"`
	Color      string `json:"color"`
}

// VehicleInfoResponse is the quick-lookup summary used by intake forms.
type VehicleInfoResponse struct {
	ClientName  string `json:"client_name"`
	LastJobDate string `json:"last_job_date"`
}
