package model

// Vehicle belongs to exactly one client. Plate is stored uppercase and must
// be unique across all vehicles.
type Vehicle struct {
	ID       int    `json:"id"`
	ClientID int    `json:"client_id"`
	Plate    string `json:"plate"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     *int   `json:"year"`
	VIN      string `json:"vin"`
	Color    string `json:"color"`
}
