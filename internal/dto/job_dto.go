package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
)

type CreateJobRequest struct {
	VehicleID   int             `json:"vehicle_id" validate:"required,gt=0"`
	Reason      string          `json:"reason"`
	Description string          `json:"description"`
	Status      string          `json:"status" validate:"omitempty,oneof=abierto en_proceso listo entregado pausado"`
	OdometerKm  *int            `json:"odometer_km"`
	FuelLevel   string          `json:"fuel_level"`
	Checklist   model.Checklist `json:"checklist"`
}

type UpdateJobRequest struct {
	Reason      *string          `json:"reason"`
	Description *string          `json:"description"`
	OdometerKm  *int             `json:"odometer_km"`
	FuelLevel   *string          `json:"fuel_level"`
	Checklist   *model.Checklist `json:"checklist"`
}

type JobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=abierto en_proceso listo entregado pausado"`
}

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// JobRow is the denormalized list projection: job plus vehicle and owner.
type JobRow struct {
	Job     model.Job     `json:"job"`
	Vehicle model.Vehicle `json:"vehicle"`
	Client  model.Client  `json:"client"`
}

// JobDetailResponse joins a job with its vehicle, owner, notes (newest
// first) and its most recent quote (nil when the job has none).
type JobDetailResponse struct {
	Job     model.Job     `json:"job"`
	Vehicle model.Vehicle `json:"vehicle"`
	Client  model.Client  `json:"client"`
	Notes   []model.Note  `json:"notes"`
	Quote   *model.Quote  `json:"quote"`
}

// PrintableJobResponse is the flat context the boleta (print view) consumes.
// Tasks come from the job description lines, falling back to note contents.
type PrintableJobResponse struct {
	ID           int             `json:"id"`
	ClientName   string          `json:"client_name"`
	VehicleBrand string          `json:"vehicle_brand"`
	VehicleModel string          `json:"vehicle_model"`
	VehiclePlate string          `json:"vehicle_plate"`
	Date         string          `json:"date"`
	Tasks        []string        `json:"tasks"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	IGV          decimal.Decimal `json:"igv"`
	Total        decimal.Decimal `json:"total"`
}

// DashboardResponse summarizes recent activity: the five most recent jobs
// and the five most recently registered vehicles.
type DashboardResponse struct {
	TotalClients  int          `json:"total_clients"`
	TotalVehicles int          `json:"total_vehicles"`
	TotalJobs     int          `json:"total_jobs"`
	RecentJobs    []JobRow     `json:"recent_jobs"`
	NewVehicles   []VehicleRow `json:"new_vehicles"`
}
