package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
)

type QuoteItemRequest struct {
	Desc      string          `json:"desc" validate:"required"`
	Qty       decimal.Decimal `json:"qty" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// CreateQuoteRequest supports both forms of the original intake: itemized
// (Items) and simple (Amount only, which becomes one "Servicios" line).
// ClientID/VehicleID resolve real records; ClientName/VehicleLabel are the
// free-text fallback for walk-ins.
type CreateQuoteRequest struct {
	JobID          *int               `json:"job_id"`
	ClientID       *int               `json:"client_id" validate:"omitempty,gt=0"`
	VehicleID      *int               `json:"vehicle_id" validate:"omitempty,gt=0"`
	ClientName     string             `json:"client_name"`
	VehicleLabel   string             `json:"vehicle_label"`
	Services       string             `json:"services"`
	Items          []QuoteItemRequest `json:"items" validate:"dive"`
	Amount         decimal.Decimal    `json:"amount"`
	RequireInvoice bool               `json:"require_invoice"`
	Meta           map[string]string  `json:"meta"`
}

// QuoteRow is the list projection with persisted totals.
type QuoteRow struct {
	ID           int             `json:"id"`
	JobID        *int            `json:"job_id"`
	ClientName   string          `json:"client_name"`
	VehicleLabel string          `json:"vehicle_label"`
	Currency     string          `json:"currency"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	IGV          decimal.Decimal `json:"igv"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    string          `json:"created_at"`
}

// QuotePrintResponse is the print context: the quote plus its resolved
// client and vehicle. When the quote only carries free-text labels the
// client/vehicle blocks are synthesized from them.
type QuotePrintResponse struct {
	Quote   model.Quote   `json:"quote"`
	Client  model.Client  `json:"client"`
	Vehicle model.Vehicle `json:"vehicle"`
	Text    string        `json:"text"`
}

type ConvertQuoteResponse struct {
	QuoteID int `json:"quote_id"`
	JobID   int `json:"job_id"`
}
