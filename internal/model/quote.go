package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItem is one priced line of a quote. Total is persisted redundantly
// (qty × unit_price rounded to 2 decimals) so older documents render
// bit-exactly without recomputation.
type QuoteItem struct {
	Desc      string          `json:"desc"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Quote is a price estimate, optionally tied to a job. ClientID/VehicleID may
// be nil when the quote was taken with free-text client/vehicle labels only —
// such quotes cannot be converted into a job.
type Quote struct {
	ID             int               `json:"id"`
	JobID          *int              `json:"job_id"`
	ClientID       *int              `json:"client_id"`
	VehicleID      *int              `json:"vehicle_id"`
	ClientName     string            `json:"client_name"`
	VehicleLabel   string            `json:"vehicle_label"`
	ServiceLines   []string          `json:"services_lines"`
	RequireInvoice bool              `json:"require_invoice"`
	IGVRate        decimal.Decimal   `json:"igv_rate"`
	Currency       string            `json:"currency"`
	Items          []QuoteItem       `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	IGV            decimal.Decimal   `json:"igv"`
	Total          decimal.Decimal   `json:"total"`
	Meta           map[string]string `json:"meta,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	CreatedBy      int               `json:"created_by"`
}
