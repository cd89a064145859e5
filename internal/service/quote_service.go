package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/infra"
	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/pricing"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/worker"
)

// ErrMissingAssociation: the quote only carries free-text client/vehicle
// labels, so no work order can be derived from it.
var ErrMissingAssociation = errors.New("la cotizacion no tiene cliente/vehiculo asociado")

type QuoteService interface {
	Create(ctx context.Context, createdBy int, req dto.CreateQuoteRequest) (*model.Quote, error)
	List(ctx context.Context, query string) ([]dto.QuoteRow, error)
	Print(ctx context.Context, id int) (*dto.QuotePrintResponse, error)
	// Duplicate copies the pricing and descriptive fields of a quote into a
	// new one with fresh id, created_at and created_by; totals are recomputed
	// from the copied items.
	Duplicate(ctx context.Context, id, createdBy int) (*model.Quote, error)
	// ConvertToJob derives a work order from a quote that has both a resolved
	// client and vehicle, and appends a provenance note to the new job.
	ConvertToJob(ctx context.Context, id, mechanicID int) (int, error)
	// PDFPath renders the quote to a PDF file and returns its path.
	PDFPath(ctx context.Context, id int) (string, error)
	// Email renders the quote PDF and enqueues an email to the given address
	// (falling back to the resolved client's address when empty).
	Email(ctx context.Context, id int, to string) error
}

type quoteService struct {
	quotes     repository.QuoteRepository
	jobs       repository.JobRepository
	notes      repository.NoteRepository
	clients    repository.ClientRepository
	vehicles   repository.VehicleRepository
	dispatcher *worker.Dispatcher
	pdfDir     string
}

func NewQuoteService(
	quotes repository.QuoteRepository,
	jobs repository.JobRepository,
	notes repository.NoteRepository,
	clients repository.ClientRepository,
	vehicles repository.VehicleRepository,
	dispatcher *worker.Dispatcher,
	pdfDir string,
) QuoteService {
	return &quoteService{
		quotes:     quotes,
		jobs:       jobs,
		notes:      notes,
		clients:    clients,
		vehicles:   vehicles,
		dispatcher: dispatcher,
		pdfDir:     pdfDir,
	}
}

func (s *quoteService) Create(ctx context.Context, createdBy int, req dto.CreateQuoteRequest) (*model.Quote, error) {
	items := make([]model.QuoteItem, 0, len(req.Items))
	for _, it := range req.Items {
		if strings.TrimSpace(it.Desc) == "" {
			continue
		}
		items = append(items, model.QuoteItem{
			Desc:      strings.TrimSpace(it.Desc),
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
		})
	}
	// Simple mode: one flat amount becomes a single service line item.
	if len(items) == 0 && req.Amount.IsPositive() {
		items = append(items, model.QuoteItem{
			Desc:      "Servicios",
			Qty:       decimal.NewFromInt(1),
			UnitPrice: req.Amount,
		})
	}

	q := &model.Quote{
		JobID:          req.JobID,
		ClientID:       req.ClientID,
		VehicleID:      req.VehicleID,
		ClientName:     strings.TrimSpace(req.ClientName),
		VehicleLabel:   strings.TrimSpace(req.VehicleLabel),
		ServiceLines:   splitLines(req.Services),
		RequireInvoice: req.RequireInvoice,
		Currency:       "PEN",
		Items:          items,
		Meta:           req.Meta,
		CreatedBy:      createdBy,
	}
	if _, err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) List(ctx context.Context, query string) ([]dto.QuoteRow, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.QuoteRow, 0, len(quotes))
	for _, q := range quotes {
		name := q.ClientName
		if name == "" && q.ClientID != nil {
			if c, err := s.clients.FindByID(ctx, *q.ClientID); err == nil {
				name = c.FullName
			}
		}
		label := q.VehicleLabel
		if label == "" && q.VehicleID != nil {
			if v, err := s.vehicles.FindByID(ctx, *q.VehicleID); err == nil {
				label = v.Plate
			}
		}
		rows = append(rows, dto.QuoteRow{
			ID:           q.ID,
			JobID:        q.JobID,
			ClientName:   name,
			VehicleLabel: label,
			Currency:     q.Currency,
			Subtotal:     q.Subtotal,
			IGV:          q.IGV,
			Total:        q.Total,
			CreatedAt:    q.CreatedAt.Format(timeLayout),
		})
	}

	rows = filterRows(rows, query, func(r dto.QuoteRow) []string {
		return []string{r.ClientName, r.VehicleLabel}
	})
	sortStableDesc(rows, func(r dto.QuoteRow) string { return r.CreatedAt })
	return rows, nil
}

func (s *quoteService) Print(ctx context.Context, id int) (*dto.QuotePrintResponse, error) {
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, vehicle := s.resolveParties(ctx, q)
	return &dto.QuotePrintResponse{
		Quote:   *q,
		Client:  client,
		Vehicle: vehicle,
		Text:    RenderQuoteAsText(q),
	}, nil
}

// resolveParties loads the quote's client and vehicle, synthesizing them from
// the free-text labels (and meta marca/modelo) when only labels were taken.
func (s *quoteService) resolveParties(ctx context.Context, q *model.Quote) (model.Client, model.Vehicle) {
	var client model.Client
	if q.ClientID != nil {
		if c, err := s.clients.FindByID(ctx, *q.ClientID); err == nil {
			client = *c
		}
	}
	if client.ID == 0 && q.ClientName != "" {
		client = model.Client{FullName: q.ClientName}
	}

	var vehicle model.Vehicle
	if q.VehicleID != nil {
		if v, err := s.vehicles.FindByID(ctx, *q.VehicleID); err == nil {
			vehicle = *v
		}
	}
	if vehicle.ID == 0 && q.VehicleLabel != "" {
		vehicle = model.Vehicle{
			Plate: q.VehicleLabel,
			Brand: q.Meta["marca"],
			Model: q.Meta["modelo"],
		}
	}
	return client, vehicle
}

func (s *quoteService) Duplicate(ctx context.Context, id, createdBy int) (*model.Quote, error) {
	src, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := &model.Quote{
		JobID:          src.JobID,
		ClientID:       src.ClientID,
		VehicleID:      src.VehicleID,
		ClientName:     src.ClientName,
		VehicleLabel:   src.VehicleLabel,
		ServiceLines:   src.ServiceLines,
		RequireInvoice: src.RequireInvoice,
		IGVRate:        src.IGVRate,
		Currency:       src.Currency,
		Items:          src.Items,
		Meta:           src.Meta,
		CreatedBy:      createdBy,
	}
	if _, err := s.quotes.Create(ctx, dup); err != nil {
		return nil, err
	}
	log.Info().Int("source", id).Int("copy", dup.ID).Msg("quote duplicated")
	return dup, nil
}

func (s *quoteService) ConvertToJob(ctx context.Context, id, mechanicID int) (int, error) {
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	// A zero id is as unresolved as a missing one: quotes taken in simple
	// mode may carry explicit zeros instead of nil pointers.
	if q.VehicleID == nil || *q.VehicleID == 0 || q.ClientID == nil || *q.ClientID == 0 {
		return 0, ErrMissingAssociation
	}

	job := &model.Job{
		VehicleID:   *q.VehicleID,
		MechanicID:  mechanicID,
		Reason:      fmt.Sprintf("Cotización #%d", id),
		Description: fmt.Sprintf("Creado desde Cotización #%d\n\n%s", id, RenderQuoteAsText(q)),
		Status:      model.StatusAbierto,
	}
	jobID, err := s.jobs.Create(ctx, job)
	if err != nil {
		return 0, err
	}

	note := &model.Note{
		JobID:   jobID,
		UserID:  mechanicID,
		Content: fmt.Sprintf("OT creada a partir de la Cotización #%d.", id),
	}
	if _, err := s.notes.Create(ctx, note); err != nil {
		// The job exists but its provenance note does not; surface the
		// failure instead of pretending the conversion completed cleanly.
		return jobID, fmt.Errorf("nota de procedencia OT %d: %w", jobID, err)
	}

	log.Info().Int("quote_id", id).Int("job_id", jobID).Msg("quote converted to job")
	return jobID, nil
}

func (s *quoteService) PDFPath(ctx context.Context, id int) (string, error) {
	view, err := s.Print(ctx, id)
	if err != nil {
		return "", err
	}
	return infra.GenerateQuotePDF(view, s.pdfDir)
}

func (s *quoteService) Email(ctx context.Context, id int, to string) error {
	view, err := s.Print(ctx, id)
	if err != nil {
		return err
	}
	if to == "" {
		to = view.Client.Email
	}
	if to == "" {
		return errors.New("la cotizacion no tiene un correo de destino")
	}

	path, err := infra.GenerateQuotePDF(view, s.pdfDir)
	if err != nil {
		return err
	}
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailTaskPayload{
		ToEmail: to,
		Subject: fmt.Sprintf("Cotización #%d — APS MOTORSPORTS", id),
		Body:    RenderQuoteAsText(&view.Quote),
		PDFPath: path,
	})
}

// RenderQuoteAsText produces the deterministic plain-text rendering consumed
// by print views and job descriptions: service lines (or itemized lines),
// then subtotal, tax and total lines. The format is a contract — job
// descriptions generated by ConvertToJob embed it verbatim.
func RenderQuoteAsText(q *model.Quote) string {
	var lines []string
	switch {
	case len(q.ServiceLines) > 0:
		lines = append(lines, "Servicios solicitados:")
		for _, sl := range q.ServiceLines {
			lines = append(lines, "- "+sl)
		}
		lines = append(lines, "")
	case len(q.Items) > 0:
		lines = append(lines, "Ítems cotizados:")
		for _, it := range q.Items {
			lines = append(lines, fmt.Sprintf("- %s · cant: %s · p.u.: S/ %s · total: S/ %s",
				it.Desc, it.Qty.StringFixed(2), it.UnitPrice.StringFixed(2), it.Total.StringFixed(2)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Subtotal: S/ "+q.Subtotal.StringFixed(2))
	if q.RequireInvoice {
		rate := q.IGVRate
		if rate.IsZero() {
			rate = pricing.DefaultIGVRate
		}
		lines = append(lines, fmt.Sprintf("IGV %s%%: S/ %s", rate.Shift(2).String(), q.IGV.StringFixed(2)))
	} else {
		lines = append(lines, "IGV: 0% (no factura)")
	}
	lines = append(lines, "TOTAL: S/ "+q.Total.StringFixed(2))
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
