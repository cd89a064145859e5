package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
	"github.com/mirandajandir7-prog/mitaller/internal/worker"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type quoteFixture struct {
	db       *store.Store
	quotes   repository.QuoteRepository
	jobs     repository.JobRepository
	notes    repository.NoteRepository
	clients  repository.ClientRepository
	vehicles repository.VehicleRepository
	svc      QuoteService
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "taller.json"))
	require.NoError(t, err)

	f := &quoteFixture{
		db:       db,
		quotes:   repository.NewQuoteRepository(db),
		jobs:     repository.NewJobRepository(db),
		notes:    repository.NewNoteRepository(db),
		clients:  repository.NewClientRepository(db),
		vehicles: repository.NewVehicleRepository(db),
	}
	f.svc = NewQuoteService(f.quotes, f.jobs, f.notes, f.clients, f.vehicles,
		worker.NewDispatcher(), t.TempDir())
	return f
}

func TestQuoteCreateSimpleMode(t *testing.T) {
	f := newQuoteFixture(t)

	q, err := f.svc.Create(context.Background(), 1, dto.CreateQuoteRequest{
		ClientName: "Cliente de paso",
		Amount:     dec("150"),
	})
	require.NoError(t, err)

	require.Len(t, q.Items, 1)
	assert.Equal(t, "Servicios", q.Items[0].Desc)
	assert.Equal(t, "1", q.Items[0].Qty.String())
	assert.Equal(t, "150.00", q.Subtotal.StringFixed(2))
	assert.Equal(t, "150.00", q.Total.StringFixed(2), "no invoice, no IGV")
}

func TestQuoteCreateSkipsBlankItems(t *testing.T) {
	f := newQuoteFixture(t)

	q, err := f.svc.Create(context.Background(), 1, dto.CreateQuoteRequest{
		Items: []dto.QuoteItemRequest{
			{Desc: "  ", Qty: dec("1"), UnitPrice: dec("10")},
			{Desc: "Frenos", Qty: dec("2"), UnitPrice: dec("80")},
		},
	})
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, "Frenos", q.Items[0].Desc)
}

func TestQuoteDuplicateCopiesEverythingButIdentity(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	src, err := f.svc.Create(ctx, 1, dto.CreateQuoteRequest{
		ClientName:     "Ana",
		VehicleLabel:   "ABC-123",
		RequireInvoice: true,
		Items: []dto.QuoteItemRequest{
			{Desc: "Suspension", Qty: dec("1"), UnitPrice: dec("400")},
		},
	})
	require.NoError(t, err)

	dup, err := f.svc.Duplicate(ctx, src.ID, 2)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, 2, dup.CreatedBy)
	assert.False(t, dup.CreatedAt.Before(src.CreatedAt))
	assert.Equal(t, "Ana", dup.ClientName)
	assert.Equal(t, "ABC-123", dup.VehicleLabel)
	assert.True(t, dup.Subtotal.Equal(src.Subtotal))
	assert.True(t, dup.IGV.Equal(src.IGV))
	assert.True(t, dup.Total.Equal(src.Total))
}

func TestQuoteConvertToJob(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	client := &model.Client{FullName: "Ana"}
	_, err := f.clients.Create(ctx, client)
	require.NoError(t, err)
	vehicle := &model.Vehicle{ClientID: client.ID, Plate: "ABC-123"}
	_, err = f.vehicles.Create(ctx, vehicle)
	require.NoError(t, err)

	q, err := f.svc.Create(ctx, 1, dto.CreateQuoteRequest{
		ClientID:  &client.ID,
		VehicleID: &vehicle.ID,
		Items: []dto.QuoteItemRequest{
			{Desc: "Embrague", Qty: dec("1"), UnitPrice: dec("900")},
		},
	})
	require.NoError(t, err)

	jobID, err := f.svc.ConvertToJob(ctx, q.ID, 5)
	require.NoError(t, err)

	job, err := f.jobs.FindByID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, job.VehicleID)
	assert.Equal(t, 5, job.MechanicID)
	assert.Equal(t, model.StatusAbierto, job.Status)
	assert.Contains(t, job.Reason, "Cotización")
	assert.Contains(t, job.Description, "Creado desde Cotización")
	assert.Contains(t, job.Description, "TOTAL: S/ 900.00")

	notes, err := f.notes.ListByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Content, "OT creada a partir de la Cotización")
	assert.Equal(t, 5, notes[0].UserID)
}

func TestQuoteConvertRequiresAssociations(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	// Free-text labels only: nothing to hang a work order on.
	q, err := f.svc.Create(ctx, 1, dto.CreateQuoteRequest{
		ClientName:   "Cliente de paso",
		VehicleLabel: "Toyota rojo",
		Amount:       dec("80"),
	})
	require.NoError(t, err)

	_, err = f.svc.ConvertToJob(ctx, q.ID, 1)
	assert.ErrorIs(t, err, ErrMissingAssociation)

	// No job was created.
	jobs, err := f.jobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestQuoteConvertRejectsZeroAssociations(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	// Explicit zeros resolve no records either.
	zero := 0
	q, err := f.svc.Create(ctx, 1, dto.CreateQuoteRequest{
		ClientID:   &zero,
		VehicleID:  &zero,
		ClientName: "Cliente de paso",
		Amount:     dec("120"),
	})
	require.NoError(t, err)

	_, err = f.svc.ConvertToJob(ctx, q.ID, 1)
	assert.ErrorIs(t, err, ErrMissingAssociation)

	jobs, err := f.jobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestQuotePrintSynthesizesPartiesFromLabels(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, 1, dto.CreateQuoteRequest{
		ClientName:   "Cliente de paso",
		VehicleLabel: "XYZ-987",
		Amount:       dec("80"),
		Meta:         map[string]string{"marca": "Toyota", "modelo": "Yaris"},
	})
	require.NoError(t, err)

	view, err := f.svc.Print(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente de paso", view.Client.FullName)
	assert.Equal(t, "XYZ-987", view.Vehicle.Plate)
	assert.Equal(t, "Toyota", view.Vehicle.Brand)
	assert.Equal(t, "Yaris", view.Vehicle.Model)
	assert.NotEmpty(t, view.Text)
}

func TestRenderQuoteAsText(t *testing.T) {
	q := &model.Quote{
		ServiceLines:   []string{"Cambio de aceite", "Alineamiento"},
		RequireInvoice: true,
		IGVRate:        dec("0.18"),
		Subtotal:       dec("100"),
		IGV:            dec("18"),
		Total:          dec("118"),
	}
	text := RenderQuoteAsText(q)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Servicios solicitados:", lines[0])
	assert.Equal(t, "- Cambio de aceite", lines[1])
	assert.Equal(t, "- Alineamiento", lines[2])
	assert.Contains(t, text, "Subtotal: S/ 100.00")
	assert.Contains(t, text, "IGV 18%: S/ 18.00")
	assert.Contains(t, text, "TOTAL: S/ 118.00")
}

func TestRenderQuoteAsTextWithoutInvoice(t *testing.T) {
	q := &model.Quote{
		Items: []model.QuoteItem{
			{Desc: "Frenos", Qty: dec("2"), UnitPrice: dec("80"), Total: dec("160")},
		},
		Subtotal: dec("160"),
		Total:    dec("160"),
	}
	text := RenderQuoteAsText(q)

	assert.Contains(t, text, "Ítems cotizados:")
	assert.Contains(t, text, "- Frenos · cant: 2.00 · p.u.: S/ 80.00 · total: S/ 160.00")
	assert.Contains(t, text, "IGV: 0% (no factura)")
	assert.NotContains(t, text, "IGV 18%")
}
