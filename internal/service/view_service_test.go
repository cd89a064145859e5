package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

type viewFixture struct {
	clients  repository.ClientRepository
	vehicles repository.VehicleRepository
	jobs     repository.JobRepository
	notes    repository.NoteRepository
	quotes   repository.QuoteRepository
	svc      ViewService
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "taller.json"))
	require.NoError(t, err)

	f := &viewFixture{
		clients:  repository.NewClientRepository(db),
		vehicles: repository.NewVehicleRepository(db),
		jobs:     repository.NewJobRepository(db),
		notes:    repository.NewNoteRepository(db),
		quotes:   repository.NewQuoteRepository(db),
	}
	f.svc = NewViewService(f.clients, f.vehicles, f.jobs, f.notes, f.quotes)
	return f
}

func (f *viewFixture) seedClientWithVehicle(t *testing.T, name, plate string) (*model.Client, *model.Vehicle) {
	t.Helper()
	ctx := context.Background()
	c := &model.Client{FullName: name}
	_, err := f.clients.Create(ctx, c)
	require.NoError(t, err)
	v := &model.Vehicle{ClientID: c.ID, Plate: plate, Brand: "Toyota", Model: "Hilux"}
	_, err = f.vehicles.Create(ctx, v)
	require.NoError(t, err)
	return c, v
}

func TestClientsListSortsAndCountsVehicles(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	zoe, _ := f.seedClientWithVehicle(t, "zoe ramirez", "AAA-111")
	_, err := f.vehicles.Create(ctx, &model.Vehicle{ClientID: zoe.ID, Plate: "BBB-222"})
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, &model.Client{FullName: "Ana Perez"})
	require.NoError(t, err)

	rows, err := f.svc.ClientsList(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Case-insensitive name sort.
	assert.Equal(t, "Ana Perez", rows[0].FullName)
	assert.Equal(t, "zoe ramirez", rows[1].FullName)
	assert.Equal(t, 0, rows[0].VehiclesCount)
	assert.Equal(t, 2, rows[1].VehiclesCount)
}

func TestClientsListFilter(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, err := f.clients.Create(ctx, &model.Client{FullName: "Ana Perez", Phone: "999111222"})
	require.NoError(t, err)
	_, err = f.clients.Create(ctx, &model.Client{FullName: "Luis Soto"})
	require.NoError(t, err)

	rows, err := f.svc.ClientsList(ctx, "PEREZ")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Perez", rows[0].FullName)

	rows, err = f.svc.ClientsList(ctx, "999111")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = f.svc.ClientsList(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestVehiclesListJoinsOwnerName(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	f.seedClientWithVehicle(t, "Ana Perez", "ZZZ-999")
	f.seedClientWithVehicle(t, "Luis Soto", "AAA-111")

	rows, err := f.svc.VehiclesList(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Plate sort puts AAA first.
	assert.Equal(t, "AAA-111", rows[0].Plate)
	assert.Equal(t, "Luis Soto", rows[0].ClientName)
	assert.Equal(t, "ZZZ-999", rows[1].Plate)
	assert.Equal(t, "Ana Perez", rows[1].ClientName)
}

func TestJobsListNewestFirstAndFilterByPlate(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, v1 := f.seedClientWithVehicle(t, "Ana", "AAA-111")
	_, v2 := f.seedClientWithVehicle(t, "Luis", "BBB-222")

	older := &model.Job{VehicleID: v1.ID, Reason: "aceite",
		IntakeDate: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	newer := &model.Job{VehicleID: v2.ID, Reason: "frenos",
		IntakeDate: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)}
	_, err := f.jobs.Create(ctx, older)
	require.NoError(t, err)
	_, err = f.jobs.Create(ctx, newer)
	require.NoError(t, err)

	rows, err := f.svc.JobsList(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "frenos", rows[0].Job.Reason)
	assert.Equal(t, "aceite", rows[1].Job.Reason)

	rows, err = f.svc.JobsList(ctx, "aaa-111")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "aceite", rows[0].Job.Reason)
}

func TestJobWithContext(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	client, vehicle := f.seedClientWithVehicle(t, "Ana", "AAA-111")
	job := &model.Job{VehicleID: vehicle.ID, Reason: "ruido"}
	_, err := f.jobs.Create(ctx, job)
	require.NoError(t, err)

	early := &model.Note{JobID: job.ID, UserID: 1, Content: "recibido",
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	late := &model.Note{JobID: job.ID, UserID: 1, Content: "diagnosticado",
		CreatedAt: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)}
	_, err = f.notes.Create(ctx, early)
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, late)
	require.NoError(t, err)

	q := &model.Quote{JobID: &job.ID}
	_, err = f.quotes.Create(ctx, q)
	require.NoError(t, err)

	detail, err := f.svc.JobWithContext(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, detail.Client.ID)
	assert.Equal(t, vehicle.ID, detail.Vehicle.ID)
	require.Len(t, detail.Notes, 2)
	assert.Equal(t, "diagnosticado", detail.Notes[0].Content, "newest note first")
	require.NotNil(t, detail.Quote)
	assert.Equal(t, q.ID, detail.Quote.ID)
}

func TestJobWithContextToleratesMissingQuoteAndOrphanedVehicle(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	job := &model.Job{VehicleID: 999, Reason: "huérfana"}
	_, err := f.jobs.Create(ctx, job)
	require.NoError(t, err)

	detail, err := f.svc.JobWithContext(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Quote)
	assert.Zero(t, detail.Vehicle.ID)
	assert.Zero(t, detail.Client.ID)
	assert.Empty(t, detail.Notes)
}

func TestVehicleInfo(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, vehicle := f.seedClientWithVehicle(t, "Ana Perez", "AAA-111")

	// No jobs yet: owner name only.
	info, err := f.svc.VehicleInfo(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Perez", info.ClientName)
	assert.Empty(t, info.LastJobDate)

	_, err = f.jobs.Create(ctx, &model.Job{VehicleID: vehicle.ID,
		IntakeDate: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.jobs.Create(ctx, &model.Job{VehicleID: vehicle.ID,
		IntakeDate: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	info, err = f.svc.VehicleInfo(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01T09:00:00Z", info.LastJobDate)
}

func TestPrintableJobFromDescription(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, vehicle := f.seedClientWithVehicle(t, "Ana Perez", "AAA-111")
	job := &model.Job{
		VehicleID:   vehicle.ID,
		Description: "Cambio de aceite\n\n  Rotación de llantas  \n",
		IntakeDate:  time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	_, err := f.jobs.Create(ctx, job)
	require.NoError(t, err)

	doc, err := f.svc.PrintableJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cambio de aceite", "Rotación de llantas"}, doc.Tasks)
	assert.Equal(t, "15/03/2026", doc.Date)
	assert.Equal(t, "Ana Perez", doc.ClientName)
	assert.Equal(t, "AAA-111", doc.VehiclePlate)
	assert.True(t, doc.Subtotal.IsZero())
	assert.True(t, doc.Total.IsZero())
}

func TestPrintableJobFallsBackToNotesAndQuoteTotals(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, vehicle := f.seedClientWithVehicle(t, "Ana", "AAA-111")
	job := &model.Job{VehicleID: vehicle.ID}
	_, err := f.jobs.Create(ctx, job)
	require.NoError(t, err)

	_, err = f.notes.Create(ctx, &model.Note{JobID: job.ID, Content: "primera",
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, &model.Note{JobID: job.ID, Content: "segunda",
		CreatedAt: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	q := &model.Quote{JobID: &job.ID, RequireInvoice: true,
		Items: []model.QuoteItem{{Desc: "Motor", Qty: dec("1"), UnitPrice: dec("1000")}}}
	_, err = f.quotes.Create(ctx, q)
	require.NoError(t, err)

	doc, err := f.svc.PrintableJob(ctx, job.ID)
	require.NoError(t, err)
	// Notes in chronological order when the description is empty.
	assert.Equal(t, []string{"primera", "segunda"}, doc.Tasks)
	assert.Equal(t, "1000.00", doc.Subtotal.StringFixed(2))
	assert.Equal(t, "180.00", doc.IGV.StringFixed(2))
	assert.Equal(t, "1180.00", doc.Total.StringFixed(2))
}

func TestPrintableJobUsesDeliveryDateWhenDelivered(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, vehicle := f.seedClientWithVehicle(t, "Ana", "AAA-111")
	job := &model.Job{VehicleID: vehicle.ID,
		IntakeDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	_, err := f.jobs.Create(ctx, job)
	require.NoError(t, err)
	require.NoError(t, f.jobs.SetStatus(ctx, job.ID, model.StatusEntregado))

	doc, err := f.svc.PrintableJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("02/01/2006"), doc.Date)
}

func TestDashboardTotalsAndRecency(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	_, vehicle := f.seedClientWithVehicle(t, "Ana", "AAA-111")
	for i := 0; i < 7; i++ {
		_, err := f.jobs.Create(ctx, &model.Job{VehicleID: vehicle.ID,
			IntakeDate: time.Date(2026, 1, 1+i, 9, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
	}

	dash, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.TotalClients)
	assert.Equal(t, 1, dash.TotalVehicles)
	assert.Equal(t, 7, dash.TotalJobs)
	require.Len(t, dash.RecentJobs, 5)
	// Most recent intake first.
	assert.Equal(t, 7, dash.RecentJobs[0].Job.IntakeDate.Day())
	assert.Len(t, dash.NewVehicles, 1)
}
