package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
)

const (
	timeLayout = time.RFC3339
	dateLayout = "02/01/2006"
)

// ViewService assembles denormalized read models by joining entities.
// Every method is a pure read: no view ever mutates the store.
type ViewService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ClientsList(ctx context.Context, query string) ([]dto.ClientRow, error)
	VehiclesList(ctx context.Context, query string) ([]dto.VehicleRow, error)
	JobsList(ctx context.Context, query string) ([]dto.JobRow, error)
	// JobWithContext joins a job with its vehicle, the vehicle's owner, the
	// job's notes (newest first) and its latest quote (nil when none).
	JobWithContext(ctx context.Context, jobID int) (*dto.JobDetailResponse, error)
	// VehicleInfo returns the owner's name and the intake date of the
	// vehicle's most recent job; both empty when nothing exists.
	VehicleInfo(ctx context.Context, vehicleID int) (*dto.VehicleInfoResponse, error)
	// PrintableJob builds the boleta context: task lines from the job
	// description, falling back to note contents in chronological order,
	// plus the latest quote's totals (zeros without a quote).
	PrintableJob(ctx context.Context, jobID int) (*dto.PrintableJobResponse, error)
}

type viewService struct {
	clients  repository.ClientRepository
	vehicles repository.VehicleRepository
	jobs     repository.JobRepository
	notes    repository.NoteRepository
	quotes   repository.QuoteRepository
}

func NewViewService(
	clients repository.ClientRepository,
	vehicles repository.VehicleRepository,
	jobs repository.JobRepository,
	notes repository.NoteRepository,
	quotes repository.QuoteRepository,
) ViewService {
	return &viewService{clients: clients, vehicles: vehicles, jobs: jobs, notes: notes, quotes: quotes}
}

func (s *viewService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.JobsList(ctx, "")
	if err != nil {
		return nil, err
	}

	recent := jobs
	if len(recent) > 5 {
		recent = recent[:5]
	}

	newest := vehicles
	if len(newest) > 5 {
		newest = newest[len(newest)-5:]
	}
	newRows := make([]dto.VehicleRow, 0, len(newest))
	for _, v := range newest {
		newRows = append(newRows, s.vehicleRow(ctx, v))
	}

	return &dto.DashboardResponse{
		TotalClients:  len(clients),
		TotalVehicles: len(vehicles),
		TotalJobs:     len(jobs),
		RecentJobs:    recent,
		NewVehicles:   newRows,
	}, nil
}

func (s *viewService) ClientsList(ctx context.Context, query string) ([]dto.ClientRow, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	countByClient := make(map[int]int, len(clients))
	for _, v := range vehicles {
		countByClient[v.ClientID]++
	}

	rows := make([]dto.ClientRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, dto.ClientRow{
			ID:            c.ID,
			FullName:      c.FullName,
			Phone:         c.Phone,
			Email:         c.Email,
			CreatedAt:     c.CreatedAt.Format(timeLayout),
			VehiclesCount: countByClient[c.ID],
		})
	}

	rows = filterRows(rows, query, func(r dto.ClientRow) []string {
		return []string{r.FullName, r.Phone, r.Email}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].FullName) < strings.ToLower(rows[j].FullName)
	})
	return rows, nil
}

func (s *viewService) VehiclesList(ctx context.Context, query string) ([]dto.VehicleRow, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.VehicleRow, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, s.vehicleRow(ctx, v))
	}

	rows = filterRows(rows, query, func(r dto.VehicleRow) []string {
		return []string{r.Plate, r.ClientName, r.Brand, r.Model}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Plate != rows[j].Plate {
			return rows[i].Plate < rows[j].Plate
		}
		return rows[i].ClientName < rows[j].ClientName
	})
	return rows, nil
}

func (s *viewService) JobsList(ctx context.Context, query string) ([]dto.JobRow, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.JobRow, 0, len(jobs))
	for _, j := range jobs {
		vehicle, client := s.jobParties(ctx, j)
		rows = append(rows, dto.JobRow{Job: j, Vehicle: vehicle, Client: client})
	}

	rows = filterRows(rows, query, func(r dto.JobRow) []string {
		return []string{r.Job.Reason, r.Job.Description, r.Job.Status, r.Vehicle.Plate, r.Client.FullName}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Job.IntakeDate.After(rows[j].Job.IntakeDate)
	})
	return rows, nil
}

func (s *viewService) JobWithContext(ctx context.Context, jobID int) (*dto.JobDetailResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	vehicle, client := s.jobParties(ctx, *job)

	notes, err := s.notes.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	// Newest first; creation timestamps may collide at second resolution, so
	// the stable sort keeps insertion order as the tie-break.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	quote, err := s.quotes.LatestForJob(ctx, jobID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &dto.JobDetailResponse{
		Job:     *job,
		Vehicle: vehicle,
		Client:  client,
		Notes:   notes,
		Quote:   quote,
	}, nil
}

func (s *viewService) VehicleInfo(ctx context.Context, vehicleID int) (*dto.VehicleInfoResponse, error) {
	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	info := &dto.VehicleInfoResponse{}
	if c, err := s.clients.FindByID(ctx, vehicle.ClientID); err == nil {
		info.ClientName = c.FullName
	}

	jobs, err := s.jobs.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if len(jobs) > 0 {
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].IntakeDate.After(jobs[j].IntakeDate)
		})
		info.LastJobDate = jobs[0].IntakeDate.Format(timeLayout)
	}
	return info, nil
}

func (s *viewService) PrintableJob(ctx context.Context, jobID int) (*dto.PrintableJobResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	vehicle, client := s.jobParties(ctx, *job)

	var tasks []string
	for _, line := range strings.Split(job.Description, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		notes, err := s.notes.ListByJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		})
		for _, n := range notes {
			if n.Content != "" {
				tasks = append(tasks, n.Content)
			}
		}
	}

	subtotal, igv, total := decimal.Zero, decimal.Zero, decimal.Zero
	if q, err := s.quotes.LatestForJob(ctx, jobID); err == nil {
		subtotal, igv, total = q.Subtotal, q.IGV, q.Total
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	date := job.IntakeDate
	if job.DeliveryDate != nil {
		date = *job.DeliveryDate
	}

	return &dto.PrintableJobResponse{
		ID:           job.ID,
		ClientName:   client.FullName,
		VehicleBrand: vehicle.Brand,
		VehicleModel: vehicle.Model,
		VehiclePlate: vehicle.Plate,
		Date:         date.Format(dateLayout),
		Tasks:        tasks,
		Subtotal:     subtotal,
		IGV:          igv,
		Total:        total,
	}, nil
}

// jobParties resolves the vehicle and owner of a job, degrading to zero
// values when either reference is orphaned (cascade rules allow that).
func (s *viewService) jobParties(ctx context.Context, j model.Job) (model.Vehicle, model.Client) {
	var vehicle model.Vehicle
	if v, err := s.vehicles.FindByID(ctx, j.VehicleID); err == nil {
		vehicle = *v
	}
	var client model.Client
	if c, err := s.clients.FindByID(ctx, vehicle.ClientID); err == nil {
		client = *c
	}
	return vehicle, client
}

func (s *viewService) vehicleRow(ctx context.Context, v model.Vehicle) dto.VehicleRow {
	row := dto.VehicleRow{
		ID:       v.ID,
		ClientID: v.ClientID,
		Plate:    v.Plate,
		Brand:    v.Brand,
		Model:    v.Model,
		Year:     v.Year,
		VIN:      v.VIN,
		Color:    v.Color,
	}
	if c, err := s.clients.FindByID(ctx, v.ClientID); err == nil {
		row.ClientName = c.FullName
	}
	return row
}

// ── list helpers ─────────────────────────────────────────────────────────────

// filterRows keeps rows where the query occurs case-insensitively as a
// substring in any of the row's searchable fields. An empty query keeps all.
func filterRows[T any](rows []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// sortStableDesc orders rows by a string key, descending, preserving
// insertion order on equal keys. RFC 3339 UTC timestamps sort correctly as
// plain strings.
func sortStableDesc[T any](rows []T, key func(T) string) {
	sort.SliceStable(rows, func(i, j int) bool { return key(rows[i]) > key(rows[j]) })
}
