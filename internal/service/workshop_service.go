package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mirandajandir7-prog/mitaller/internal/dto"
	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
)

// WorkshopService handles the registry writes: clients, vehicles, work
// orders and their notes. Reads live in ViewService.
type WorkshopService interface {
	// CreateClient registers a client and, when the request carries a plate,
	// their first vehicle in the same step.
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.CreateClientResponse, error)
	UpdateClient(ctx context.Context, id int, req dto.UpdateClientRequest) error
	DeleteClient(ctx context.Context, id int) error

	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int, req dto.UpdateVehicleRequest) error
	DeleteVehicle(ctx context.Context, id int) error

	CreateJob(ctx context.Context, mechanicID int, req dto.CreateJobRequest) (*model.Job, error)
	UpdateJob(ctx context.Context, id int, req dto.UpdateJobRequest) error
	SetJobStatus(ctx context.Context, id int, status string) error
	DeleteJob(ctx context.Context, id int) error
	AddNote(ctx context.Context, jobID, userID int, content string) (*model.Note, error)
}

type workshopService struct {
	clients  repository.ClientRepository
	vehicles repository.VehicleRepository
	jobs     repository.JobRepository
	notes    repository.NoteRepository
}

func NewWorkshopService(
	clients repository.ClientRepository,
	vehicles repository.VehicleRepository,
	jobs repository.JobRepository,
	notes repository.NoteRepository,
) WorkshopService {
	return &workshopService{clients: clients, vehicles: vehicles, jobs: jobs, notes: notes}
}

func (s *workshopService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.CreateClientResponse, error) {
	client := &model.Client{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	}
	clientID, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	resp := &dto.CreateClientResponse{ClientID: clientID}
	if req.Plate == "" {
		return resp, nil
	}

	// The intake form registers the first vehicle in the same step. The two
	// writes are independent: if the plate is taken the client still exists
	// and the caller registers the vehicle separately.
	vehicle := &model.Vehicle{
		ClientID: clientID,
		Plate:    req.Plate,
		Brand:    req.Brand,
		Model:    req.Model,
		Color:    req.Color,
	}
	vehicleID, err := s.vehicles.Create(ctx, vehicle)
	if err != nil {
		log.Warn().Int("client_id", clientID).Str("plate", req.Plate).Err(err).
			Msg("cliente creado pero su primer vehiculo fallo")
		return nil, err
	}
	resp.VehicleID = &vehicleID
	return resp, nil
}

func (s *workshopService) UpdateClient(ctx context.Context, id int, req dto.UpdateClientRequest) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Update(ctx, id, repository.ClientPatch{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
}

func (s *workshopService) DeleteClient(ctx context.Context, id int) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

func (s *workshopService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest) (*model.Vehicle, error) {
	if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	vehicle := &model.Vehicle{
		ClientID: req.ClientID,
		Plate:    req.Plate,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		VIN:      req.VIN,
		Color:    req.Color,
	}
	if _, err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *workshopService) UpdateVehicle(ctx context.Context, id int, req dto.UpdateVehicleRequest) error {
	if _, err := s.vehicles.FindByID(ctx, id); err != nil {
		return err
	}
	if req.ClientID != nil {
		if _, err := s.clients.FindByID(ctx, *req.ClientID); err != nil {
			return err
		}
	}
	return s.vehicles.Update(ctx, id, repository.VehiclePatch{
		ClientID: req.ClientID,
		Plate:    req.Plate,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		VIN:      req.VIN,
		Color:    req.Color,
	})
}

func (s *workshopService) DeleteVehicle(ctx context.Context, id int) error {
	if _, err := s.vehicles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *workshopService) CreateJob(ctx context.Context, mechanicID int, req dto.CreateJobRequest) (*model.Job, error) {
	if _, err := s.vehicles.FindByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}
	job := &model.Job{
		VehicleID:   req.VehicleID,
		MechanicID:  mechanicID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      req.Status,
		OdometerKm:  req.OdometerKm,
		FuelLevel:   req.FuelLevel,
		Checklist:   req.Checklist,
	}
	if _, err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *workshopService) UpdateJob(ctx context.Context, id int, req dto.UpdateJobRequest) error {
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.jobs.Update(ctx, id, repository.JobPatch{
		Reason:      req.Reason,
		Description: req.Description,
		OdometerKm:  req.OdometerKm,
		FuelLevel:   req.FuelLevel,
		Checklist:   req.Checklist,
	})
}

func (s *workshopService) SetJobStatus(ctx context.Context, id int, status string) error {
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.jobs.SetStatus(ctx, id, status)
}

func (s *workshopService) DeleteJob(ctx context.Context, id int) error {
	if _, err := s.jobs.FindByID(ctx, id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

func (s *workshopService) AddNote(ctx context.Context, jobID, userID int, content string) (*model.Note, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}
	note := &model.Note{JobID: jobID, UserID: userID, Content: content}
	if _, err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
