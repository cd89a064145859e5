package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// JobPatch carries partial updates to a work order's editable fields.
type JobPatch struct {
	Reason      *string
	Description *string
	OdometerKm  *int
	FuelLevel   *string
	Checklist   *model.Checklist
}

type JobRepository interface {
	Create(ctx context.Context, j *model.Job) (int, error)
	FindByID(ctx context.Context, id int) (*model.Job, error)
	List(ctx context.Context) ([]model.Job, error)
	ListByVehicle(ctx context.Context, vehicleID int) ([]model.Job, error)
	Update(ctx context.Context, id int, patch JobPatch) error
	// SetStatus transitions the job. Moving into "entregado" stamps
	// delivery_date with the current time; moving out of it clears the stamp
	// so delivery_date is never set on an undelivered job.
	SetStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
}

type jobRepo struct{ db *store.Store }

func NewJobRepository(db *store.Store) JobRepository { return &jobRepo{db: db} }

func (r *jobRepo) Create(_ context.Context, j *model.Job) (int, error) {
	if j.Status == "" {
		j.Status = model.StatusAbierto
	}
	if !model.ValidStatus(j.Status) {
		return 0, fmt.Errorf("estado de OT desconocido: %q", j.Status)
	}
	if j.IntakeDate.IsZero() {
		j.IntakeDate = time.Now().UTC()
	}
	id, err := r.db.Insert(store.Jobs, j)
	if err != nil {
		return 0, err
	}
	j.ID = id
	return id, nil
}

func (r *jobRepo) FindByID(_ context.Context, id int) (*model.Job, error) {
	doc, ok := r.db.Get(store.Jobs, id)
	if !ok {
		return nil, ErrNotFound
	}
	var j model.Job
	if err := store.Decode(doc, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) List(_ context.Context) ([]model.Job, error) {
	return decodeAll[model.Job](r.db.All(store.Jobs))
}

func (r *jobRepo) ListByVehicle(_ context.Context, vehicleID int) ([]model.Job, error) {
	return decodeAll[model.Job](r.db.Find(store.Jobs, map[string]any{"vehicle_id": vehicleID}))
}

func (r *jobRepo) Update(_ context.Context, id int, patch JobPatch) error {
	p := map[string]any{}
	if patch.Reason != nil {
		p["reason"] = *patch.Reason
	}
	if patch.Description != nil {
		p["description"] = *patch.Description
	}
	if patch.OdometerKm != nil {
		p["odometer_km"] = *patch.OdometerKm
	}
	if patch.FuelLevel != nil {
		p["fuel_level"] = *patch.FuelLevel
	}
	if patch.Checklist != nil {
		p["checklist"] = *patch.Checklist
	}
	if len(p) == 0 {
		return nil
	}
	return r.db.Update(store.Jobs, id, p)
}

func (r *jobRepo) SetStatus(_ context.Context, id int, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("estado de OT desconocido: %q", status)
	}
	p := map[string]any{"status": status}
	if status == model.StatusEntregado {
		p["delivery_date"] = time.Now().UTC()
	} else {
		p["delivery_date"] = nil
	}
	return r.db.Update(store.Jobs, id, p)
}

func (r *jobRepo) Delete(_ context.Context, id int) error {
	return r.db.Remove(store.Jobs, id)
}
