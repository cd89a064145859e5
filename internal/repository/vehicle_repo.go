package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
)

// VehiclePatch carries partial updates; nil fields are left untouched.
type VehiclePatch struct {
	ClientID *int
	Plate    *string
	Brand    *string
	Model    *string
	Year     *int
	VIN      *string
	Color    *string
}

type VehicleRepository interface {
	// Create normalizes the plate to uppercase and rejects it with
	// ErrDuplicatePlate when another vehicle already carries it.
	Create(ctx context.Context, v *model.Vehicle) (int, error)
	FindByID(ctx context.Context, id int) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByClient(ctx context.Context, clientID int) ([]model.Vehicle, error)
	Update(ctx context.Context, id int, patch VehiclePatch) error
	// Delete removes the vehicle and cascades over its jobs.
	Delete(ctx context.Context, id int) error
}

type vehicleRepo struct{ db *store.Store }

func NewVehicleRepository(db *store.Store) VehicleRepository { return &vehicleRepo{db: db} }

// NormalizePlate uppercases and trims a plate for storage and comparison.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (r *vehicleRepo) Create(_ context.Context, v *model.Vehicle) (int, error) {
	v.Plate = NormalizePlate(v.Plate)
	if r.plateTaken(v.Plate, 0) {
		return 0, ErrDuplicatePlate
	}
	id, err := r.db.Insert(store.Vehicles, v)
	if err != nil {
		return 0, err
	}
	v.ID = id
	return id, nil
}

func (r *vehicleRepo) FindByID(_ context.Context, id int) (*model.Vehicle, error) {
	doc, ok := r.db.Get(store.Vehicles, id)
	if !ok {
		return nil, ErrNotFound
	}
	var v model.Vehicle
	if err := store.Decode(doc, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepo) List(_ context.Context) ([]model.Vehicle, error) {
	return decodeAll[model.Vehicle](r.db.All(store.Vehicles))
}

func (r *vehicleRepo) ListByClient(_ context.Context, clientID int) ([]model.Vehicle, error) {
	return decodeAll[model.Vehicle](r.db.Find(store.Vehicles, map[string]any{"client_id": clientID}))
}

func (r *vehicleRepo) Update(_ context.Context, id int, patch VehiclePatch) error {
	p := map[string]any{}
	if patch.Plate != nil {
		plate := NormalizePlate(*patch.Plate)
		// Reusing the vehicle's own unchanged plate is fine; only another
		// vehicle holding it is a conflict.
		if r.plateTaken(plate, id) {
			return ErrDuplicatePlate
		}
		p["plate"] = plate
	}
	if patch.ClientID != nil {
		p["client_id"] = *patch.ClientID
	}
	if patch.Brand != nil {
		p["brand"] = *patch.Brand
	}
	if patch.Model != nil {
		p["model"] = *patch.Model
	}
	if patch.Year != nil {
		p["year"] = *patch.Year
	}
	if patch.VIN != nil {
		p["vin"] = *patch.VIN
	}
	if patch.Color != nil {
		p["color"] = *patch.Color
	}
	if len(p) == 0 {
		return nil
	}
	return r.db.Update(store.Vehicles, id, p)
}

func (r *vehicleRepo) Delete(_ context.Context, id int) error {
	if err := r.db.Remove(store.Vehicles, id); err != nil {
		return err
	}
	for _, j := range r.db.Find(store.Jobs, map[string]any{"vehicle_id": id}) {
		if err := r.db.Remove(store.Jobs, store.DocID(j)); err != nil {
			return fmt.Errorf("cascade vehicle %d: %w", id, err)
		}
	}
	return nil
}

func (r *vehicleRepo) plateTaken(plate string, excludeID int) bool {
	for _, doc := range r.db.Find(store.Vehicles, map[string]any{"plate": plate}) {
		if store.DocID(doc) != excludeID {
			return true
		}
	}
	return false
}
