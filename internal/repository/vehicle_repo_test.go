package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
)

func TestVehicleCreateNormalizesPlate(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t))
	ctx := context.Background()

	v := &model.Vehicle{ClientID: 1, Plate: "  abc-123 "}
	_, err := repo.Create(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", v.Plate)

	stored, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", stored.Plate)
}

func TestVehicleCreateRejectsDuplicatePlate(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Vehicle{ClientID: 1, Plate: "ABC-123"})
	require.NoError(t, err)

	// Same plate in a different case is still a duplicate.
	_, err = repo.Create(ctx, &model.Vehicle{ClientID: 2, Plate: "abc-123"})
	assert.ErrorIs(t, err, ErrDuplicatePlate)
}

func TestVehicleUpdateAllowsOwnPlate(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t))
	ctx := context.Background()

	v := &model.Vehicle{ClientID: 1, Plate: "ABC-123", Color: "rojo"}
	_, err := repo.Create(ctx, v)
	require.NoError(t, err)

	// Re-submitting the vehicle's own plate is not a conflict.
	plate := "abc-123"
	color := "negro"
	require.NoError(t, repo.Update(ctx, v.ID, VehiclePatch{Plate: &plate, Color: &color}))

	stored, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", stored.Plate)
	assert.Equal(t, "negro", stored.Color)
}

func TestVehicleUpdateRejectsForeignPlate(t *testing.T) {
	repo := NewVehicleRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Vehicle{ClientID: 1, Plate: "AAA-111"})
	require.NoError(t, err)
	v2 := &model.Vehicle{ClientID: 1, Plate: "BBB-222"}
	_, err = repo.Create(ctx, v2)
	require.NoError(t, err)

	taken := "aaa-111"
	err = repo.Update(ctx, v2.ID, VehiclePatch{Plate: &taken})
	assert.ErrorIs(t, err, ErrDuplicatePlate)
}

func TestVehicleDeleteCascadesJobs(t *testing.T) {
	db := newTestStore(t)
	vehicles := NewVehicleRepository(db)
	jobs := NewJobRepository(db)
	ctx := context.Background()

	v := &model.Vehicle{ClientID: 1, Plate: "ABC-123"}
	_, err := vehicles.Create(ctx, v)
	require.NoError(t, err)
	j := &model.Job{VehicleID: v.ID, Reason: "ruido en frenos"}
	_, err = jobs.Create(ctx, j)
	require.NoError(t, err)

	require.NoError(t, vehicles.Delete(ctx, v.ID))

	_, err = vehicles.FindByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = jobs.FindByID(ctx, j.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
