package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
)

func TestJobCreateDefaults(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))
	ctx := context.Background()

	j := &model.Job{VehicleID: 1, Reason: "revision general"}
	_, err := repo.Create(ctx, j)
	require.NoError(t, err)

	assert.Equal(t, model.StatusAbierto, j.Status)
	assert.False(t, j.IntakeDate.IsZero())
	assert.Nil(t, j.DeliveryDate)
}

func TestJobCreateRejectsUnknownStatus(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))

	_, err := repo.Create(context.Background(), &model.Job{VehicleID: 1, Status: "terminadisimo"})
	assert.Error(t, err)
}

func TestJobSetStatusStampsAndClearsDeliveryDate(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))
	ctx := context.Background()

	j := &model.Job{VehicleID: 1, Reason: "frenos"}
	_, err := repo.Create(ctx, j)
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus(ctx, j.ID, model.StatusEntregado))
	stored, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeliveryDate)
	assert.Equal(t, model.StatusEntregado, stored.Status)

	// Reopening the job clears the stamp: delivery_date is only ever set
	// while the job is delivered.
	require.NoError(t, repo.SetStatus(ctx, j.ID, model.StatusEnProceso))
	stored, err = repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DeliveryDate)
	assert.Equal(t, model.StatusEnProceso, stored.Status)
}

func TestJobSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))
	ctx := context.Background()

	j := &model.Job{VehicleID: 1}
	_, err := repo.Create(ctx, j)
	require.NoError(t, err)

	assert.Error(t, repo.SetStatus(ctx, j.ID, "casi_listo"))
}

func TestJobUpdatePatchesChecklist(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))
	ctx := context.Background()

	j := &model.Job{VehicleID: 1, Checklist: model.Checklist{Gato: true}}
	_, err := repo.Create(ctx, j)
	require.NoError(t, err)

	cl := model.Checklist{Gato: true, Extintor: true, LlaveRueda: true}
	require.NoError(t, repo.Update(ctx, j.ID, JobPatch{Checklist: &cl}))

	stored, err := repo.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.True(t, stored.Checklist.Extintor)
	assert.True(t, stored.Checklist.LlaveRueda)
	assert.True(t, stored.Checklist.Gato)
	assert.False(t, stored.Checklist.Botiquin)
}

func TestJobListByVehicle(t *testing.T) {
	repo := NewJobRepository(newTestStore(t))
	ctx := context.Background()

	for _, vid := range []int{7, 7, 9} {
		_, err := repo.Create(ctx, &model.Job{VehicleID: vid})
		require.NoError(t, err)
	}

	jobs, err := repo.ListByVehicle(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}
