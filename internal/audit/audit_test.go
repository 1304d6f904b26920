package audit

import (
	"context"
	"errors"
	"testing"

	"aqualeaf/internal/entity"
	"aqualeaf/internal/model/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo wraps the memory store and refuses audit appends.
type failingRepo struct {
	*memory.Store
}

func (r *failingRepo) AppendSystemLog(context.Context, *entity.SystemLog) error {
	return errors.New("log store unavailable")
}

func TestRecordAppendsEvent(t *testing.T) {
	store := memory.NewStore()
	recorder := NewRecorder(store)
	ctx := context.Background()

	recorder.Record(ctx, entity.EventSuspendFarm, "admin@x.com", "FarmA")
	recorder.Record(ctx, entity.EventLoginFarmFailed, "ghost@x.com", "")

	logs, err := recorder.Query(ctx, nil)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, entity.EventLoginFarmFailed, logs[0].EventType)
	assert.Nil(t, logs[0].TargetFarm)
	assert.Equal(t, entity.EventSuspendFarm, logs[1].EventType)
	require.NotNil(t, logs[1].TargetFarm)
	assert.Equal(t, "FarmA", *logs[1].TargetFarm)
}

func TestRecordFailureDoesNotPropagate(t *testing.T) {
	recorder := NewRecorder(&failingRepo{memory.NewStore()})

	// Must not panic or surface the storage error.
	recorder.Record(context.Background(), entity.EventDeleteFarm, "admin@x.com", "farm_id:1")
}

func TestQueryInsertionOrderPreservedForTies(t *testing.T) {
	store := memory.NewStore()
	recorder := NewRecorder(store)
	ctx := context.Background()

	// Same-timestamp records keep arrival order (stable, newest batch first).
	for i := 0; i < 5; i++ {
		recorder.Record(ctx, entity.EventLoginFarm, "a@x.com", "FarmA")
	}

	logs, err := recorder.Query(ctx, nil)
	require.NoError(t, err)
	require.Len(t, logs, 5)
	for i := 1; i < len(logs); i++ {
		assert.Greater(t, logs[i-1].LogID, logs[i].LogID)
	}
}

func TestQueryFilters(t *testing.T) {
	store := memory.NewStore()
	recorder := NewRecorder(store)
	ctx := context.Background()

	recorder.Record(ctx, entity.EventLoginFarm, "a@x.com", "FarmA")
	recorder.Record(ctx, entity.EventLoginAdmin, "admin@x.com", "")
	recorder.Record(ctx, entity.EventSuspendFarm, "admin@x.com", "FarmA")

	logs, err := recorder.Query(ctx, &entity.SystemLogQuery{EventType: entity.EventLoginAdmin})
	require.NoError(t, err)
	require.Len(t, logs, 1)

	logs, err = recorder.Query(ctx, &entity.SystemLogQuery{ActorEmail: "admin@"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = recorder.Query(ctx, &entity.SystemLogQuery{TargetFarm: "FarmA"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
