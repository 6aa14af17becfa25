package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"dragonfield.org/catalog-web/internal/dbapi"
)

func TestDetailControllerLoad(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		getFn: func(id string) (dbapi.Character, error) {
			require.Equal(t, "1", id)
			return dbapi.Character{ID: 1, Name: "Goku", Ki: "60.000.000"}, nil
		},
	}
	ctrl := NewDetailController(svc)

	ctrl.Load(context.Background(), "1")
	state := ctrl.Snapshot()
	require.False(t, state.Loading)
	require.Empty(t, state.Error)
	require.NotNil(t, state.Record)
	require.Equal(t, "Goku", state.Record.Name)
	require.Equal(t, "60.000.000", state.Record.Ki)
}

func TestDetailControllerFailedLoadKeepsRecord(t *testing.T) {
	t.Parallel()

	var fail bool
	svc := &stubService{}
	svc.getFn = func(id string) (dbapi.Character, error) {
		if fail {
			return dbapi.Character{}, errors.New("boom")
		}
		return dbapi.Character{ID: 1, Name: "Goku"}, nil
	}
	ctrl := NewDetailController(svc)

	ctrl.Load(context.Background(), "1")
	fail = true
	ctrl.Load(context.Background(), "1")

	state := ctrl.Snapshot()
	require.NotEmpty(t, state.Error)
	require.NotNil(t, state.Record, "failed load keeps the previously loaded record")
	require.Equal(t, "Goku", state.Record.Name)
	require.False(t, state.Loading)
}

func TestDetailControllerNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		getFn: func(id string) (dbapi.Character, error) {
			return dbapi.Character{}, dbapi.ErrCharacterNotFound
		},
	}
	ctrl := NewDetailController(svc)

	ctrl.Load(context.Background(), "999")
	state := ctrl.Snapshot()
	require.Equal(t, dbapi.MsgNotFound, state.Error)
	require.Nil(t, state.Record)
}

func TestDetailControllerRetry(t *testing.T) {
	t.Parallel()

	var fail bool
	var lastID string
	svc := &stubService{}
	svc.getFn = func(id string) (dbapi.Character, error) {
		lastID = id
		if fail {
			return dbapi.Character{}, errors.New("boom")
		}
		return dbapi.Character{ID: 2, Name: "Vegeta"}, nil
	}
	ctrl := NewDetailController(svc)

	// Retry before any load is a no-op.
	ctrl.Retry(context.Background())
	_, _, gets := svc.calls()
	require.Zero(t, gets)

	fail = true
	ctrl.Load(context.Background(), "2")
	require.NotEmpty(t, ctrl.Snapshot().Error)

	fail = false
	ctrl.Retry(context.Background())
	state := ctrl.Snapshot()
	require.Equal(t, "2", lastID)
	require.Empty(t, state.Error)
	require.Equal(t, "Vegeta", state.Record.Name)
}

func TestDetailControllerSnapshotIsolatesRecord(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		getFn: func(id string) (dbapi.Character, error) {
			return dbapi.Character{ID: 1, Name: "Goku"}, nil
		},
	}
	ctrl := NewDetailController(svc)
	ctrl.Load(context.Background(), "1")

	snap := ctrl.Snapshot()
	snap.Record.Name = "mutated"
	require.Equal(t, "Goku", ctrl.Snapshot().Record.Name)
}
