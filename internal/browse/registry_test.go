package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameScreensPerSession(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&stubService{}, 0)

	list := reg.ListScreen("sess-a")
	require.Same(t, list, reg.ListScreen("sess-a"))
	require.NotSame(t, list, reg.ListScreen("sess-b"))

	detail := reg.DetailScreen("sess-a")
	require.Same(t, detail, reg.DetailScreen("sess-a"))

	require.Equal(t, 2, reg.Len())
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&stubService{}, time.Minute)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	stale := reg.ListScreen("sess-a")

	clock = clock.Add(30 * time.Second)
	reg.ListScreen("sess-b")

	// sess-a has now been idle past the limit; sess-b was touched recently.
	clock = clock.Add(45 * time.Second)
	fresh := reg.ListScreen("sess-a")
	require.NotSame(t, stale, fresh, "idle screens are rebuilt from scratch")
	require.Equal(t, 2, reg.Len())
}

func TestRegistryAccessKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&stubService{}, time.Minute)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	list := reg.ListScreen("sess-a")
	for i := 0; i < 4; i++ {
		clock = clock.Add(45 * time.Second)
		require.Same(t, list, reg.ListScreen("sess-a"))
	}
}

func TestRegistryDrop(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&stubService{}, 0)
	list := reg.ListScreen("sess-a")

	reg.Drop("sess-a")
	require.Zero(t, reg.Len())
	require.NotSame(t, list, reg.ListScreen("sess-a"))
}
