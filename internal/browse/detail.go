package browse

import (
	"context"
	"sync"

	"dragonfield.org/catalog-web/internal/dbapi"
)

// DetailState is the detail screen's view state. A failed load keeps the
// previously loaded record; only a fresh successful load replaces it.
type DetailState struct {
	Loading bool
	Error   string
	Record  *dbapi.Character
}

// DetailController drives a single character's detail screen.
type DetailController struct {
	svc dbapi.Service

	mu      sync.Mutex
	state   DetailState
	subs    map[int]func(DetailState)
	nextSub int
	lastID  string
}

// NewDetailController constructs a controller in the Idle state.
func NewDetailController(svc dbapi.Service) *DetailController {
	return &DetailController{
		svc:  svc,
		subs: make(map[int]func(DetailState)),
	}
}

// Subscribe registers a listener invoked with a state snapshot after every
// transition. The returned function removes the listener. Listeners run with
// the controller lock held and must not call back into the controller.
func (c *DetailController) Subscribe(fn func(DetailState)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Snapshot returns a copy of the current view state.
func (c *DetailController) Snapshot() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load fetches the record for id. The loading flag is cleared on every exit
// path; the error path leaves any previously loaded record in place.
func (c *DetailController) Load(ctx context.Context, id string) {
	c.mu.Lock()
	c.lastID = id
	c.state.Loading = true
	c.state.Error = ""
	c.notifyLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Loading = false
		c.notifyLocked()
		c.mu.Unlock()
	}()

	record, err := c.svc.GetCharacter(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = dbapi.ClassifyError(err)
		return
	}
	c.state.Record = &record
	c.state.Error = ""
}

// Retry re-loads the identifier from the most recent Load call.
func (c *DetailController) Retry(ctx context.Context) {
	c.mu.Lock()
	id := c.lastID
	c.mu.Unlock()

	if id == "" {
		return
	}
	c.Load(ctx, id)
}

func (c *DetailController) snapshotLocked() DetailState {
	snap := c.state
	if c.state.Record != nil {
		record := *c.state.Record
		snap.Record = &record
	}
	return snap
}

func (c *DetailController) notifyLocked() {
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
}
