// Package browse holds the per-screen state machines that sit between the
// catalog service and the presentation layer. Each controller owns its
// screen's loading/error/pagination state, mutates it only in response to
// completed fetch attempts, and notifies subscribers on every transition.
package browse

import (
	"context"
	"sync"

	"dragonfield.org/catalog-web/internal/dbapi"
)

// searchPageSize is the window requested when a search is submitted. Search
// results are never paginated further, so one generous page is fetched.
const searchPageSize = 50

// SearchQuery echoes the filters of the most recent search for the UI.
type SearchQuery struct {
	Name     string
	Category string
}

// ListState is the list screen's view state. Snapshot copies are handed to
// the presentation layer; the controller alone mutates the backing state.
type ListState struct {
	Loading     bool
	Error       string
	Characters  []dbapi.Character
	CurrentPage int
	TotalPages  int
	HasMore     bool
	Query       SearchQuery
}

// ListController drives the character list screen. One instance exists per
// screen; it is not shared across screens.
//
// Overlapping operations are not cancelled: state mutations are serialized
// by the mutex but fetches run unlocked, so two in-flight loads resolve
// last-write-wins in network arrival order. LoadMore is the only entry point
// guarded against an in-flight fetch.
type ListController struct {
	svc dbapi.Service

	mu      sync.Mutex
	state   ListState
	subs    map[int]func(ListState)
	nextSub int
	lastOp  func(context.Context)
	started bool
}

// NewListController constructs a controller in the Idle state.
func NewListController(svc dbapi.Service) *ListController {
	return &ListController{
		svc:  svc,
		subs: make(map[int]func(ListState)),
	}
}

// Subscribe registers a listener invoked with a state snapshot after every
// transition. The returned function removes the listener. Listeners run with
// the controller lock held and must not call back into the controller.
func (c *ListController) Subscribe(fn func(ListState)) func() {
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
func (c *ListController) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Activate performs the initial Load(1, replace) exactly once. Subsequent
// activations of an already-live screen are no-ops.
func (c *ListController) Activate(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.Load(ctx, 1, true)
}

// Load fetches one page and merges it into the display list: replace swaps
// the list wholesale, otherwise the page is appended in arrival order with
// no de-duplication. The loading flag is cleared on every exit path.
func (c *ListController) Load(ctx context.Context, page int, replace bool) {
	c.remember(func(ctx context.Context) { c.Load(ctx, page, replace) })
	c.begin()
	defer c.finish()

	result, err := c.svc.ListCharacters(ctx, page, dbapi.DefaultPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Error = dbapi.ClassifyError(err)
		return
	}
	if replace {
		c.state.Characters = result.Items
	} else {
		c.state.Characters = append(c.state.Characters, result.Items...)
	}
	c.state.CurrentPage = result.Meta.CurrentPage
	c.state.TotalPages = result.Meta.TotalPages
	c.state.HasMore = result.Meta.HasMore()
	c.state.Error = ""
	if replace {
		// A plain reload leaves any previous search behind.
		c.state.Query = SearchQuery{}
	}
}

// LoadMore appends the next page. It is a no-op while a fetch is in flight
// or when no further pages exist.
func (c *ListController) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.state.Loading || !c.state.HasMore {
		c.mu.Unlock()
		return
	}
	next := c.state.CurrentPage + 1
	c.mu.Unlock()

	c.Load(ctx, next, false)
}

// Search replaces the display list with one filtered window. Search results
// are never paginated further, so HasMore is forced off regardless of what
// the envelope reports.
func (c *ListController) Search(ctx context.Context, name, category string) {
	c.remember(func(ctx context.Context) { c.Search(ctx, name, category) })
	c.begin()
	defer c.finish()

	result, err := c.svc.SearchCharacters(ctx, name, category, 1, searchPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = SearchQuery{Name: name, Category: category}
	if err != nil {
		c.state.Error = dbapi.ClassifyError(err)
		return
	}
	c.state.Characters = result.Items
	c.state.CurrentPage = result.Meta.CurrentPage
	c.state.TotalPages = result.Meta.TotalPages
	c.state.HasMore = false
	c.state.Error = ""
}

// Retry re-invokes the most recent operation with the same parameters. With
// no prior operation it behaves like the initial load.
func (c *ListController) Retry(ctx context.Context) {
	c.mu.Lock()
	op := c.lastOp
	c.mu.Unlock()

	if op == nil {
		c.Load(ctx, 1, true)
		return
	}
	op(ctx)
}

func (c *ListController) remember(op func(context.Context)) {
	c.mu.Lock()
	c.lastOp = op
	c.mu.Unlock()
}

func (c *ListController) begin() {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Error = ""
	c.notifyLocked()
	c.mu.Unlock()
}

func (c *ListController) finish() {
	c.mu.Lock()
	c.state.Loading = false
	c.notifyLocked()
	c.mu.Unlock()
}

func (c *ListController) snapshotLocked() ListState {
	snap := c.state
	snap.Characters = append([]dbapi.Character(nil), c.state.Characters...)
	return snap
}

func (c *ListController) notifyLocked() {
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
}
