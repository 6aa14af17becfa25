package browse

import (
	"sync"
	"time"

	"dragonfield.org/catalog-web/internal/dbapi"
)

const defaultScreenIdle = 30 * time.Minute

// Registry owns the live controllers for each browsing session. Screens are
// created on first access and evicted after sitting idle, which models
// navigating away: the next visit starts from a fresh controller.
type Registry struct {
	svc  dbapi.Service
	idle time.Duration
	now  func() time.Time

	mu      sync.Mutex
	screens map[string]*screens
}

type screens struct {
	list     *ListController
	detail   *DetailController
	lastSeen time.Time
}

// NewRegistry constructs a Registry around the given service. An idle
// duration of zero selects the default.
func NewRegistry(svc dbapi.Service, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = defaultScreenIdle
	}
	return &Registry{
		svc:     svc,
		idle:    idle,
		now:     time.Now,
		screens: make(map[string]*screens),
	}
}

// ListScreen returns the session's list controller, creating it on demand.
func (r *Registry) ListScreen(sessionID string) *ListController {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.entryLocked(sessionID)
	if entry.list == nil {
		entry.list = NewListController(r.svc)
	}
	return entry.list
}

// DetailScreen returns the session's detail controller, creating it on demand.
func (r *Registry) DetailScreen(sessionID string) *DetailController {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.entryLocked(sessionID)
	if entry.detail == nil {
		entry.detail = NewDetailController(r.svc)
	}
	return entry.detail
}

// Drop discards all screens for the session.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.screens, sessionID)
}

// Len reports how many sessions currently hold live screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

func (r *Registry) entryLocked(sessionID string) *screens {
	now := r.now()

	for id, entry := range r.screens {
		if now.Sub(entry.lastSeen) > r.idle {
			delete(r.screens, id)
		}
	}

	entry, ok := r.screens[sessionID]
	if !ok {
		entry = &screens{}
		r.screens[sessionID] = entry
	}
	entry.lastSeen = now
	return entry
}
