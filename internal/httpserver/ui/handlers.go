// Package ui exposes the HTTP handlers for catalog pages and htmx fragments.
package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/dbapi"
	custommw "dragonfield.org/catalog-web/internal/httpserver/middleware"
	"dragonfield.org/catalog-web/internal/observability"
	"dragonfield.org/catalog-web/internal/templates"
	catalogtpl "dragonfield.org/catalog-web/internal/templates/catalog"
	planetstpl "dragonfield.org/catalog-web/internal/templates/planets"
)

// Dependencies collects the collaborators the UI handlers require.
type Dependencies struct {
	Service dbapi.Service
	Screens *browse.Registry
}

// Handlers exposes HTTP handlers for catalog pages and fragments.
type Handlers struct {
	svc     dbapi.Service
	screens *browse.Registry
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	svc := deps.Service
	if svc == nil {
		svc = dbapi.NewStaticService()
	}
	screens := deps.Screens
	if screens == nil {
		screens = browse.NewRegistry(svc, 0)
	}
	return &Handlers{
		svc:     svc,
		screens: screens,
	}
}

// CharactersPage renders the character list page, activating the screen on
// first visit.
func (h *Handlers) CharactersPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctrl := h.screens.ListScreen(custommw.SessionID(ctx))
	ctrl.Activate(ctx)

	data := catalogtpl.BuildPageData(custommw.BasePathFromContext(ctx), ctrl.Snapshot())
	templates.Render(w, r, "characters/index", data)
}

// ListFragment re-runs the unfiltered first page load and renders the list
// fragment. The search form's clear control points here.
func (h *Handlers) ListFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctrl := h.screens.ListScreen(custommw.SessionID(ctx))
	ctrl.Load(ctx, 1, true)

	h.renderListFragment(w, r, ctrl)
}

// MoreFragment appends the next page to the display list.
func (h *Handlers) MoreFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctrl := h.screens.ListScreen(custommw.SessionID(ctx))
	ctrl.LoadMore(ctx)

	h.renderListFragment(w, r, ctrl)
}

// SearchFragment applies the submitted filters and renders the list fragment.
func (h *Handlers) SearchFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	ctrl := h.screens.ListScreen(custommw.SessionID(ctx))
	if name == "" && category == "" {
		ctrl.Load(ctx, 1, true)
	} else {
		ctrl.Search(ctx, name, category)
	}

	h.renderListFragment(w, r, ctrl)
}

// RetryFragment re-runs the most recent list operation.
func (h *Handlers) RetryFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctrl := h.screens.ListScreen(custommw.SessionID(ctx))
	ctrl.Retry(ctx)

	h.renderListFragment(w, r, ctrl)
}

// DetailPage renders the character detail page.
func (h *Handlers) DetailPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	ctrl := h.screens.DetailScreen(custommw.SessionID(ctx))
	ctrl.Load(ctx, id)

	state := ctrl.Snapshot()
	if state.Error == dbapi.MsgNotFound && state.Record == nil {
		w.WriteHeader(http.StatusNotFound)
	}
	data := catalogtpl.BuildDetailData(custommw.BasePathFromContext(ctx), id, state)
	templates.Render(w, r, "characters/detail", data)
}

// DetailFragment re-loads a character and renders only the detail body.
func (h *Handlers) DetailFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	ctrl := h.screens.DetailScreen(custommw.SessionID(ctx))
	ctrl.Load(ctx, id)

	data := catalogtpl.BuildDetailData(custommw.BasePathFromContext(ctx), id, ctrl.Snapshot())
	templates.Render(w, r, "characters/detail_body", data)
}

// PlanetsPage renders the planets listing.
func (h *Handlers) PlanetsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.svc.ListPlanets(ctx)
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Warn("list planets failed", zap.Error(err))
		errMsg = dbapi.ClassifyError(err)
	}

	data := planetstpl.BuildPageData(custommw.BasePathFromContext(ctx), page, errMsg)
	templates.Render(w, r, "planets/index", data)
}

func (h *Handlers) renderListFragment(w http.ResponseWriter, r *http.Request, ctrl *browse.ListController) {
	data := catalogtpl.ListPayload(custommw.BasePathFromContext(r.Context()), ctrl.Snapshot())
	templates.Render(w, r, "characters/list", data)
}
