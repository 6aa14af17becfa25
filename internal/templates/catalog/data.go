// Package catalog builds the view models for the character list and detail
// screens.
package catalog

import (
	"html/template"
	"strconv"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/dbapi"
	"dragonfield.org/catalog-web/internal/render"
	"dragonfield.org/catalog-web/internal/templates"
)

// PageData represents the full character list page payload.
type PageData struct {
	Title string
	List  ListData
}

// ListData holds the list fragment payload: the rendered cards plus the
// endpoints and state the fragment controls need.
type ListData struct {
	Loading        bool
	Error          string
	Cards          []CardView
	HasMore        bool
	Query          QueryState
	ListEndpoint   string
	MoreEndpoint   string
	SearchEndpoint string
	RetryEndpoint  string
}

// QueryState echoes the submitted search filters back into the form.
type QueryState struct {
	Name     string
	Category string
	Active   bool
}

// CardView is the rendered representation of one character card.
type CardView struct {
	ID          string
	Name        string
	Race        string
	Gender      string
	Ki          string
	MaxKi       string
	ImageURL    string
	Affiliation string
	DetailURL   string
}

// DetailData represents the character detail page payload.
type DetailData struct {
	Title           string
	Loading         bool
	Error           string
	Record          *CardView
	DescriptionHTML template.HTML
	BackURL         string
	RetryEndpoint   string
}

// BuildPageData prepares the list page payload for SSR rendering.
func BuildPageData(basePath string, state browse.ListState) PageData {
	return PageData{
		Title: "Character Catalog",
		List:  ListPayload(basePath, state),
	}
}

// ListPayload prepares the list fragment payload.
func ListPayload(basePath string, state browse.ListState) ListData {
	return ListData{
		Loading:        state.Loading,
		Error:          state.Error,
		Cards:          toCardViews(basePath, state.Characters),
		HasMore:        state.HasMore,
		Query:          queryState(state.Query),
		ListEndpoint:   templates.JoinBase(basePath, "/fragments/characters"),
		MoreEndpoint:   templates.JoinBase(basePath, "/fragments/characters/more"),
		SearchEndpoint: templates.JoinBase(basePath, "/fragments/characters/search"),
		RetryEndpoint:  templates.JoinBase(basePath, "/fragments/characters/retry"),
	}
}

// BuildDetailData prepares the detail page payload. The retry control always
// re-requests the detail fragment for the id the viewer asked for, so a
// failed lookup retries the same lookup rather than a list operation.
func BuildDetailData(basePath, id string, state browse.DetailState) DetailData {
	data := DetailData{
		Title:         "Character",
		Loading:       state.Loading,
		Error:         state.Error,
		BackURL:       templates.JoinBase(basePath, "/characters"),
		RetryEndpoint: templates.JoinBase(basePath, "/fragments/characters/"+id),
	}
	if state.Record != nil {
		card := toCardView(basePath, *state.Record)
		data.Title = state.Record.Name
		data.Record = &card
		data.DescriptionHTML = render.DescriptionOrPlain(state.Record.Description)
	}
	return data
}

func queryState(q browse.SearchQuery) QueryState {
	return QueryState{
		Name:     q.Name,
		Category: q.Category,
		Active:   q.Name != "" || q.Category != "",
	}
}

func toCardViews(basePath string, records []dbapi.Character) []CardView {
	result := make([]CardView, 0, len(records))
	for _, record := range records {
		result = append(result, toCardView(basePath, record))
	}
	return result
}

func toCardView(basePath string, record dbapi.Character) CardView {
	id := strconv.Itoa(record.ID)
	return CardView{
		ID:          id,
		Name:        record.Name,
		Race:        record.Race,
		Gender:      record.Gender,
		Ki:          record.Ki,
		MaxKi:       record.MaxKi,
		ImageURL:    record.Image,
		Affiliation: record.Affiliation,
		DetailURL:   templates.JoinBase(basePath, "/characters/"+id),
	}
}
