// Package planets builds the view models for the planets screen.
package planets

import (
	"html/template"

	"dragonfield.org/catalog-web/internal/dbapi"
	"dragonfield.org/catalog-web/internal/render"
	"dragonfield.org/catalog-web/internal/templates"
)

// PageData represents the planets page payload.
type PageData struct {
	Title   string
	Error   string
	Planets []PlanetView
	BackURL string
}

// PlanetView is the rendered representation of one planet row.
type PlanetView struct {
	Name            string
	IsDestroyed     bool
	Status          string
	ImageURL        string
	DescriptionHTML template.HTML
}

// BuildPageData prepares the planets page payload for SSR rendering.
func BuildPageData(basePath string, page dbapi.PlanetPage, errMsg string) PageData {
	return PageData{
		Title:   "Planets",
		Error:   errMsg,
		Planets: toPlanetViews(page.Items),
		BackURL: templates.JoinBase(basePath, "/characters"),
	}
}

func toPlanetViews(records []dbapi.Planet) []PlanetView {
	result := make([]PlanetView, 0, len(records))
	for _, record := range records {
		status := "Intact"
		if record.IsDestroyed {
			status = "Destroyed"
		}
		result = append(result, PlanetView{
			Name:            record.Name,
			IsDestroyed:     record.IsDestroyed,
			Status:          status,
			ImageURL:        record.Image,
			DescriptionHTML: render.DescriptionOrPlain(record.Description),
		})
	}
	return result
}
