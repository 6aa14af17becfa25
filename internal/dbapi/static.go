package dbapi

import (
	"context"
	"fmt"
)

// StaticService serves the embedded fallback dataset without touching the
// network. It backs tests and acts as the default when no remote client is
// wired.
type StaticService struct{}

// NewStaticService returns a Service over the embedded dataset.
func NewStaticService() *StaticService {
	return &StaticService{}
}

// ListCharacters slices the embedded dataset into a page window.
func (s *StaticService) ListCharacters(_ context.Context, page, pageSize int) (CharacterPage, error) {
	page, pageSize = normalizePaging(page, pageSize)
	return fallbackCharacterPage(page, pageSize), nil
}

// GetCharacter looks the identifier up in the embedded dataset.
func (s *StaticService) GetCharacter(_ context.Context, id string) (Character, error) {
	if record, ok := fallbackCharacterByID(id); ok {
		return record, nil
	}
	return Character{}, fmt.Errorf("%w: id %q", ErrCharacterNotFound, id)
}

// SearchCharacters filters the whole embedded dataset.
func (s *StaticService) SearchCharacters(_ context.Context, name, category string, page, pageSize int) (CharacterPage, error) {
	_, pageSize = normalizePaging(page, pageSize)
	matched := filterCharacters(fallbackCharacters, name, category)
	return CharacterPage{
		Items: matched,
		Meta: Meta{
			TotalItems:   len(matched),
			ItemCount:    len(matched),
			ItemsPerPage: pageSize,
			TotalPages:   1,
			CurrentPage:  1,
		},
	}, nil
}

// ListPlanets returns the embedded planet list.
func (s *StaticService) ListPlanets(context.Context) (PlanetPage, error) {
	return fallbackPlanetPage(), nil
}
