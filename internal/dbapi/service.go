package dbapi

import (
	"context"
	"errors"
)

const (
	// DefaultPage is used when the caller passes a page below 1.
	DefaultPage = 1
	// DefaultPageSize is used when the caller passes a page size below 1.
	DefaultPageSize = 12
)

// ErrCharacterNotFound is returned by GetCharacter when neither the remote
// API nor the fallback dataset yields a record for the identifier. It is the
// only error that escapes the service boundary: listing and search failures
// are absorbed into the fallback dataset instead.
var ErrCharacterNotFound = errors.New("dbapi: character not found")

// Service exposes read access to the character catalog. Implementations are
// stateless; every operation is a pure function of its arguments plus the
// network and the embedded fallback dataset.
//
// For Client, the ListCharacters, SearchCharacters, and ListPlanets
// operations always return a well-formed envelope and a nil error: remote
// failures of any kind (transport, non-2xx, malformed body) substitute the
// fallback dataset and never surface. The error return exists for other
// implementations; controllers still handle it.
type Service interface {
	// ListCharacters returns one page of the catalog.
	ListCharacters(ctx context.Context, page, pageSize int) (CharacterPage, error)

	// GetCharacter fetches a single record by identifier. The identifier is
	// accepted as a string and coerced numerically when the fallback dataset
	// is consulted.
	GetCharacter(ctx context.Context, id string) (Character, error)

	// SearchCharacters filters by name and race/category, both case-insensitive
	// substrings, an empty value matching everything. The remote path filters
	// within the single fetched page only; the fallback path filters the whole
	// dataset and collapses pagination to a single page.
	SearchCharacters(ctx context.Context, name, category string, page, pageSize int) (CharacterPage, error)

	// ListPlanets returns the planet listing.
	ListPlanets(ctx context.Context) (PlanetPage, error)
}
