package dbapi

// Character is a single catalog record as served by the remote API. Records
// are immutable once fetched; loads replace or append whole values.
//
// Ki and MaxKi are arbitrary-precision decimal strings, not numbers: the
// magnitudes exceed what int64/float64 can hold and the exact source text
// ("90 Septillion") is what the catalog displays.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Ki          string `json:"ki"`
	MaxKi       string `json:"maxKi"`
	Race        string `json:"race"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Planet is a read-only planet record.
type Planet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsDestroyed bool   `json:"isDestroyed"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// Meta carries the pagination metadata attached to every list envelope.
type Meta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// CharacterPage is the paginated envelope for character listings.
// Invariant: Meta.ItemCount == len(Items).
type CharacterPage struct {
	Items []Character `json:"items"`
	Meta  Meta        `json:"meta"`
}

// PlanetPage is the paginated envelope for planet listings.
type PlanetPage struct {
	Items []Planet `json:"items"`
	Meta  Meta     `json:"meta"`
}

// HasMore reports whether pages remain beyond the current one.
func (m Meta) HasMore() bool {
	return m.CurrentPage < m.TotalPages
}
