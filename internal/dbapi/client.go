package dbapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 8 * time.Second

// DefaultBaseURL points at the public Dragon Ball API.
const DefaultBaseURL = "https://dragonball-api.com/api"

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client implements Service against the remote catalog API, substituting the
// embedded fallback dataset whenever a remote call fails.
type Client struct {
	base   *url.URL
	http   HTTPClient
	logger *zap.Logger
}

// NewClient constructs a Client for the given base URL. A nil httpClient
// selects a default client with a request timeout; a nil logger is replaced
// with a no-op logger.
func NewClient(baseURL string, httpClient HTTPClient, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("dbapi: parse base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   parsed,
		http:   httpClient,
		logger: logger,
	}, nil
}

// ListCharacters returns one page of characters, trusting the remote
// envelope when the call succeeds and slicing the fallback dataset when it
// does not.
func (c *Client) ListCharacters(ctx context.Context, page, pageSize int) (CharacterPage, error) {
	page, pageSize = normalizePaging(page, pageSize)

	remote, err := c.fetchCharacterPage(ctx, page, pageSize)
	if err != nil {
		c.logger.Warn("character list unavailable, serving fallback dataset",
			zap.Int("page", page),
			zap.Int("pageSize", pageSize),
			zap.Error(err))
		return fallbackCharacterPage(page, pageSize), nil
	}
	return remote, nil
}

// GetCharacter fetches one record by id, consulting the fallback dataset when
// the remote call fails. A miss on both paths yields ErrCharacterNotFound.
func (c *Client) GetCharacter(ctx context.Context, id string) (Character, error) {
	record, err := c.fetchCharacter(ctx, id)
	if err == nil {
		return record, nil
	}
	c.logger.Warn("character fetch failed, consulting fallback dataset",
		zap.String("id", id),
		zap.Error(err))

	if record, ok := fallbackCharacterByID(id); ok {
		return record, nil
	}
	return Character{}, fmt.Errorf("%w: id %q", ErrCharacterNotFound, id)
}

// SearchCharacters filters one remote page client-side, or the entire
// fallback dataset when the remote call fails.
//
// The remote path deliberately searches only within the fetched page: the
// upstream API offers no server-side search, and widening the window would
// change the observable paging behaviour the rest of the catalog relies on.
func (c *Client) SearchCharacters(ctx context.Context, name, category string, page, pageSize int) (CharacterPage, error) {
	page, pageSize = normalizePaging(page, pageSize)

	remote, err := c.fetchCharacterPage(ctx, page, pageSize)
	if err != nil {
		c.logger.Warn("character search unavailable, filtering fallback dataset",
			zap.String("name", name),
			zap.String("category", category),
			zap.Error(err))
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

	matched := filterCharacters(remote.Items, name, category)
	remote.Items = matched
	remote.Meta.ItemCount = len(matched)
	return remote, nil
}

// ListPlanets returns the planet listing, or the full embedded planet list
// when the remote call fails.
func (c *Client) ListPlanets(ctx context.Context) (PlanetPage, error) {
	remote, err := c.fetchPlanetPage(ctx)
	if err != nil {
		c.logger.Warn("planet list unavailable, serving fallback dataset", zap.Error(err))
		return fallbackPlanetPage(), nil
	}
	return remote, nil
}

func (c *Client) fetchCharacterPage(ctx context.Context, page, pageSize int) (CharacterPage, error) {
	endpoint := c.resolve("characters")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CharacterPage{}, fmt.Errorf("dbapi: build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(pageSize))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return CharacterPage{}, fmt.Errorf("dbapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CharacterPage{}, remoteStatusError(resp.StatusCode)
	}

	var payload CharacterPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CharacterPage{}, fmt.Errorf("dbapi: decode character page: %w", err)
	}
	return payload, nil
}

func (c *Client) fetchCharacter(ctx context.Context, id string) (Character, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Character{}, errors.New("dbapi: empty character id")
	}
	endpoint := c.resolve(path.Join("characters", url.PathEscape(trimmed)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Character{}, fmt.Errorf("dbapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Character{}, fmt.Errorf("dbapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Character{}, remoteStatusError(resp.StatusCode)
	}

	var payload Character
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Character{}, fmt.Errorf("dbapi: decode character: %w", err)
	}
	return payload, nil
}

func (c *Client) fetchPlanetPage(ctx context.Context) (PlanetPage, error) {
	endpoint := c.resolve("planets")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PlanetPage{}, fmt.Errorf("dbapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return PlanetPage{}, fmt.Errorf("dbapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return PlanetPage{}, remoteStatusError(resp.StatusCode)
	}

	var payload PlanetPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return PlanetPage{}, fmt.Errorf("dbapi: decode planet page: %w", err)
	}
	return payload, nil
}

func (c *Client) resolve(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref := &url.URL{Path: strings.TrimRight(c.base.Path, "/") + "/" + trimmed}
	return c.base.ResolveReference(ref).String()
}

func remoteStatusError(status int) error {
	return fmt.Errorf("dbapi: remote status %d: %s", status, http.StatusText(status))
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// filterCharacters applies the name and category filters, both treated as
// case-insensitive substrings with empty values matching everything.
func filterCharacters(records []Character, name, category string) []Character {
	name = strings.ToLower(strings.TrimSpace(name))
	category = strings.ToLower(strings.TrimSpace(category))

	matched := make([]Character, 0, len(records))
	for _, record := range records {
		if name != "" && !strings.Contains(strings.ToLower(record.Name), name) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(record.Race), category) {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}
