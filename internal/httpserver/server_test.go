package httpserver_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"dragonfield.org/catalog-web/internal/dbapi"
	"dragonfield.org/catalog-web/internal/testutil"
)

type unreachableHTTPClient struct{}

func (unreachableHTTPClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

// offlineService exercises the remote client's fallback path end to end:
// every request fails at the transport and is served from the built-in
// dataset.
func offlineService(t *testing.T) dbapi.Service {
	t.Helper()

	svc, err := dbapi.NewClient("", unreachableHTTPClient{}, nil)
	require.NoError(t, err)
	return svc
}

func get(t *testing.T, client *http.Client, url string, htmx bool) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	res, err := client.Do(req)
	require.NoError(t, err)
	return res
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	res := get(t, ts.Client(), ts.URL+"/healthz", false)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", string(testutil.ReadBody(t, res)))
}

func TestCharactersPageRendersFallbackDataset(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/characters", false)
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 6, doc.Find(".card").Length())
	require.Contains(t, doc.Find(".card h2").First().Text(), "Goku")
	require.Zero(t, doc.Find(".load-more").Length(), "single page dataset has no further pages")
	require.Zero(t, doc.Find(".error-banner").Length(), "fallback absorbs network failures")
}

func TestFragmentsRejectDirectNavigation(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/fragments/characters", false)
	testutil.ReadBody(t, res)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSearchFragmentFiltersByName(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	// Establish a session first, like a browser would.
	testutil.ReadBody(t, get(t, client, ts.URL+"/characters", false))

	res := get(t, client, ts.URL+"/fragments/characters/search?name=GoKu", true)
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 1, doc.Find(".card").Length())
	require.Contains(t, doc.Find(".card h2").Text(), "Goku")
	require.Zero(t, doc.Find(".load-more").Length(), "search results offer no further pages")
}

func TestSearchFragmentFiltersByCategory(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)
	testutil.ReadBody(t, get(t, client, ts.URL+"/characters", false))

	res := get(t, client, ts.URL+"/fragments/characters/search?category=saiyan", true)
	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 2, doc.Find(".card").Length())

	names := doc.Find(".card h2").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	require.ElementsMatch(t, []string{"Goku", "Vegeta"}, names)
}

func TestDetailPage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/characters/1", false)
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Contains(t, doc.Find(".detail h1").Text(), "Goku")
	require.Contains(t, doc.Find(".detail dd").Text(), "60.000.000")
}

func TestDetailPageUnknownID(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/characters/999", false)
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 1, doc.Find(".error-banner").Length())
}

func TestDetailRetryRepeatsSameLookup(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/characters/999", false)
	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))

	endpoint, ok := doc.Find("#character-detail .retry").Attr("hx-get")
	require.True(t, ok, "failed detail page renders a retry control")
	require.Equal(t, "/fragments/characters/999", endpoint)

	res = get(t, client, ts.URL+endpoint, true)
	require.Equal(t, http.StatusOK, res.StatusCode)
	frag := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 1, frag.Find(".error-banner").Length(), "offline lookup fails again")
	require.Zero(t, frag.Find(".card").Length(), "retry must not render the list fragment")
}

func TestPlanetsPage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithService(offlineService(t)))
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/planets", false)
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	require.Equal(t, 4, doc.Find(".planet").Length())
	require.Equal(t, 3, doc.Find(".planet.destroyed").Length())
}

func TestMountedBasePath(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t,
		testutil.WithService(offlineService(t)),
		testutil.WithBasePath("/catalog"),
	)
	client := testutil.NewClient(t)

	res := get(t, client, ts.URL+"/catalog/characters", false)
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc := testutil.ParseHTML(t, testutil.ReadBody(t, res))
	href, _ := doc.Find(".card a").First().Attr("href")
	require.Contains(t, href, "/catalog/characters/")
}
