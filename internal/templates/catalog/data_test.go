package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/dbapi"
)

func TestListPayload(t *testing.T) {
	t.Parallel()

	state := browse.ListState{
		Characters: []dbapi.Character{
			{ID: 1, Name: "Goku", Race: "Saiyan", Ki: "60.000.000", MaxKi: "90 Septillion", Image: "https://example.test/goku.webp"},
		},
		HasMore: true,
		Query:   browse.SearchQuery{Name: "goku"},
	}

	data := ListPayload("/catalog", state)
	require.Len(t, data.Cards, 1)

	card := data.Cards[0]
	require.Equal(t, "Goku", card.Name)
	require.Equal(t, "60.000.000", card.Ki, "ki values are rendered verbatim")
	require.Equal(t, "90 Septillion", card.MaxKi)
	require.Equal(t, "/catalog/characters/1", card.DetailURL)

	require.True(t, data.HasMore)
	require.True(t, data.Query.Active)
	require.Equal(t, "/catalog/fragments/characters/more", data.MoreEndpoint)
	require.Equal(t, "/catalog/fragments/characters/search", data.SearchEndpoint)
}

func TestBuildDetailData(t *testing.T) {
	t.Parallel()

	record := dbapi.Character{ID: 2, Name: "Vegeta", Description: "Prince of **Saiyans**."}
	data := BuildDetailData("/", "2", browse.DetailState{Record: &record})

	require.Equal(t, "Vegeta", data.Title)
	require.NotNil(t, data.Record)
	require.Contains(t, string(data.DescriptionHTML), "<strong>Saiyans</strong>")
	require.Equal(t, "/fragments/characters/2", data.RetryEndpoint)
	require.Equal(t, "/characters", data.BackURL)
}

func TestBuildDetailDataWithoutRecord(t *testing.T) {
	t.Parallel()

	data := BuildDetailData("/", "999", browse.DetailState{Error: dbapi.MsgNotFound})
	require.Nil(t, data.Record)
	require.Equal(t, dbapi.MsgNotFound, data.Error)
	require.Equal(t, "Character", data.Title)
	require.Equal(t, "/fragments/characters/999", data.RetryEndpoint)
}
