package feeds_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Red5d/podcast-mcp/config"
	"github.com/Red5d/podcast-mcp/feeds"
	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/query"
)

const (
	showAURL = "https://example.com/a.rss"
	showBURL = "https://example.com/b.rss"
)

func newTestEngine(f *fakeFetcher) *feeds.Engine {
	f.bodies[showAURL] = testFeed("Show A",
		episodeItem("2", "Show A 2: Flatpak Fight", "a-2", "Sun, 05 Oct 2025 10:00:00 +0000",
			`<podcast:person role="host">Chris Fisher</podcast:person>`),
		episodeItem("1", "Show A 1: Hello World", "a-1", "Sun, 21 Sep 2025 10:00:00 +0000",
			`<podcast:person role="host">Chris Fisher</podcast:person>`),
	)
	f.bodies[showBURL] = testFeed("Show B",
		episodeItem("7", "Show B 7: Kubernetes Korner", "b-7", "Sun, 28 Sep 2025 10:00:00 +0000",
			`<podcast:person role="host">Alex Kretzschmar</podcast:person>`),
	)

	loader := feeds.NewLoader([]config.TomlShow{
		{Name: "Show A", FeedURL: showAURL},
		{Name: "Show B", FeedURL: showBURL},
	}, f, time.Minute)
	return feeds.NewEngine(loader, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	_, err := engine.Search(context.Background(), &query.Query{})

	assert.ErrorIs(t, err, models.ErrEmptyQuery)
}

func TestSearchUnknownShow(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	_, err := engine.Search(context.Background(), &query.Query{ShowName: "No Such Show"})

	assert.ErrorIs(t, err, models.ErrUnknownShow)
}

func TestSearchSingleShow(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	response, err := engine.Search(context.Background(), &query.Query{ShowName: "Show A"})

	require.NoError(t, err)
	require.Len(t, response.Episodes, 2)
	assert.Empty(t, response.Warnings)
	assert.Equal(t, "a-2", response.Episodes[0].GUID)
	assert.Equal(t, "a-1", response.Episodes[1].GUID)
}

func TestSearchAcrossShows(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())
	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	response, err := engine.Search(context.Background(), &query.Query{Since: &since})

	require.NoError(t, err)
	require.Len(t, response.Episodes, 3)

	// Most recent first regardless of show.
	assert.Equal(t, "a-2", response.Episodes[0].GUID)
	assert.Equal(t, "b-7", response.Episodes[1].GUID)
	assert.Equal(t, "a-1", response.Episodes[2].GUID)
}

func TestSearchTextFilter(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	response, err := engine.Search(context.Background(), &query.Query{Text: "kubernetes"})

	require.NoError(t, err)
	require.Len(t, response.Episodes, 1)
	assert.Equal(t, "b-7", response.Episodes[0].GUID)
}

func TestSearchHostFilterCaseInsensitive(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	response, err := engine.Search(context.Background(), &query.Query{Hosts: []string{"chris fisher"}})

	require.NoError(t, err)
	require.Len(t, response.Episodes, 2)
	for _, episode := range response.Episodes {
		assert.Equal(t, "Show A", episode.ShowName)
	}
}

func TestSearchDateBounds(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())
	since := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	response, err := engine.Search(context.Background(), &query.Query{Since: &since, Before: &before})

	require.NoError(t, err)
	require.Len(t, response.Episodes, 1)
	assert.Equal(t, "b-7", response.Episodes[0].GUID)
}

func TestSearchFailingShowBecomesWarning(t *testing.T) {
	fetcher := newFakeFetcher()
	engine := newTestEngine(fetcher)
	fetcher.errs[showBURL] = errors.New("connection refused")

	response, err := engine.Search(context.Background(), &query.Query{Text: "show"})

	require.NoError(t, err)
	require.Len(t, response.Warnings, 1)
	assert.Equal(t, "Show B", response.Warnings[0].ShowName)
	assert.Contains(t, response.Warnings[0].Message, "connection refused")

	// Show A's results still come back.
	require.Len(t, response.Episodes, 2)
	assert.Equal(t, "Show A", response.Episodes[0].ShowName)
}

func TestSearchNoMatchesIsEmptyNotNil(t *testing.T) {
	engine := newTestEngine(newFakeFetcher())

	response, err := engine.Search(context.Background(), &query.Query{Text: "no such topic"})

	require.NoError(t, err)
	assert.NotNil(t, response.Episodes)
	assert.Empty(t, response.Episodes)
}
