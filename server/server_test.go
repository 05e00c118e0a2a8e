package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Red5d/podcast-mcp/config"
	"github.com/Red5d/podcast-mcp/feeds"
	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/server"
	"github.com/Red5d/podcast-mcp/transcripts"
)

const showAURL = "https://example.com/a.rss"

const showAFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"
	xmlns:podcast="https://podcastindex.org/namespace/1.0">
	<channel>
		<title>Show A</title>
		<item>
			<title>Show A 2: Flatpak Fight</title>
			<guid>a-2</guid>
			<pubDate>Sun, 05 Oct 2025 10:00:00 +0000</pubDate>
			<podcast:episode>2</podcast:episode>
			<podcast:person role="host">Chris Fisher</podcast:person>
			<podcast:transcript url="https://example.com/2.txt" type="text/plain"/>
			<enclosure url="https://example.com/2.mp3" type="audio/mpeg" length="100"/>
		</item>
		<item>
			<title>Show A 1: Hello World</title>
			<guid>a-1</guid>
			<pubDate>Sun, 28 Sep 2025 10:00:00 +0000</pubDate>
			<podcast:episode>1</podcast:episode>
			<enclosure url="https://example.com/1.mp3" type="audio/mpeg" length="100"/>
		</item>
	</channel>
</rss>`

// fakeFetcher serves the canned feed and transcript bodies.
type fakeFetcher struct {
	bodies map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return []byte(body), nil
}

func newTestServer() *server.ServerConfig {
	f := &fakeFetcher{bodies: map[string]string{
		showAURL:                    showAFeed,
		"https://example.com/2.txt": "Hello and welcome.",
	}}

	loader := feeds.NewLoader([]config.TomlShow{
		{Name: "Show A", FeedURL: showAURL},
	}, f, time.Minute)

	return &server.ServerConfig{
		Loader:   loader,
		Engine:   feeds.NewEngine(loader, 2),
		Resolver: transcripts.NewResolver(f, transcripts.CleanupAuto),
	}
}

func doRequest(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	app := server.Server(newTestServer())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), 5000)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestShowsEndpoint(t *testing.T) {
	resp, body := doRequest(t, "/shows")

	assert.Equal(t, 200, resp.StatusCode)

	var parsed struct {
		Shows []string `json:"shows"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, []string{"Show A"}, parsed.Shows)
}

func TestSearchEndpoint(t *testing.T) {
	resp, body := doRequest(t, "/episodes/search?text=flatpak")

	assert.Equal(t, 200, resp.StatusCode)

	var parsed models.SearchResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Len(t, parsed.Episodes, 1)
	assert.Equal(t, "a-2", parsed.Episodes[0].GUID)
}

func TestSearchEndpointWithDatesAndHosts(t *testing.T) {
	resp, body := doRequest(t, "/episodes/search?since=2025-10-01&hosts=chris%20fisher")

	assert.Equal(t, 200, resp.StatusCode)

	var parsed models.SearchResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Len(t, parsed.Episodes, 1)
	assert.Equal(t, "a-2", parsed.Episodes[0].GUID)
}

func TestSearchEndpointRejectsEmptyQuery(t *testing.T) {
	resp, _ := doRequest(t, "/episodes/search")

	assert.Equal(t, 400, resp.StatusCode)
}

func TestSearchEndpointRejectsBadDate(t *testing.T) {
	resp, _ := doRequest(t, "/episodes/search?since=05%2F10%2F2025")

	assert.Equal(t, 400, resp.StatusCode)
}

func TestSearchEndpointUnknownShow(t *testing.T) {
	resp, _ := doRequest(t, "/episodes/search?show=No%20Such%20Show")

	assert.Equal(t, 404, resp.StatusCode)
}

func TestEpisodeEndpoint(t *testing.T) {
	resp, body := doRequest(t, "/shows/Show%20A/episodes/2")

	assert.Equal(t, 200, resp.StatusCode)

	var episode models.Episode
	require.NoError(t, json.Unmarshal(body, &episode))
	assert.Equal(t, "a-2", episode.GUID)
	assert.Equal(t, "Show A 2: Flatpak Fight", episode.Title)
}

func TestEpisodeEndpointNotFound(t *testing.T) {
	resp, _ := doRequest(t, "/shows/Show%20A/episodes/999")

	assert.Equal(t, 404, resp.StatusCode)
}

func TestEpisodeEndpointUnknownShow(t *testing.T) {
	resp, _ := doRequest(t, "/shows/No%20Such%20Show/episodes/1")

	assert.Equal(t, 404, resp.StatusCode)
}

func TestTranscriptEndpoint(t *testing.T) {
	resp, body := doRequest(t, "/shows/Show%20A/episodes/2/transcript")

	assert.Equal(t, 200, resp.StatusCode)

	var result models.TranscriptResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Available)
	assert.Equal(t, "Hello and welcome.", result.Text)
}

func TestTranscriptEndpointNoTranscript(t *testing.T) {
	resp, body := doRequest(t, "/shows/Show%20A/episodes/1/transcript")

	assert.Equal(t, 200, resp.StatusCode)

	var result models.TranscriptResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Available)
	assert.Empty(t, result.Err)
}
