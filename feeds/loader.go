// Package feeds loads show feeds into in-memory episode snapshots and
// evaluates search queries across them.
package feeds

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Red5d/podcast-mcp/config"
	"github.com/Red5d/podcast-mcp/fetcher"
	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/rss"
)

// Loader fetches, decodes and caches one episode snapshot per registered
// show. Snapshots are read-only once built; the only coordination is around
// cache fill, where concurrent loads of the same show collapse into a single
// fetch. Fetch errors are reported and never cached.
type Loader struct {
	order   []string
	urls    map[string]string
	fetcher fetcher.Fetcher
	decoder *rss.Decoder
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
	group singleflight.Group
}

type cacheEntry struct {
	episodes  []models.Episode
	fetchedAt time.Time
}

// NewLoader creates a Loader over the injected show registry. Registry order
// is preserved as the listing order.
func NewLoader(shows []config.TomlShow, f fetcher.Fetcher, ttl time.Duration) *Loader {
	l := &Loader{
		order:   make([]string, 0, len(shows)),
		urls:    make(map[string]string, len(shows)),
		fetcher: f,
		decoder: rss.NewDecoder(),
		ttl:     ttl,
		cache:   make(map[string]cacheEntry),
	}
	for _, show := range shows {
		if _, ok := l.urls[show.Name]; ok {
			continue
		}
		l.order = append(l.order, show.Name)
		l.urls[show.Name] = show.FeedURL
	}
	return l
}

// Shows returns the registered show names in registry order.
func (l *Loader) Shows() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Knows reports whether the show exists in the registry.
func (l *Loader) Knows(showName string) bool {
	_, ok := l.urls[showName]
	return ok
}

// Load returns the episode snapshot for a show, fetching and parsing the feed
// if no fresh snapshot is cached.
func (l *Loader) Load(ctx context.Context, showName string) ([]models.Episode, error) {
	url, ok := l.urls[showName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownShow, showName)
	}

	if episodes, ok := l.cached(showName); ok {
		return episodes, nil
	}

	v, err, _ := l.group.Do(showName, func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have filled the
		// cache between our check and the flight starting.
		if episodes, ok := l.cached(showName); ok {
			return episodes, nil
		}

		// The fetch may be serving several waiters, so it is not tied to
		// the initiating caller's cancellation; the fetcher's own timeout
		// bounds it.
		data, err := l.fetcher.Fetch(context.WithoutCancel(ctx), url)
		if err != nil {
			return nil, err
		}

		feed, err := l.decoder.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("show %q: %w", showName, err)
		}

		episodes := rss.NormalizeAll(showName, feed)
		l.mu.Lock()
		l.cache[showName] = cacheEntry{episodes: episodes, fetchedAt: time.Now()}
		l.mu.Unlock()

		log.WithFields(log.Fields{
			"show":     showName,
			"episodes": len(episodes),
		}).Info("Loaded feed")

		return episodes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Episode), nil
}

// GetEpisode looks up one episode by exact episode number, falling back to
// guid. With duplicate numbers in a feed the first encountered wins.
func (l *Loader) GetEpisode(ctx context.Context, showName, episodeNumber string) (*models.Episode, error) {
	episodes, err := l.Load(ctx, showName)
	if err != nil {
		return nil, err
	}

	for i := range episodes {
		if episodes[i].EpisodeNumber != "" && episodes[i].EpisodeNumber == episodeNumber {
			episode := episodes[i]
			return &episode, nil
		}
	}
	for i := range episodes {
		if episodes[i].GUID != "" && episodes[i].GUID == episodeNumber {
			episode := episodes[i]
			return &episode, nil
		}
	}

	return nil, fmt.Errorf("%w: %q in show %q", models.ErrEpisodeNotFound, episodeNumber, showName)
}

// Invalidate drops the cached snapshot for a show.
func (l *Loader) Invalidate(showName string) {
	l.mu.Lock()
	delete(l.cache, showName)
	l.mu.Unlock()
}

func (l *Loader) cached(showName string) ([]models.Episode, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.cache[showName]
	if !ok {
		return nil, false
	}
	if l.ttl > 0 && time.Since(entry.fetchedAt) > l.ttl {
		return nil, false
	}
	return entry.episodes, true
}
