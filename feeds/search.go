package feeds

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/query"
)

const defaultSearchWorkers = 4

// Engine evaluates search queries against loaded episode snapshots, fanning
// out across shows with a bounded worker limit.
type Engine struct {
	loader  *Loader
	workers int
}

// NewEngine creates a search engine over the loader. workers bounds how many
// shows are fetched concurrently for cross-show searches.
func NewEngine(loader *Loader, workers int) *Engine {
	if workers <= 0 {
		workers = defaultSearchWorkers
	}
	return &Engine{
		loader:  loader,
		workers: workers,
	}
}

// Search evaluates the query, AND-combining its populated criteria. With no
// show name set every registered show is searched; shows that fail to load
// are reported as warnings alongside the results from the shows that loaded,
// never as a failure of the whole query.
func (e *Engine) Search(ctx context.Context, q *query.Query) (*models.SearchResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var shows []string
	if q.ShowName != "" {
		if !e.loader.Knows(q.ShowName) {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownShow, q.ShowName)
		}
		shows = []string{q.ShowName}
	} else {
		shows = e.loader.Shows()
	}

	type showResult struct {
		episodes []models.Episode
		err      error
	}

	// Feed fetches are independent I/O, so shows load concurrently. Results
	// land in per-show slots to keep registry order deterministic.
	results := make([]showResult, len(shows))
	g := new(errgroup.Group)
	g.SetLimit(e.workers)
	for i, show := range shows {
		i, show := i, show
		g.Go(func() error {
			episodes, err := e.loader.Load(ctx, show)
			results[i] = showResult{episodes: episodes, err: err}
			return nil
		})
	}
	_ = g.Wait()

	filters := query.Filters(q)

	response := &models.SearchResponse{Episodes: []models.Episode{}}
	for i, show := range shows {
		if results[i].err != nil {
			log.WithFields(log.Fields{
				"show":  show,
				"error": results[i].err,
			}).Warn("Show failed to load during search")
			response.Warnings = append(response.Warnings, models.SearchWarning{
				ShowName: show,
				Message:  results[i].err.Error(),
			})
			continue
		}
		for _, episode := range results[i].episodes {
			if query.Matches(&episode, filters) {
				response.Episodes = append(response.Episodes, episode)
			}
		}
	}

	sortByPublished(response.Episodes)
	return response, nil
}

// sortByPublished orders episodes most recent first. Episodes with unknown
// dates sort after every dated episode and keep their encounter order among
// themselves.
func sortByPublished(episodes []models.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		a, b := episodes[i].PublishedAt, episodes[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
