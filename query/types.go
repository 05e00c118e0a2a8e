// Package query defines the episode search query and its filter strategies.
package query

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Red5d/podcast-mcp/models"
)

// Query is one search call's criteria. Populated fields are AND-combined.
type Query struct {
	// ShowName restricts the search to one show; empty means every
	// registered show.
	ShowName string

	// Since is the inclusive lower publish-date bound, Before the exclusive
	// upper bound.
	Since  *time.Time
	Before *time.Time

	// Hosts matches an episode when any of its hosts equals any of these
	// names, case-insensitively.
	Hosts []string

	// Text is matched case-insensitively as a substring of title and
	// description.
	Text string
}

// IsEmpty reports whether no criterion is set.
func (q *Query) IsEmpty() bool {
	return q.ShowName == "" && q.Since == nil && q.Before == nil && len(q.Hosts) == 0 && q.Text == ""
}

// Validate rejects empty queries so a search can never accidentally dump the
// whole catalog.
func (q *Query) Validate() error {
	if q.IsEmpty() {
		return models.ErrEmptyQuery
	}
	return nil
}

// FilterStrategy decides whether an episode matches one criterion.
type FilterStrategy interface {
	Match(episode *models.Episode) bool
}

// DateRangeFilter filters episodes by publish date. Episodes with an unknown
// date never match while a bound is set.
type DateRangeFilter struct {
	Since  *time.Time
	Before *time.Time
}

func (f *DateRangeFilter) Match(episode *models.Episode) bool {
	if f.Since == nil && f.Before == nil {
		return true
	}
	if !episode.HasKnownDate() {
		return false
	}
	if f.Since != nil && episode.PublishedAt.Before(*f.Since) {
		return false
	}
	if f.Before != nil && !episode.PublishedAt.Before(*f.Before) {
		return false
	}
	return true
}

// HostFilter matches episodes hosted by any of the requested names.
type HostFilter struct {
	Hosts []string
}

func (f *HostFilter) Match(episode *models.Episode) bool {
	return lo.SomeBy(episode.Hosts, func(h string) bool {
		return lo.SomeBy(f.Hosts, func(want string) bool {
			return strings.EqualFold(h, want)
		})
	})
}

// TextFilter matches a case-insensitive substring of title and description.
type TextFilter struct {
	Text string
}

func (f *TextFilter) Match(episode *models.Episode) bool {
	needle := strings.ToLower(f.Text)
	return strings.Contains(strings.ToLower(episode.Title), needle) ||
		strings.Contains(strings.ToLower(episode.Description), needle)
}

var _ FilterStrategy = (*DateRangeFilter)(nil)
var _ FilterStrategy = (*HostFilter)(nil)
var _ FilterStrategy = (*TextFilter)(nil)

// Filters compiles the query's populated criteria into filter strategies.
// ShowName is not a filter; it routes which shows get loaded.
func Filters(q *Query) []FilterStrategy {
	var filters []FilterStrategy
	if q.Since != nil || q.Before != nil {
		filters = append(filters, &DateRangeFilter{Since: q.Since, Before: q.Before})
	}
	if len(q.Hosts) > 0 {
		filters = append(filters, &HostFilter{Hosts: q.Hosts})
	}
	if q.Text != "" {
		filters = append(filters, &TextFilter{Text: q.Text})
	}
	return filters
}

// Matches reports whether the episode passes every filter.
func Matches(episode *models.Episode, filters []FilterStrategy) bool {
	for _, f := range filters {
		if !f.Match(episode) {
			return false
		}
	}
	return true
}

// Input date forms accepted at the tool boundary.
var inputDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInputDate parses a tool-boundary date: calendar dates (YYYY-MM-DD) are
// start-of-day UTC, full timestamps are taken as given.
func ParseInputDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range inputDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
