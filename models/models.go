package models

import "time"

// Episode is the canonical representation of a single feed item. It is built
// once per feed load and never mutated afterwards.
type Episode struct {
	ShowName      string     `json:"showName"`
	GUID          string     `json:"guid,omitempty"`
	EpisodeNumber string     `json:"episodeNumber,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Link          string     `json:"link,omitempty"`

	// PublishedAt is nil when the feed date was missing or unparseable.
	// Such episodes stay listable but are excluded by date filters.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Hosts []string `json:"hosts,omitempty"`

	AudioURL    string `json:"audioUrl,omitempty"`
	AudioType   string `json:"audioType,omitempty"`
	AudioLength string `json:"audioLength,omitempty"`

	// Duration keeps the source formatting (seconds or HH:MM:SS), feeds are
	// inconsistent about the unit.
	Duration string `json:"duration,omitempty"`

	TranscriptURL      string `json:"transcriptUrl,omitempty"`
	TranscriptType     string `json:"transcriptType,omitempty"`
	TranscriptLanguage string `json:"transcriptLanguage,omitempty"`

	ChaptersURL string `json:"chaptersUrl,omitempty"`
}

// HasKnownDate reports whether the episode carries a usable publish date.
func (e *Episode) HasKnownDate() bool {
	return e.PublishedAt != nil
}

// TranscriptResult is the outcome of resolving an episode's transcript.
// A missing transcript element is an expected state, not an error, so both
// absence and fetch failure set Available to false and only the latter sets Err.
type TranscriptResult struct {
	Available bool   `json:"available"`
	Text      string `json:"text,omitempty"`
	Format    string `json:"format,omitempty"`
	Err       string `json:"error,omitempty"`
}

// SearchWarning reports a show that could not contribute to a search result.
type SearchWarning struct {
	ShowName string `json:"showName"`
	Message  string `json:"message"`
}

// SearchResponse is the wire shape of a search: the matching episodes plus
// warnings for any shows that failed to load.
type SearchResponse struct {
	Episodes []Episode       `json:"episodes"`
	Warnings []SearchWarning `json:"warnings,omitempty"`
}
