// Package transcripts resolves episode transcript references into text.
package transcripts

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Red5d/podcast-mcp/fetcher"
	"github.com/Red5d/podcast-mcp/models"
)

// CleanupMode selects the post-processing applied to fetched transcripts.
type CleanupMode string

const (
	// CleanupRaw returns transcript bytes as fetched.
	CleanupRaw CleanupMode = "raw"
	// CleanupCaptions always applies caption stripping.
	CleanupCaptions CleanupMode = "captions"
	// CleanupAuto picks the cleanup from the transcript's declared type.
	CleanupAuto CleanupMode = "auto"
)

// ParseCleanupMode validates a configured cleanup mode, defaulting to auto.
func ParseCleanupMode(s string) CleanupMode {
	switch CleanupMode(strings.ToLower(strings.TrimSpace(s))) {
	case CleanupRaw:
		return CleanupRaw
	case CleanupCaptions:
		return CleanupCaptions
	default:
		return CleanupAuto
	}
}

// Resolver fetches transcript text for episodes that reference one.
type Resolver struct {
	fetcher fetcher.Fetcher
	mode    CleanupMode
}

// NewResolver creates a Resolver using the given fetch collaborator.
func NewResolver(f fetcher.Fetcher, mode CleanupMode) *Resolver {
	return &Resolver{
		fetcher: f,
		mode:    mode,
	}
}

// Resolve fetches an episode's transcript. A missing transcript reference is
// an expected state, reported as unavailable with no error; a fetch failure
// is unavailable with the reason attached.
func (r *Resolver) Resolve(ctx context.Context, episode *models.Episode) models.TranscriptResult {
	if episode.TranscriptURL == "" {
		return models.TranscriptResult{Available: false}
	}

	data, err := r.fetcher.Fetch(ctx, episode.TranscriptURL)
	if err != nil {
		log.WithFields(log.Fields{
			"show":    episode.ShowName,
			"episode": episode.EpisodeNumber,
			"url":     episode.TranscriptURL,
			"error":   err,
		}).Warn("Transcript fetch failed")
		return models.TranscriptResult{Available: false, Err: err.Error()}
	}

	text := string(data)
	format := episode.TranscriptType
	switch r.mode {
	case CleanupRaw:
		// As fetched.
	case CleanupCaptions:
		text = CleanCaptions(text)
	default:
		text = autoClean(text, episode.TranscriptType, episode.TranscriptURL)
	}

	return models.TranscriptResult{
		Available: true,
		Text:      text,
		Format:    format,
	}
}

func autoClean(text, mimeType, url string) string {
	t := strings.ToLower(mimeType)
	u := strings.ToLower(url)
	switch {
	case strings.Contains(t, "html") || strings.HasSuffix(u, ".html") || strings.HasSuffix(u, ".htm"):
		return HTMLToText(text)
	case strings.Contains(t, "vtt") || strings.Contains(t, "subrip") || strings.Contains(t, "srt") ||
		strings.HasSuffix(u, ".vtt") || strings.HasSuffix(u, ".srt"):
		return CleanCaptions(text)
	default:
		return strings.TrimSpace(text)
	}
}
