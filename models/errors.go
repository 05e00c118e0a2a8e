package models

import "errors"

var (
	// ErrUnknownShow is returned when a show name is not present in the
	// configured registry.
	ErrUnknownShow = errors.New("unknown show")

	// ErrEpisodeNotFound is returned when no episode in a show matches the
	// requested episode number or guid.
	ErrEpisodeNotFound = errors.New("episode not found")

	// ErrEmptyQuery is returned when a search query has no criteria set.
	// An empty query is a validation error rather than a full-catalog dump.
	ErrEmptyQuery = errors.New("at least one search parameter must be provided")
)
