package rss_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Red5d/podcast-mcp/rss"
)

func TestParseFeedDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{
			name:     "rfc 2822 with numeric zone",
			date:     "Sun, 05 Oct 2025 19:25:37 -0700",
			expected: "2025-10-06T02:25:37Z",
		},
		{
			name:     "rfc 2822 with named zone",
			date:     "Sun, 05 Oct 2025 19:25:37 GMT",
			expected: "2025-10-05T19:25:37Z",
		},
		{
			name:     "rfc 2822 without leading zero",
			date:     "Sun, 5 Oct 2025 19:25:37 -0700",
			expected: "2025-10-06T02:25:37Z",
		},
		{
			name:     "rfc 3339",
			date:     "2025-10-05T19:25:37Z",
			expected: "2025-10-05T19:25:37Z",
		},
		{
			name:     "iso without zone",
			date:     "2025-10-05T19:25:37",
			expected: "2025-10-05T19:25:37Z",
		},
		{
			name:     "date only",
			date:     "2025-10-05",
			expected: "2025-10-05T00:00:00Z",
		},
		{
			name:     "no weekday",
			date:     "05 Oct 2025 19:25:37 -0700",
			expected: "2025-10-06T02:25:37Z",
		},
		{
			name:     "surrounding whitespace",
			date:     "  2025-10-05  ",
			expected: "2025-10-05T00:00:00Z",
		},
		{
			name:     "day month year buried in noise",
			date:     "Published 5 Oct 2025 or thereabouts",
			expected: "2025-10-05T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rss.ParseFeedDate(tt.date)
			require.NotNil(t, result)
			assert.Equal(t, tt.expected, result.UTC().Format(time.RFC3339))
		})
	}
}

func TestParseFeedDateUnparseable(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{
			name: "empty string",
			date: "",
		},
		{
			name: "whitespace only",
			date: "   ",
		},
		{
			name: "garbage",
			date: "not a date at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, rss.ParseFeedDate(tt.date))
		})
	}
}
