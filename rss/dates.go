package rss

import (
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Date layouts commonly found in podcast feeds, tried in order. RFC 2822
// variants first since that is what RSS pubDate almost always is. Dates
// without zone information are taken as UTC.
var feedDateLayouts = []string{
	time.RFC1123Z, // "Sun, 05 Oct 2025 19:25:37 -0700"
	time.RFC1123,  // "Sun, 05 Oct 2025 19:25:37 PDT"
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05",
	time.RFC3339, // "2025-10-05T19:25:37Z"
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006",
}

var dayMonthYearPattern = regexp.MustCompile(`(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{4})`)

// ParseFeedDate parses a feed date string, trying the common RSS and ISO
// formats in order. Returns nil when nothing matches; date problems are data,
// not faults, so no error is returned.
func ParseFeedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	// Last resort: pull a bare "5 Oct 2025" out of an otherwise broken string.
	if m := dayMonthYearPattern.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2 Jan 2006", m[1]+" "+m[2]+" "+m[3]); err == nil {
			t = t.UTC()
			return &t
		}
	}

	log.WithFields(log.Fields{
		"date": s,
	}).Warn("Could not parse feed date")
	return nil
}
