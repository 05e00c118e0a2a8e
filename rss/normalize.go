package rss

import (
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/Red5d/podcast-mcp/models"
)

// Title conventions like "LINUX Unplugged 635: Foo": the episode number is the
// last run of digits before the first colon, or a bare leading number.
var (
	titleNumberPattern   = regexp.MustCompile(`^[^:]*?(\d+)\s*:`)
	leadingNumberPattern = regexp.MustCompile(`^(\d+)\b`)
)

// NormalizeAll converts every usable item of a decoded feed into an Episode,
// preserving encounter order. Items with no identifying content at all are
// skipped with a warning rather than failing the feed.
func NormalizeAll(showName string, feed *gofeed.Feed) []models.Episode {
	episodes := make([]models.Episode, 0, len(feed.Items))
	for i, item := range feed.Items {
		if item == nil || isEmptyItem(item) {
			log.WithFields(log.Fields{
				"show": showName,
				"item": i,
			}).Warn("Skipping feed item with no identifying content")
			continue
		}
		episodes = append(episodes, Normalize(showName, item))
	}
	return episodes
}

// Normalize maps a single decoded feed item onto the canonical Episode model.
// Missing or broken fields become zero values; this function never fails.
func Normalize(showName string, item *gofeed.Item) models.Episode {
	episode := models.Episode{
		ShowName:    showName,
		GUID:        item.GUID,
		Title:       item.Title,
		Description: itemDescription(item),
		Link:        item.Link,
		PublishedAt: itemPublished(item),
		Hosts:       itemHosts(item),
	}

	episode.EpisodeNumber = itemEpisodeNumber(item)

	if len(item.Enclosures) > 0 {
		enc := item.Enclosures[0]
		episode.AudioURL = enc.URL
		episode.AudioType = enc.Type
		episode.AudioLength = enc.Length
	}

	if item.ITunesExt != nil {
		episode.Duration = item.ITunesExt.Duration
	}

	if transcript := pickTranscript(podcastElements(item, "transcript")); transcript != nil {
		episode.TranscriptURL = transcript.Attrs["url"]
		episode.TranscriptType = transcript.Attrs["type"]
		if lang, ok := transcript.Attrs["language"]; ok && lang != "" {
			episode.TranscriptLanguage = lang
		} else {
			episode.TranscriptLanguage = "en-us"
		}
	}

	if chapters := podcastElements(item, "chapters"); len(chapters) > 0 {
		episode.ChaptersURL = chapters[0].Attrs["url"]
	}

	return episode
}

func isEmptyItem(item *gofeed.Item) bool {
	return item.Title == "" && item.GUID == "" && len(item.Enclosures) == 0
}

// itemDescription prefers the plain description over rich content, then the
// iTunes summary.
func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	if item.Content != "" {
		return item.Content
	}
	if item.ITunesExt != nil {
		return item.ITunesExt.Summary
	}
	return ""
}

// itemPublished takes gofeed's already-parsed date when available and falls
// back to our own layout chain on the raw string. Unparseable dates are kept
// as unknown, not discarded.
func itemPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		return &t
	}
	if item.Published != "" {
		return ParseFeedDate(item.Published)
	}
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		return &t
	}
	return nil
}

// itemHosts collects podcast:person names. Entries with a host-like role win;
// when no entry is tagged as a host the feed's role tagging is considered
// unreliable and every person is taken.
func itemHosts(item *gofeed.Item) []string {
	persons := podcastElements(item, "person")
	if len(persons) == 0 {
		return nil
	}

	var hosts, all []string
	for _, person := range persons {
		name := strings.TrimSpace(person.Value)
		if name == "" {
			continue
		}
		all = append(all, name)
		if isHostRole(person.Attrs["role"]) {
			hosts = append(hosts, name)
		}
	}

	if len(hosts) > 0 {
		return lo.Uniq(hosts)
	}
	return lo.Uniq(all)
}

func isHostRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "host", "co-host", "cohost":
		return true
	}
	return false
}

// itemEpisodeNumber resolves the episode number via an ordered fallback chain:
// podcast:episode, itunes:episode, then the numbering convention in the title.
// An empty result is fine; the episode just has no exact-number lookup key.
func itemEpisodeNumber(item *gofeed.Item) string {
	if elems := podcastElements(item, "episode"); len(elems) > 0 {
		if num := strings.TrimSpace(elems[0].Value); num != "" {
			return num
		}
	}
	if item.ITunesExt != nil && item.ITunesExt.Episode != "" {
		return strings.TrimSpace(item.ITunesExt.Episode)
	}
	return titleEpisodeNumber(item.Title)
}

func titleEpisodeNumber(title string) string {
	if m := titleNumberPattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if m := leadingNumberPattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}

// pickTranscript chooses between multiple transcript elements: plain text
// first, then caption formats, HTML and anything else last. Ties keep the
// first encountered.
func pickTranscript(transcripts []ext.Extension) *ext.Extension {
	var best *ext.Extension
	bestRank := 0
	for i := range transcripts {
		if transcripts[i].Attrs["url"] == "" {
			continue
		}
		rank := transcriptRank(transcripts[i].Attrs["type"], transcripts[i].Attrs["url"])
		if best == nil || rank < bestRank {
			best = &transcripts[i]
			bestRank = rank
		}
	}
	return best
}

func transcriptRank(mimeType, url string) int {
	t := strings.ToLower(mimeType)
	u := strings.ToLower(url)
	switch {
	case strings.Contains(t, "text/plain") || strings.HasSuffix(u, ".txt"):
		return 0
	case strings.Contains(t, "vtt") || strings.Contains(t, "subrip") || strings.Contains(t, "srt") ||
		strings.HasSuffix(u, ".vtt") || strings.HasSuffix(u, ".srt"):
		return 1
	default:
		return 2
	}
}

// podcastElements returns the Podcast 2.0 extension elements with the given
// local name, or nil when the namespace is absent from the item.
func podcastElements(item *gofeed.Item, name string) []ext.Extension {
	ns, ok := item.Extensions["podcast"]
	if !ok {
		return nil
	}
	return ns[name]
}
