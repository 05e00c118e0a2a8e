package transcripts

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	counterPattern   = regexp.MustCompile(`^\d+$`)
	inlineTagPattern = regexp.MustCompile(`<[^>]*>`)
	spacePattern     = regexp.MustCompile(`[ \t]+`)
)

// CleanCaptions reduces a WebVTT or SRT document to its spoken text: header
// and metadata blocks, cue counters, timing lines and inline tags go away,
// and consecutive duplicate lines (roll-up captions) collapse to one.
func CleanCaptions(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	var prev string
	inNote := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			inNote = false
			continue
		case inNote:
			continue
		case strings.HasPrefix(trimmed, "WEBVTT"):
			continue
		case strings.HasPrefix(trimmed, "NOTE"),
			strings.HasPrefix(trimmed, "STYLE"),
			strings.HasPrefix(trimmed, "REGION"):
			inNote = true
			continue
		case strings.Contains(trimmed, "-->"):
			continue
		case counterPattern.MatchString(trimmed):
			continue
		}

		trimmed = strings.TrimSpace(inlineTagPattern.ReplaceAllString(trimmed, ""))
		if trimmed == "" || trimmed == prev {
			continue
		}
		out = append(out, trimmed)
		prev = trimmed
	}

	return strings.Join(out, "\n")
}

// HTMLToText strips structural markup from an HTML transcript, leaving the
// readable text.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable as HTML; the raw text is better than nothing.
		return strings.TrimSpace(html)
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
