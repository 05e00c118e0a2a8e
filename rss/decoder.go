// Package rss parses Podcast 2.0 RSS feeds into canonical episode models.
//
// Decoding is deliberately tolerant: real-world feeds omit namespace
// declarations, ship broken bytes and leave out extension elements, and none
// of that should cost more than the data that is actually missing. Only a
// structurally invalid document fails the whole parse.
package rss

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
)

// DecodeError marks a feed document that could not be parsed at all. This is
// the only fatal parse outcome; anything item-level is recovered and logged.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed feed document: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var encodingDeclPattern = regexp.MustCompile(`(?i)<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)

// Decoder turns raw feed bytes into a parsed feed tree.
type Decoder struct {
	parser *gofeed.Parser
}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		parser: gofeed.NewParser(),
	}
}

// Decode parses feed bytes into a gofeed.Feed. Item order is the document's
// encounter order, which gofeed preserves. Invalid UTF-8 in documents that
// claim (or default to) UTF-8 is replaced rather than rejected.
func (d *Decoder) Decode(data []byte) (*gofeed.Feed, error) {
	data = sanitizeEncoding(data)

	feed, err := d.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return feed, nil
}

// sanitizeEncoding replaces invalid UTF-8 sequences with the replacement rune
// when the document does not declare a different charset. Documents with an
// explicit non-UTF-8 encoding are left for the parser's charset handling.
func sanitizeEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	if m := encodingDeclPattern.FindSubmatch(data); m != nil {
		if enc := string(bytes.ToLower(m[1])); enc != "utf-8" && enc != "utf8" {
			return data
		}
	}
	return bytes.ToValidUTF8(data, []byte("�"))
}
