// Package domain contains core business entities and rules.
package domain

import (
	"html"
	"strings"
)

// AnonymousAuthor is the display name used when a quote has no author name.
const AnonymousAuthor = "Anonymous"

// breakMarkers are the accepted spellings of the in-text line-break marker.
// Quote text is stored with an HTML-style marker; everything else in the
// text is treated as literal content.
var breakMarkers = []string{"<br />", "<br/>", "<br>"}

// Author holds optional attribution metadata for a quote.
// Every field may be empty; rendering falls back gracefully.
type Author struct {
	// Name is the displayed author name. Empty means anonymous.
	Name string

	// Bio is a short biography line, displayed only when non-empty.
	Bio string

	// Photo is a relative asset path to the author portrait.
	// Empty means the UI shows a placeholder.
	Photo string
}

// Quote represents a single quotation record.
// ID and Text are always present; Author and its fields are optional.
type Quote struct {
	// ID is the stable unique identifier for this quote.
	ID string

	// Text is the quote body. It may contain a line-break marker
	// which is the only markup honored at display time.
	Text string

	// Author is the optional attribution record.
	Author *Author
}

// AuthorName returns the author display name, falling back to
// AnonymousAuthor when no name is available.
func (q Quote) AuthorName() string {
	if q.Author == nil || q.Author.Name == "" {
		return AnonymousAuthor
	}

	return q.Author.Name
}

// AuthorBio returns the author bio, or empty if absent.
func (q Quote) AuthorBio() string {
	if q.Author == nil {
		return ""
	}

	return q.Author.Bio
}

// AuthorPhoto returns the author photo path, or empty if absent.
func (q Quote) AuthorPhoto() string {
	if q.Author == nil {
		return ""
	}

	return q.Author.Photo
}

// DisplayHTML returns the quote text safe for HTML rendering:
// all markup is escaped, then only the line-break marker is re-enabled
// as a <br> element.
func (q Quote) DisplayHTML() string {
	escaped := html.EscapeString(q.Text)

	for _, marker := range breakMarkers {
		escaped = strings.ReplaceAll(escaped, html.EscapeString(marker), "<br>")
	}

	return escaped
}

// ShareText returns the quote text for sharing, with the line-break
// marker converted to a literal newline.
func (q Quote) ShareText() string {
	text := q.Text
	for _, marker := range breakMarkers {
		text = strings.ReplaceAll(text, marker, "\n")
	}

	return text
}

// Collection is an immutable ordered list of quotes. It is loaded once at
// startup and never mutated afterwards.
type Collection []Quote

// Len returns the number of quotes in the collection.
func (c Collection) Len() int {
	return len(c)
}

// ByID returns the quote with the given identifier.
// Returns a NotFoundError when no quote matches.
func (c Collection) ByID(id string) (Quote, error) {
	for _, q := range c {
		if q.ID == id {
			return q, nil
		}
	}

	return Quote{}, NewNotFoundError("quote", id)
}
