package app

import (
	"context"
	"net/url"

	"github.com/jsamuelsen/quotedeck/internal/ports"
)

// SharePayload carries everything a client needs to share one quote:
// the native share invocation fields plus prebuilt fallback links for
// environments without native share support.
type SharePayload struct {
	// Title, Text and URL feed the environment's native share call.
	Title string
	Text  string
	URL   string

	// TwitterURL is the microblog share-intent link (text + url params).
	TwitterURL string

	// LinkedInURL is the professional-network share link (url param).
	LinkedInURL string
}

// ShareLinks configures the outbound sharing targets.
type ShareLinks struct {
	// Title is the share sheet title, typically the site name.
	Title string

	// SiteURL is the canonical page URL quotes are shared as.
	SiteURL string

	// TwitterIntentURL is the share-intent endpoint accepting
	// text and url query parameters.
	TwitterIntentURL string

	// LinkedInShareURL is the share endpoint accepting a url
	// query parameter.
	LinkedInShareURL string
}

// ShareService builds share payloads for quotes. It has no side effects;
// the actual share invocation happens in the visitor's environment.
type ShareService struct {
	source ports.QuoteSource
	links  ShareLinks
}

// NewShareService creates a new share service.
// Panics if Source is nil.
func NewShareService(source ports.QuoteSource, links ShareLinks) *ShareService {
	if source == nil {
		panic("ShareService: Source is required")
	}

	return &ShareService{
		source: source,
		links:  links,
	}
}

// Build assembles the share payload for the quote with the given ID.
// Returns domain.ErrNotFound when the quote does not exist.
func (s *ShareService) Build(ctx context.Context, quoteID string) (SharePayload, error) {
	quote, err := s.source.Collection().ByID(quoteID)
	if err != nil {
		return SharePayload{}, err
	}

	text := quote.ShareText() + "\n— " + quote.AuthorName()
	pageURL := s.permalink(quote.ID)

	return SharePayload{
		Title:       s.links.Title,
		Text:        text,
		URL:         pageURL,
		TwitterURL:  buildShareURL(s.links.TwitterIntentURL, url.Values{"text": {text}, "url": {pageURL}}),
		LinkedInURL: buildShareURL(s.links.LinkedInShareURL, url.Values{"url": {pageURL}}),
	}, nil
}

// permalink returns the canonical page URL for one quote.
func (s *ShareService) permalink(quoteID string) string {
	u, err := url.Parse(s.links.SiteURL)
	if err != nil {
		return s.links.SiteURL
	}

	q := u.Query()
	q.Set("quote", quoteID)
	u.RawQuery = q.Encode()

	return u.String()
}

// buildShareURL appends query parameters to a configured share endpoint.
// A malformed endpoint yields an empty link; clients fall back to the
// native payload.
func buildShareURL(endpoint string, params url.Values) string {
	if endpoint == "" {
		return ""
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Set(key, v)
		}
	}

	u.RawQuery = q.Encode()

	return u.String()
}
