package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jobsift/jobsift/internal/fetch"
)

const (
	sourceLinkedIn = "linkedin"
	sourceIndeed   = "indeed"
	sourceGeneric  = "generic"
)

// Scraper extracts structured job details from posting URLs. The strategy
// is selected by host: recognized boards get tailored selector chains, and
// everything else falls through to a generic heuristic.
type Scraper struct {
	client *fetch.Client
	routes []route
}

type route struct {
	hostContains string
	source       string
}

// NewScraper builds a scraper around the given fetch client.
func NewScraper(client *fetch.Client) *Scraper {
	return &Scraper{
		client: client,
		routes: []route{
			{hostContains: "linkedin.com", source: sourceLinkedIn},
			{hostContains: "indeed.com", source: sourceIndeed},
		},
	}
}

// Extract fetches the posting URL and returns a best-effort Posting. This
// is the pipeline's outermost failure boundary: any fetch, parse, or
// strategy error is converted into a Posting with empty content fields and
// Err set. It never returns an error or panics.
func (s *Scraper) Extract(ctx context.Context, rawurl string) Posting {
	source := s.routeFor(rawurl)

	var p Posting
	var err error
	switch source {
	case sourceLinkedIn:
		p, err = s.scrapeLinkedIn(ctx, rawurl)
	case sourceIndeed:
		p, err = s.scrapeIndeed(ctx, rawurl)
	default:
		p, err = s.scrapeGeneric(ctx, rawurl)
	}
	if err != nil {
		log.Error().Err(err).Str("url", rawurl).Str("source", source).Msg("posting extraction failed")
		return Posting{Source: source, Err: err.Error()}
	}
	return p
}

// routeFor picks the strategy source for a URL by case-insensitive host
// matching. Unparseable URLs route to generic, whose fetch reports the
// actual problem.
func (s *Scraper) routeFor(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return sourceGeneric
	}
	host := strings.ToLower(u.Hostname())
	for _, r := range s.routes {
		if strings.Contains(host, r.hostContains) {
			return r.source
		}
	}
	return sourceGeneric
}
