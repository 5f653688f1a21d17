package scrape

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"golang.org/x/net/html"
)

var genericTitle = []Locator{
	byTag{tag: "h1"},
	byClass{class: "job-title"},
	byClass{class: "position-title"},
	byClassContains{substr: "title"},
}

var genericCompany = []Locator{
	byClass{class: "company"},
	byClass{class: "employer"},
	byClassContains{substr: "company"},
	byClassContains{substr: "employer"},
}

var genericLocation = []Locator{
	byClass{class: "location"},
	byClass{class: "job-location"},
	byClassContains{substr: "location"},
}

// The description heuristic stays a single pattern locator rather than an
// ordered chain: on unknown sites there is no second-best guess worth
// trying after the first block-level description/content container.
var genericDescriptionRe = regexp.MustCompile(`description|content|details`)

var genericDescription = []Locator{
	byClassPattern{tags: []string{"div", "section"}, pattern: genericDescriptionRe},
}

// scrapeGeneric is the catch-all for unrecognized domains. It relies on
// class-name conventions shared by most job boards instead of site-specific
// markup.
func (s *Scraper) scrapeGeneric(ctx context.Context, rawurl string) (Posting, error) {
	body, status, err := s.client.Get(ctx, rawurl)
	if err != nil {
		return Posting{}, fmt.Errorf("fetch: %w", err)
	}
	if status < 200 || status > 299 {
		return Posting{}, fmt.Errorf("fetch: unexpected status %d", status)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Posting{}, fmt.Errorf("parse: %w", err)
	}

	return Posting{
		Title:       firstMatch(root, genericTitle),
		Company:     firstMatch(root, genericCompany),
		Location:    firstMatch(root, genericLocation),
		Description: firstMatch(root, genericDescription),
		Source:      sourceGeneric,
	}, nil
}
