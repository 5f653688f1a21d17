package scrape

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/net/html"
)

var indeedTitle = []Locator{
	byAttr{key: "data-testid", val: "jobsearch-JobInfoHeader-title"},
	byClass{class: "jobsearch-JobInfoHeader-title"},
	byClass{tag: "h1", class: "icl-u-xs-mb--xs"},
}

var indeedCompany = []Locator{
	byAttr{key: "data-testid", val: "inlineHeader-companyName"},
	byClass{class: "icl-u-lg-mr--sm"},
	byClass{class: "companyName"},
}

var indeedLocation = []Locator{
	byAttr{key: "data-testid", val: "job-location"},
	byClass{class: "icl-u-colorForeground--secondary"},
	byClass{class: "locationsContainer"},
}

var indeedDescription = []Locator{
	byID{id: "jobDescriptionText"},
	byClass{class: "jobsearch-jobDescriptionText"},
	byClass{class: "jobDescription"},
}

// Indeed pages are reliably fetchable, so a non-2xx status is treated as a
// hard failure and an unmatched description stays empty.
func (s *Scraper) scrapeIndeed(ctx context.Context, rawurl string) (Posting, error) {
	body, status, err := s.client.Get(ctx, rawurl)
	if err != nil {
		return Posting{}, fmt.Errorf("indeed fetch: %w", err)
	}
	if status < 200 || status > 299 {
		return Posting{}, fmt.Errorf("indeed fetch: unexpected status %d", status)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Posting{}, fmt.Errorf("indeed parse: %w", err)
	}

	return Posting{
		Title:       firstMatch(root, indeedTitle),
		Company:     firstMatch(root, indeedCompany),
		Location:    firstMatch(root, indeedLocation),
		Description: firstMatch(root, indeedDescription),
		Source:      sourceIndeed,
	}, nil
}
