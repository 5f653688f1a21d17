package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// LinkedIn rarely serves full markup to unauthenticated fetches, so this
// strategy leans on what the URL itself carries (the job id) and treats the
// page content as a bonus.

const (
	linkedinAccessDenied = "Unable to access LinkedIn job posting. LinkedIn has anti-scraping measures."
	linkedinNoDesc       = "Description not available - please copy manually from LinkedIn"
)

var linkedinTitle = []Locator{
	byClass{tag: "h1", class: "top-card-layout__title"},
	byClass{class: "job-title"},
	byTag{tag: "h1"},
}

var linkedinCompany = []Locator{
	byClass{class: "topcard__org-name-link"},
	byClass{class: "job-details-jobs-unified-top-card__company-name"},
	byClass{class: "company-name"},
}

var linkedinLocation = []Locator{
	byClass{class: "topcard__flavor"},
	byClass{class: "job-details-jobs-unified-top-card__bullet"},
	byClass{class: "location"},
}

var linkedinDescription = []Locator{
	byClass{class: "description__text"},
	byClass{class: "job-description"},
	byClass{class: "jobs-description__content"},
}

func (s *Scraper) scrapeLinkedIn(ctx context.Context, rawurl string) (Posting, error) {
	// The job id comes from the URL alone, so it survives a blocked fetch.
	jobID := parseLinkedInJobID(rawurl)

	body, status, err := s.client.Get(ctx, rawurl)
	if err != nil {
		return Posting{}, fmt.Errorf("linkedin fetch: %w", err)
	}
	if status < 200 || status > 299 {
		return Posting{
			Description: linkedinAccessDenied,
			JobID:       jobID,
			Source:      sourceLinkedIn,
		}, nil
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Posting{}, fmt.Errorf("linkedin parse: %w", err)
	}

	p := Posting{
		Title:       firstMatch(root, linkedinTitle),
		Company:     firstMatch(root, linkedinCompany),
		Location:    firstMatch(root, linkedinLocation),
		Description: firstMatch(root, linkedinDescription),
		JobID:       jobID,
		Source:      sourceLinkedIn,
	}
	if p.Description == "" {
		// The description pane is client-side rendered; a plain fetch
		// usually cannot see it.
		p.Description = linkedinNoDesc
	}
	return p, nil
}

// parseLinkedInJobID pulls the job id out of a LinkedIn URL, either from
// the currentJobId query parameter or from the path segment after /view/.
// Returns "" when neither form is present.
func parseLinkedInJobID(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	if id := u.Query().Get("currentJobId"); id != "" {
		return id
	}
	if _, after, ok := strings.Cut(u.Path, "/view/"); ok {
		if i := strings.IndexByte(after, '/'); i >= 0 {
			after = after[:i]
		}
		return after
	}
	return ""
}
