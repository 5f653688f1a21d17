package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Aggregator implements Provider against a JobSpy-compatible aggregation
// API's /search endpoint. Results are restricted to postings from the last
// 72 hours and scoped to the configured country.
type Aggregator struct {
	BaseURL    string
	Country    string // e.g. "USA"; upstream boards scope results by it
	HTTPClient *http.Client
	UserAgent  string
}

const postedWithinHours = 72

func (a *Aggregator) Name() string { return "aggregator" }

func (a *Aggregator) Search(ctx context.Context, q Query) ([]Result, error) {
	if a.BaseURL == "" {
		return nil, fmt.Errorf("missing aggregator base url")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	site := q.Site
	if site == "" {
		site = "indeed"
	}

	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/search") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search"
	}
	v := u.Query()
	v.Set("site_name", site)
	v.Set("search_term", q.Term)
	v.Set("location", q.Location)
	v.Set("results_wanted", strconv.Itoa(limit))
	v.Set("hours_old", strconv.Itoa(postedWithinHours))
	if a.Country != "" {
		v.Set("country_indeed", a.Country)
	}
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}
	hc := a.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("aggregator status: %d", resp.StatusCode)
	}

	var ar aggregatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(ar.Jobs))
	for _, j := range ar.Jobs {
		if j.Title == "" && j.URL == "" {
			continue
		}
		out = append(out, Result{
			Title:       strings.TrimSpace(j.Title),
			Company:     strings.TrimSpace(j.Company),
			Location:    strings.TrimSpace(j.Location),
			Description: strings.TrimSpace(j.Description),
			URL:         strings.TrimSpace(j.URL),
			DatePosted:  j.DatePosted,
			Salary:      j.MinAmount,
			Source:      site,
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type aggregatorResponse struct {
	Jobs []struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		Description string `json:"description"`
		URL         string `json:"job_url"`
		DatePosted  string `json:"date_posted"`
		MinAmount   string `json:"min_amount"`
	} `json:"jobs"`
}
