// Package search wraps an external job-aggregation capability behind a
// three-state outcome: unavailable, available-but-empty, or populated.
// Callers branch on availability instead of guessing from a nil slice.
package search

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Result is one normalized row from a bulk search. It mirrors the posting
// shape plus listing metadata.
type Result struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	DatePosted  string `json:"date_posted"`
	Salary      string `json:"salary"`
	Source      string `json:"source"`
}

// Provider is the external aggregation capability.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Result, error)
	Name() string
}

// Query scopes one bulk search. Site selects the upstream board.
type Query struct {
	Site     string
	Term     string
	Location string
	Limit    int
}

// Outcome distinguishes "the service could not run" from "the service ran
// and matched nothing". Jobs is only meaningful when Available is true.
type Outcome struct {
	Available bool
	Jobs      []Result
}

// Service applies the never-propagate-failure contract around a Provider.
type Service struct {
	Provider Provider
}

// Search runs a bulk query. A nil or unreachable provider yields an
// unavailable outcome; a provider that runs but matches nothing yields an
// available outcome with an empty (non-nil) list.
func (s *Service) Search(ctx context.Context, q Query) Outcome {
	if s == nil || s.Provider == nil {
		log.Warn().Msg("bulk search provider not configured")
		return Outcome{}
	}
	jobs, err := s.Provider.Search(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("provider", s.Provider.Name()).Str("term", q.Term).Msg("bulk search failed")
		return Outcome{}
	}
	if jobs == nil {
		jobs = []Result{}
	}
	log.Info().Int("count", len(jobs)).Str("site", q.Site).Str("term", q.Term).Msg("bulk search done")
	return Outcome{Available: true, Jobs: jobs}
}
