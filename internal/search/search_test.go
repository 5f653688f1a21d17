package search

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	jobs []Result
	err  error
}

func (s stubProvider) Search(context.Context, Query) ([]Result, error) { return s.jobs, s.err }
func (s stubProvider) Name() string                                    { return "stub" }

func TestSearch_NilProviderIsUnavailable(t *testing.T) {
	svc := &Service{}
	out := svc.Search(context.Background(), Query{Term: "go"})
	if out.Available {
		t.Fatalf("expected unavailable outcome without a provider")
	}
}

func TestSearch_ProviderErrorIsUnavailable(t *testing.T) {
	svc := &Service{Provider: stubProvider{err: errors.New("boom")}}
	out := svc.Search(context.Background(), Query{Term: "go"})
	if out.Available {
		t.Fatalf("provider failure must look like unavailability, got %+v", out)
	}
}

func TestSearch_NoMatchesIsAvailableAndEmpty(t *testing.T) {
	svc := &Service{Provider: stubProvider{jobs: nil}}
	out := svc.Search(context.Background(), Query{Term: "cobol"})
	if !out.Available {
		t.Fatalf("expected available outcome")
	}
	if out.Jobs == nil || len(out.Jobs) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out.Jobs)
	}
}

func TestSearch_PopulatedOutcome(t *testing.T) {
	svc := &Service{Provider: stubProvider{jobs: []Result{{Title: "Gopher", URL: "https://x"}}}}
	out := svc.Search(context.Background(), Query{Term: "go"})
	if !out.Available || len(out.Jobs) != 1 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}
