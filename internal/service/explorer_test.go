package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/nandini/ppi-explorer/internal/domain"
	"github.com/nandini/ppi-explorer/internal/metrics"
	"github.com/nandini/ppi-explorer/internal/repository"
)

type stubQueries struct {
	searchCalls int
	candidates  []domain.Candidate
}

func (s *stubQueries) SearchCandidates(_ context.Context, _ string, _ int) ([]domain.Candidate, error) {
	s.searchCalls++
	return s.candidates, nil
}

func (s *stubQueries) DisplayName(_ context.Context, id string) (string, error) {
	return id, nil
}

func (s *stubQueries) PartnerCategories(_ context.Context, _ string, _ repository.Filter) ([]string, error) {
	return []string{"Nucleus"}, nil
}

func (s *stubQueries) FetchInteractions(_ context.Context, _ string, _ repository.Filter, _ []string, _ int) ([]domain.Interaction, error) {
	return nil, nil
}

func TestSearchUsesCache(t *testing.T) {
	stub := &stubQueries{
		candidates: []domain.Candidate{
			{ID: "Q5T5U3", DisplayName: "Mitochondrial carrier homolog 2", Category: "Mitochondrion"},
		},
	}
	explorer := NewExplorer(stub, nil, nil)
	ctx := context.Background()

	first, err := explorer.Search(ctx, "Q5T5U3", 50)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	second, err := explorer.Search(ctx, "Q5T5U3", 50)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if stub.searchCalls != 1 {
		t.Errorf("expected 1 repository call, got %d", stub.searchCalls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result diverged:\n%v\n%v", first, second)
	}
}

func TestSearchCacheKeyIncludesLimit(t *testing.T) {
	stub := &stubQueries{}
	explorer := NewExplorer(stub, nil, nil)
	ctx := context.Background()

	if _, err := explorer.Search(ctx, "kinase", 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := explorer.Search(ctx, "kinase", 20); err != nil {
		t.Fatalf("search: %v", err)
	}

	if stub.searchCalls != 2 {
		t.Errorf("different limits must not share a cache entry, got %d calls", stub.searchCalls)
	}
}

func TestSearchCacheMetrics(t *testing.T) {
	stub := &stubQueries{}
	m := metrics.New()
	explorer := NewExplorer(stub, m, nil)
	ctx := context.Background()

	if _, err := explorer.Search(ctx, "kinase", 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := explorer.Search(ctx, "kinase", 10); err != nil {
		t.Fatalf("search: %v", err)
	}
	// One miss on the first call, one hit on the second; no panic means the
	// counters are wired. Exact values are asserted through the stub below.
	if stub.searchCalls != 1 {
		t.Errorf("expected 1 repository call, got %d", stub.searchCalls)
	}
}

func TestPassthroughOperations(t *testing.T) {
	stub := &stubQueries{}
	explorer := NewExplorer(stub, nil, nil)
	ctx := context.Background()

	name, err := explorer.DisplayName(ctx, "P12345")
	if err != nil || name != "P12345" {
		t.Errorf("DisplayName = (%q, %v)", name, err)
	}

	categories, err := explorer.PartnerCategories(ctx, "P12345", repository.Filter{})
	if err != nil || !reflect.DeepEqual(categories, []string{"Nucleus"}) {
		t.Errorf("PartnerCategories = (%v, %v)", categories, err)
	}
}
