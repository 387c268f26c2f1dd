// Package service composes the query operations behind the HTTP surface and
// adds a short-lived cache for autocomplete traffic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nandini/ppi-explorer/internal/domain"
	"github.com/nandini/ppi-explorer/internal/metrics"
	"github.com/nandini/ppi-explorer/internal/repository"
)

// Queries is the contract the explorer needs from the query layer.
type Queries interface {
	SearchCandidates(ctx context.Context, text string, limit int) ([]domain.Candidate, error)
	DisplayName(ctx context.Context, id string) (string, error)
	PartnerCategories(ctx context.Context, id string, filter repository.Filter) ([]string, error)
	FetchInteractions(ctx context.Context, id string, filter repository.Filter, categories []string, limit int) ([]domain.Interaction, error)
}

const (
	searchCacheTTL     = 5 * time.Minute
	searchCacheCleanup = 10 * time.Minute
)

// Explorer answers presentation-layer requests. Search results are cached
// briefly because autocomplete re-issues the same query on every keystroke;
// the underlying tables never change within a process lifetime, so a stale
// read is impossible.
type Explorer struct {
	queries Queries
	cache   *gocache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewExplorer constructs an Explorer. The metrics argument may be nil.
func NewExplorer(queries Queries, m *metrics.Metrics, logger *slog.Logger) *Explorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Explorer{
		queries: queries,
		cache:   gocache.New(searchCacheTTL, searchCacheCleanup),
		metrics: m,
		logger:  logger.With("component", "explorer"),
	}
}

// Search returns candidate proteins for free text, serving repeats from the
// in-process cache.
func (e *Explorer) Search(ctx context.Context, text string, limit int) ([]domain.Candidate, error) {
	key := fmt.Sprintf("%d|%s", limit, text)
	if cached, ok := e.cache.Get(key); ok {
		if e.metrics != nil {
			e.metrics.SearchCacheHits.Inc()
		}
		return cached.([]domain.Candidate), nil
	}
	if e.metrics != nil {
		e.metrics.SearchCacheMisses.Inc()
	}

	candidates, err := e.observe("search", func() ([]domain.Candidate, error) {
		return e.queries.SearchCandidates(ctx, text, limit)
	})
	if err != nil {
		return nil, err
	}
	e.cache.SetDefault(key, candidates)
	return candidates, nil
}

// DisplayName resolves the display name for an identifier.
func (e *Explorer) DisplayName(ctx context.Context, id string) (string, error) {
	e.count("display_name")
	name, err := e.queries.DisplayName(ctx, id)
	if err != nil {
		e.countError("display_name")
		return "", err
	}
	return name, nil
}

// PartnerCategories lists the distinct partner location categories for a
// protein under the filter.
func (e *Explorer) PartnerCategories(ctx context.Context, id string, filter repository.Filter) ([]string, error) {
	e.count("partner_categories")
	categories, err := e.queries.PartnerCategories(ctx, id, filter)
	if err != nil {
		e.countError("partner_categories")
		return nil, err
	}
	return categories, nil
}

// FetchInteractions lists a protein's interaction partners under the filter.
func (e *Explorer) FetchInteractions(ctx context.Context, id string, filter repository.Filter, categories []string, limit int) ([]domain.Interaction, error) {
	e.count("fetch_interactions")
	interactions, err := e.queries.FetchInteractions(ctx, id, filter, categories, limit)
	if err != nil {
		e.countError("fetch_interactions")
		return nil, err
	}
	return interactions, nil
}

func (e *Explorer) observe(operation string, fn func() ([]domain.Candidate, error)) ([]domain.Candidate, error) {
	e.count(operation)
	result, err := fn()
	if err != nil {
		e.countError(operation)
	}
	return result, err
}

func (e *Explorer) count(operation string) {
	if e.metrics != nil {
		e.metrics.QueriesTotal.WithLabelValues(operation).Inc()
	}
}

func (e *Explorer) countError(operation string) {
	if e.metrics != nil {
		e.metrics.QueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}
