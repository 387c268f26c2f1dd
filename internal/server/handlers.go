package server

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nandini/ppi-explorer/internal/domain"
	"github.com/nandini/ppi-explorer/internal/locations"
	"github.com/nandini/ppi-explorer/internal/repository"
)

// Interaction fetches accept any limit in this range; out-of-range values are
// clamped rather than rejected.
const (
	minInteractionLimit     = 100
	maxInteractionLimit     = 100000
	defaultInteractionLimit = repository.DefaultInteractionLimit
)

// ExplorerService is the contract the handlers need from the service layer.
type ExplorerService interface {
	Search(ctx context.Context, text string, limit int) ([]domain.Candidate, error)
	DisplayName(ctx context.Context, id string) (string, error)
	PartnerCategories(ctx context.Context, id string, filter repository.Filter) ([]string, error)
	FetchInteractions(ctx context.Context, id string, filter repository.Filter, categories []string, limit int) ([]domain.Interaction, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	explorer ExplorerService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, explorer ExplorerService) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		explorer: explorer,
	}
}

func (h *APIHandlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	text := query.Get("q")
	limit := parseInt(query.Get("limit"), repository.DefaultSearchLimit)
	if limit <= 0 {
		limit = repository.DefaultSearchLimit
	}

	candidates, err := h.explorer.Search(r.Context(), text, limit)
	if err != nil {
		h.logger.Error("search failed", "error", err, "q", text)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	items := make([]candidateResponse, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, candidateResponse{
			ID:          c.ID,
			DisplayName: c.DisplayName,
			Category:    c.Category,
		})
	}
	respondJSON(w, http.StatusOK, searchResponse{Items: items})
}

// handleProteins dispatches /proteins/{id}[/...] subresources.
func (h *APIHandlers) handleProteins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/proteins/"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "protein ID is required")
		return
	}

	segments := strings.Split(rest, "/")
	id, err := url.PathUnescape(segments[0])
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, "invalid protein ID")
		return
	}

	switch {
	case len(segments) == 1:
		h.protein(w, r, id)
	case len(segments) == 2 && segments[1] == "partner-categories":
		h.partnerCategories(w, r, id)
	case len(segments) == 2 && segments[1] == "interactions":
		h.interactions(w, r, id)
	case len(segments) == 3 && segments[1] == "interactions" && segments[2] == "export":
		h.exportInteractions(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *APIHandlers) protein(w http.ResponseWriter, r *http.Request, id string) {
	name, err := h.explorer.DisplayName(r.Context(), id)
	if err != nil {
		h.logger.Error("display name lookup failed", "error", err, "proteinId", id)
		writeError(w, http.StatusInternalServerError, "display name lookup failed")
		return
	}
	respondJSON(w, http.StatusOK, proteinResponse{ID: id, DisplayName: name})
}

func (h *APIHandlers) partnerCategories(w http.ResponseWriter, r *http.Request, id string) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.explorer.PartnerCategories(r.Context(), id, filter)
	if err != nil {
		h.logger.Error("partner categories failed", "error", err, "proteinId", id)
		writeError(w, http.StatusInternalServerError, "partner category lookup failed")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, partnerCategoriesResponse{ID: id, Categories: categories})
}

func (h *APIHandlers) interactions(w http.ResponseWriter, r *http.Request, id string) {
	filter, categories, limit, err := parseInteractionParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	interactions, err := h.explorer.FetchInteractions(r.Context(), id, filter, categories, limit)
	if err != nil {
		h.logger.Error("fetch interactions failed", "error", err, "proteinId", id)
		writeError(w, http.StatusInternalServerError, "interaction fetch failed")
		return
	}

	name, err := h.explorer.DisplayName(r.Context(), id)
	if err != nil {
		h.logger.Error("display name lookup failed", "error", err, "proteinId", id)
		writeError(w, http.StatusInternalServerError, "interaction fetch failed")
		return
	}

	items := make([]interactionResponse, 0, len(interactions))
	for _, it := range interactions {
		items = append(items, interactionResponse{
			PartnerID:          it.PartnerID,
			PartnerDisplayName: it.PartnerDisplayName,
			PartnerCategory:    it.PartnerCategory,
			Score:              it.Score,
			Strength:           string(it.Strength),
		})
	}
	respondJSON(w, http.StatusOK, interactionsResponse{
		ID:          id,
		DisplayName: name,
		Items:       items,
		Count:       len(items),
	})
}

func (h *APIHandlers) exportInteractions(w http.ResponseWriter, r *http.Request, id string) {
	filter, categories, limit, err := parseInteractionParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	interactions, err := h.explorer.FetchInteractions(r.Context(), id, filter, categories, limit)
	if err != nil {
		h.logger.Error("interaction export failed", "error", err, "proteinId", id)
		writeError(w, http.StatusInternalServerError, "interaction export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"_interactions.csv"))

	writer := csv.NewWriter(w)
	record := []string{"partner_id", "partner_protein_name", "partner_location_category", "score", "strength"}
	if err := writer.Write(record); err != nil {
		h.logger.Error("csv write failed", "error", err, "proteinId", id)
		return
	}
	for _, it := range interactions {
		record[0] = it.PartnerID
		record[1] = it.PartnerDisplayName
		record[2] = it.PartnerCategory
		record[3] = strconv.FormatFloat(it.Score, 'g', -1, 64)
		record[4] = string(it.Strength)
		if err := writer.Write(record); err != nil {
			h.logger.Error("csv write failed", "error", err, "proteinId", id)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("csv flush failed", "error", err, "proteinId", id)
	}
}

// --- Parameter parsing ---

func parseFilter(query url.Values) (repository.Filter, error) {
	filter := repository.Filter{}

	if v := query.Get("minScore"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return repository.Filter{}, fmt.Errorf("invalid minScore %q", v)
		}
		filter.MinScore = clampScore(score)
	}

	strength, err := domain.ParseStrength(query.Get("strength"))
	if err != nil {
		return repository.Filter{}, err
	}
	filter.Strength = strength

	return filter, nil
}

func parseInteractionParams(query url.Values) (repository.Filter, []string, int, error) {
	filter, err := parseFilter(query)
	if err != nil {
		return repository.Filter{}, nil, 0, err
	}

	categories, err := parseCategories(query.Get("categories"))
	if err != nil {
		return repository.Filter{}, nil, 0, err
	}

	limit := parseInt(query.Get("limit"), defaultInteractionLimit)
	if limit < minInteractionLimit {
		limit = minInteractionLimit
	}
	if limit > maxInteractionLimit {
		limit = maxInteractionLimit
	}

	return filter, categories, limit, nil
}

func parseCategories(csvList string) ([]string, error) {
	if strings.TrimSpace(csvList) == "" {
		return nil, nil
	}
	var categories []string
	for _, part := range strings.Split(csvList, ",") {
		category := strings.TrimSpace(part)
		if category == "" {
			continue
		}
		if !locations.IsCategory(category) {
			return nil, fmt.Errorf("unknown location category %q", category)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

// --- Response payloads ---

type searchResponse struct {
	Items []candidateResponse `json:"items"`
}

type candidateResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
}

type proteinResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type partnerCategoriesResponse struct {
	ID         string   `json:"id"`
	Categories []string `json:"categories"`
}

type interactionsResponse struct {
	ID          string                `json:"id"`
	DisplayName string                `json:"displayName"`
	Items       []interactionResponse `json:"items"`
	Count       int                   `json:"count"`
}

type interactionResponse struct {
	PartnerID          string  `json:"partnerId"`
	PartnerDisplayName string  `json:"partnerDisplayName"`
	PartnerCategory    string  `json:"partnerCategory"`
	Score              float64 `json:"score"`
	Strength           string  `json:"strength"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
