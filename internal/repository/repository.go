// Package repository implements the read-only query operations over the
// loaded dataset: candidate search, display-name lookup, partner category
// enumeration and interaction fetch.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nandini/ppi-explorer/internal/domain"
)

// Filter restricts neighbor traversals by confidence. A nil Strength means
// no strength filter; a non-nil value requires an exact match.
type Filter struct {
	MinScore float64
	Strength *domain.Strength
}

const (
	// DefaultSearchLimit bounds candidate search results.
	DefaultSearchLimit = 50
	// DefaultInteractionLimit bounds interaction fetches.
	DefaultInteractionLimit = 5000

	// Identifier-style queries: short, no whitespace. Longer or spaced text
	// is searched against protein names only.
	maxIdentifierLength = 12
)

// Repository executes the analytical queries against the dataset handle.
type Repository struct {
	db *sql.DB
}

// New instantiates a Repository over the supplied dataset handle.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// displayNameExpr is the fallback chain applied everywhere a protein name is
// shown: trimmed protein_name when non-empty, else the raw identifier.
const displayNameExpr = `COALESCE(NULLIF(TRIM(m.protein_name), ''), m.id)`

const searchIdentifierQuery = `
WITH hits AS (
	SELECT m.id AS id, ` + displayNameExpr + ` AS display_name,
	       loc_category(m.location) AS category, 1 AS rank
	FROM idmap m
	WHERE m.id = ?
	UNION ALL
	SELECT m.id, ` + displayNameExpr + `, loc_category(m.location), 2
	FROM idmap m
	WHERE m.id LIKE ? || '%'
	UNION ALL
	SELECT m.id, ` + displayNameExpr + `, loc_category(m.location), 3
	FROM idmap m
	WHERE m.protein_name LIKE '%' || ? || '%'
)
SELECT id, display_name, category
FROM hits
GROUP BY id, display_name, category
ORDER BY MIN(rank), display_name
LIMIT ?`

const searchNameQuery = `
SELECT m.id AS id, ` + displayNameExpr + ` AS display_name,
       loc_category(m.location) AS category
FROM idmap m
WHERE m.protein_name LIKE '%' || ? || '%'
ORDER BY display_name
LIMIT ?`

// SearchCandidates finds proteins matching free text. Input that looks like
// an identifier (short, no whitespace) is matched against identifiers first:
// exact hits rank before case-insensitive prefix hits, which rank before
// name-substring hits. All other input is matched against protein names only.
// Empty text yields an empty result.
func (r *Repository) SearchCandidates(ctx context.Context, text string, limit int) ([]domain.Candidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if looksLikeIdentifier(text) {
		rows, err = r.db.QueryContext(ctx, searchIdentifierQuery, text, text, text, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, searchNameQuery, text, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search candidates %q: %w", text, err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.Category); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search candidates %q: %w", text, err)
	}
	return candidates, nil
}

func looksLikeIdentifier(text string) bool {
	if utf8.RuneCountInString(text) > maxIdentifierLength {
		return false
	}
	return !strings.ContainsFunc(text, unicode.IsSpace)
}

// DisplayName resolves the name shown for an identifier. An identifier absent
// from the metadata table resolves to itself; this is never an error.
func (r *Repository) DisplayName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.New("protein id is required")
	}

	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT `+displayNameExpr+` FROM idmap m WHERE m.id = ?`, id,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return id, nil
	}
	if err != nil {
		return "", fmt.Errorf("display name for %s: %w", id, err)
	}
	return name, nil
}

// neighborsCTE selects the other endpoint of every edge touching the queried
// protein, regardless of which column names it.
const neighborsCTE = `
WITH nbrs AS (
	SELECT CASE WHEN e.src = ? THEN e.dst ELSE e.src END AS partner,
	       e.score, e.strength
	FROM edges e
	WHERE e.src = ? OR e.dst = ?
)`

const partnerCategoriesQuery = neighborsCTE + `
SELECT DISTINCT loc_category(m.location) AS category
FROM nbrs n
LEFT JOIN idmap m ON m.id = n.partner
WHERE n.score >= ? AND (? IS NULL OR n.strength = ?)
ORDER BY category`

// PartnerCategories returns the distinct location categories of the protein's
// interaction partners surviving the filter, sorted ascending. Partners
// absent from the metadata table count as Unknown.
func (r *Repository) PartnerCategories(ctx context.Context, id string, filter Filter) ([]string, error) {
	if id == "" {
		return nil, errors.New("protein id is required")
	}

	strength := strengthArg(filter.Strength)
	rows, err := r.db.QueryContext(ctx, partnerCategoriesQuery,
		id, id, id, filter.MinScore, strength, strength)
	if err != nil {
		return nil, fmt.Errorf("partner categories for %s: %w", id, err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("partner categories for %s: %w", id, err)
	}
	return categories, nil
}

const fetchInteractionsQuery = neighborsCTE + `
SELECT n.partner,
       COALESCE(NULLIF(TRIM(m.protein_name), ''), n.partner) AS partner_name,
       loc_category(m.location) AS category,
       n.score, n.strength
FROM nbrs n
LEFT JOIN idmap m ON m.id = n.partner
WHERE n.score >= ? AND (? IS NULL OR n.strength = ?)%s
ORDER BY n.score DESC
LIMIT ?`

// FetchInteractions returns the protein's interaction partners surviving the
// filter, ordered by score descending. A non-empty categories set keeps only
// partners whose computed category is a member.
func (r *Repository) FetchInteractions(ctx context.Context, id string, filter Filter, categories []string, limit int) ([]domain.Interaction, error) {
	if id == "" {
		return nil, errors.New("protein id is required")
	}
	if limit <= 0 {
		limit = DefaultInteractionLimit
	}

	strength := strengthArg(filter.Strength)
	args := []any{id, id, id, filter.MinScore, strength, strength}

	categoryClause := ""
	if len(categories) > 0 {
		placeholders := strings.Repeat("?,", len(categories))
		categoryClause = fmt.Sprintf(" AND loc_category(m.location) IN (%s)", placeholders[:len(placeholders)-1])
		for _, c := range categories {
			args = append(args, c)
		}
	}
	args = append(args, limit)

	query := fmt.Sprintf(fetchInteractionsQuery, categoryClause)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch interactions for %s: %w", id, err)
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var (
			item     domain.Interaction
			strength string
		)
		if err := rows.Scan(&item.PartnerID, &item.PartnerDisplayName, &item.PartnerCategory, &item.Score, &strength); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		item.Strength = domain.Strength(strength)
		interactions = append(interactions, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch interactions for %s: %w", id, err)
	}
	return interactions, nil
}

func strengthArg(s *domain.Strength) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
