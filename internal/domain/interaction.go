package domain

import (
	"fmt"
	"strings"
)

// Strength is the qualitative confidence bucket attached to an interaction edge.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// ParseStrength validates a strength literal. The empty string and "any" mean
// "no filter" and return a nil pointer.
func ParseStrength(value string) (*Strength, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "any":
		return nil, nil
	case "strong":
		s := StrengthStrong
		return &s, nil
	case "moderate":
		s := StrengthModerate
		return &s, nil
	case "weak":
		s := StrengthWeak
		return &s, nil
	default:
		return nil, fmt.Errorf("unknown strength %q", value)
	}
}

// Edge is one undirected interaction between two proteins. Either endpoint may
// be the queried protein; self-edges are accepted as-is.
type Edge struct {
	Src      string
	Dst      string
	Score    float64
	Strength Strength
}

// IdentifierRecord is one row of the identifier/metadata table. ProteinName
// and Location may be empty; Location is free text, possibly
// semicolon-delimited multi-valued.
type IdentifierRecord struct {
	ID          string
	ProteinName string
	Location    string
}

// Candidate is one search result row.
type Candidate struct {
	ID          string
	DisplayName string
	Category    string
}

// Interaction is one partner row returned for a queried protein.
type Interaction struct {
	PartnerID          string
	PartnerDisplayName string
	PartnerCategory    string
	Score              float64
	Strength           Strength
}
