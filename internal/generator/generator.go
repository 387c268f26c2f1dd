// Package generator synthesizes protein interaction datasets for local
// development and tests.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/nandini/ppi-explorer/internal/domain"
)

// Dataset contains the generated identifier records and interaction edges.
type Dataset struct {
	Proteins []domain.IdentifierRecord
	Edges    []domain.Edge
}

// Generator produces synthetic data matching the edge/idmap table schemas.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumProteins <= 0 {
		cfg.NumProteins = DefaultConfig().NumProteins
	}
	if cfg.NumEdges <= 0 {
		cfg.NumEdges = DefaultConfig().NumEdges
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

var nameQualifiers = []string{
	"Mitochondrial", "Nuclear", "Cytoplasmic", "Membrane-bound", "ATP-dependent",
	"Calcium-binding", "Zinc finger", "Serine/threonine", "Putative", "Probable",
}

var nameStems = []string{
	"protein kinase", "phosphatase", "receptor", "transporter", "ligase",
	"helicase", "synthase", "chaperone", "protease", "reductase",
	"transcription factor", "ubiquitin hydrolase",
}

// locationPool mimics free-text subcellular annotations, including
// semicolon-delimited multi-valued entries.
var locationPool = []string{
	"Cytoplasm",
	"Cytoplasm; Nucleus",
	"Nucleus",
	"Nucleolus",
	"Nucleus, nucleoplasm",
	"Mitochondrion",
	"Mitochondrion inner membrane",
	"Endoplasmic reticulum membrane; Single-pass type I membrane protein",
	"Golgi apparatus membrane",
	"Cell membrane; Multi-pass membrane protein",
	"Cell surface",
	"Lysosome lumen",
	"Early endosome",
	"Peroxisome matrix",
	"Cytoplasm, cytoskeleton",
	"Cytoplasm, cytoskeleton, microtubule organizing center, centrosome",
	"Secreted; Extracellular space",
	"Chromosome, centromere",
	"Membrane",
	"Cell junction",
	"Apical cell membrane",
}

// Generate synthesises proteins and edges. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	proteins := make([]domain.IdentifierRecord, g.cfg.NumProteins)
	seen := make(map[string]struct{}, g.cfg.NumProteins)

	for i := 0; i < g.cfg.NumProteins; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		id := g.randomAccession()
		for {
			if _, dup := seen[id]; !dup {
				break
			}
			id = g.randomAccession()
		}
		seen[id] = struct{}{}

		rec := domain.IdentifierRecord{ID: id}
		if g.rand.Float64() >= g.cfg.UnnamedChance {
			rec.ProteinName = g.randomProteinName(i)
		}
		if g.rand.Float64() >= g.cfg.UnannotatedChance {
			rec.Location = locationPool[g.rand.Intn(len(locationPool))]
		}
		proteins[i] = rec
	}

	edges := make([]domain.Edge, g.cfg.NumEdges)
	for i := 0; i < g.cfg.NumEdges; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		srcIdx := g.rand.Intn(len(proteins))
		dstIdx := g.rand.Intn(len(proteins))
		if srcIdx == dstIdx && g.rand.Float64() >= g.cfg.SelfEdgeChance {
			dstIdx = (dstIdx + 1) % len(proteins)
		}

		score := g.rand.Float64()
		edges[i] = domain.Edge{
			Src:      proteins[srcIdx].ID,
			Dst:      proteins[dstIdx].ID,
			Score:    score,
			Strength: strengthForScore(score),
		}
	}

	return Dataset{Proteins: proteins, Edges: edges}, nil
}

// randomAccession produces a UniProt-style six character accession,
// e.g. Q5T5U3.
func (g *Generator) randomAccession() string {
	const (
		leading  = "OPQ"
		alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		digits   = "0123456789"
	)
	buf := []byte{
		leading[g.rand.Intn(len(leading))],
		digits[g.rand.Intn(len(digits))],
		alphanum[g.rand.Intn(len(alphanum))],
		alphanum[g.rand.Intn(len(alphanum))],
		alphanum[g.rand.Intn(len(alphanum))],
		digits[g.rand.Intn(len(digits))],
	}
	return string(buf)
}

func (g *Generator) randomProteinName(ordinal int) string {
	qualifier := nameQualifiers[g.rand.Intn(len(nameQualifiers))]
	stem := nameStems[g.rand.Intn(len(nameStems))]
	return fmt.Sprintf("%s %s %d", qualifier, stem, ordinal+1)
}

func strengthForScore(score float64) domain.Strength {
	switch {
	case score >= 0.7:
		return domain.StrengthStrong
	case score >= 0.4:
		return domain.StrengthModerate
	default:
		return domain.StrengthWeak
	}
}
