package generator

import (
	"context"
	"reflect"
	"testing"

	"github.com/nandini/ppi-explorer/internal/locations"
)

func TestGenerateCountsAndBounds(t *testing.T) {
	cfg := Config{NumProteins: 50, NumEdges: 200, UnannotatedChance: 0.2, UnnamedChance: 0.1, Seed: 7}
	dataset, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(dataset.Proteins) != 50 {
		t.Fatalf("expected 50 proteins, got %d", len(dataset.Proteins))
	}
	if len(dataset.Edges) != 200 {
		t.Fatalf("expected 200 edges, got %d", len(dataset.Edges))
	}

	ids := make(map[string]struct{}, len(dataset.Proteins))
	for _, p := range dataset.Proteins {
		if p.ID == "" {
			t.Fatal("empty protein id")
		}
		if _, dup := ids[p.ID]; dup {
			t.Fatalf("duplicate protein id %s", p.ID)
		}
		ids[p.ID] = struct{}{}
		if !locations.IsCategory(locations.Categorize(p.Location)) {
			t.Fatalf("location %q does not normalize", p.Location)
		}
	}

	for _, e := range dataset.Edges {
		if e.Score < 0 || e.Score > 1 {
			t.Fatalf("score %f out of range", e.Score)
		}
		if _, ok := ids[e.Src]; !ok {
			t.Fatalf("edge src %s not a generated protein", e.Src)
		}
		if _, ok := ids[e.Dst]; !ok {
			t.Fatalf("edge dst %s not a generated protein", e.Dst)
		}
		want := strengthForScore(e.Score)
		if e.Strength != want {
			t.Fatalf("strength %s does not match score %f (want %s)", e.Strength, e.Score, want)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{NumProteins: 20, NumEdges: 50, Seed: 99}

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different datasets")
	}
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Config{NumProteins: 10, NumEdges: 10, Seed: 1}).Generate(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}
