package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nandini/ppi-explorer/internal/dataset"
)

// Generated files must load cleanly through the dataset loader.
func TestWriteDatasetRoundTrip(t *testing.T) {
	gen := New(Config{NumProteins: 30, NumEdges: 100, Seed: 3})
	generated, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dir := t.TempDir()
	if err := WriteDataset(generated, dir); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	store, err := dataset.Open(context.Background(), dataset.Options{
		EdgesSource: filepath.Join(dir, "edges.csv"),
		IdmapSource: filepath.Join(dir, "idmap.csv"),
		CacheDir:    filepath.Join(dir, "cache"),
	})
	if err != nil {
		t.Fatalf("open generated dataset: %v", err)
	}
	defer store.Close()

	edges, proteins := store.Counts()
	if edges != len(generated.Edges) {
		t.Errorf("expected %d edges, loaded %d", len(generated.Edges), edges)
	}
	if proteins != len(generated.Proteins) {
		t.Errorf("expected %d proteins, loaded %d", len(generated.Proteins), proteins)
	}
}
