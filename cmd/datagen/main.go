package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nandini/ppi-explorer/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		proteins          = flag.Int("proteins", cfg.NumProteins, "number of proteins to generate")
		edges             = flag.Int("edges", cfg.NumEdges, "number of interaction edges to generate")
		unnamedChance     = flag.Float64("unnamed-chance", cfg.UnnamedChance, "probability a protein has no name")
		unannotatedChance = flag.Float64("unannotated-chance", cfg.UnannotatedChance, "probability a protein has no location annotation")
		selfEdgeChance    = flag.Float64("self-edge-chance", cfg.SelfEdgeChance, "probability an edge is a self interaction")
		seed              = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir         = flag.String("output-dir", "data", "directory to write edges.csv and idmap.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumProteins:       *proteins,
		NumEdges:          *edges,
		UnnamedChance:     clampProbability(*unnamedChance),
		UnannotatedChance: clampProbability(*unannotatedChance),
		SelfEdgeChance:    clampProbability(*selfEdgeChance),
		Seed:              *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d proteins and %d edges into %s\n", len(dataset.Proteins), len(dataset.Edges), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
