package generator

// Config drives the synthetic dataset generator.
type Config struct {
	NumProteins       int
	NumEdges          int
	UnnamedChance     float64 // probability a protein has no protein_name
	UnannotatedChance float64 // probability a protein has no location annotation
	SelfEdgeChance    float64 // probability an edge loops back to its source
	Seed              int64
}

// DefaultConfig returns baseline settings producing a small but varied graph.
func DefaultConfig() Config {
	return Config{
		NumProteins:       2000,
		NumEdges:          20000,
		UnnamedChance:     0.1,
		UnannotatedChance: 0.2,
		SelfEdgeChance:    0.005,
		Seed:              42,
	}
}
