package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteDataset serializes the dataset into edges.csv and idmap.csv under the
// provided directory, with the column headers the loader expects.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	edgesPath := filepath.Join(dir, "edges.csv")
	edgeRows := make([][]string, 0, len(dataset.Edges)+1)
	edgeRows = append(edgeRows, []string{"src", "dst", "score", "strength"})
	for _, e := range dataset.Edges {
		edgeRows = append(edgeRows, []string{
			e.Src, e.Dst, strconv.FormatFloat(e.Score, 'f', 6, 64), string(e.Strength),
		})
	}
	if err := writeCSV(edgesPath, edgeRows); err != nil {
		return err
	}

	idmapPath := filepath.Join(dir, "idmap.csv")
	idmapRows := make([][]string, 0, len(dataset.Proteins)+1)
	idmapRows = append(idmapRows, []string{"id", "protein_name", "location"})
	for _, p := range dataset.Proteins {
		idmapRows = append(idmapRows, []string{p.ID, p.ProteinName, p.Location})
	}
	return writeCSV(idmapPath, idmapRows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
