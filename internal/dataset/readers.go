package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/nandini/ppi-explorer/internal/domain"
)

type edgeRow struct {
	Src      string  `parquet:"src"`
	Dst      string  `parquet:"dst"`
	Score    float64 `parquet:"score"`
	Strength string  `parquet:"strength"`
}

type identifierRow struct {
	ID          string  `parquet:"id"`
	ProteinName *string `parquet:"protein_name,optional"`
	Location    *string `parquet:"location,optional"`
}

// readEdges loads the edge table from a parquet or delimited file.
func readEdges(path string) ([]domain.Edge, error) {
	if isParquet(path) {
		rows, err := parquet.ReadFile[edgeRow](path)
		if err != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
		edges := make([]domain.Edge, 0, len(rows))
		for _, row := range rows {
			edges = append(edges, domain.Edge{
				Src:      row.Src,
				Dst:      row.Dst,
				Score:    row.Score,
				Strength: domain.Strength(row.Strength),
			})
		}
		return edges, nil
	}

	var edges []domain.Edge
	err := readDelimited(path, []string{"src", "dst", "score", "strength"}, func(record map[string]string) error {
		score, err := strconv.ParseFloat(record["score"], 64)
		if err != nil {
			return fmt.Errorf("parse score %q: %w", record["score"], err)
		}
		edges = append(edges, domain.Edge{
			Src:      record["src"],
			Dst:      record["dst"],
			Score:    score,
			Strength: domain.Strength(record["strength"]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// readIdentifiers loads the identifier/metadata table from a parquet or
// delimited file.
func readIdentifiers(path string) ([]domain.IdentifierRecord, error) {
	if isParquet(path) {
		rows, err := parquet.ReadFile[identifierRow](path)
		if err != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
		records := make([]domain.IdentifierRecord, 0, len(rows))
		for _, row := range rows {
			rec := domain.IdentifierRecord{ID: row.ID}
			if row.ProteinName != nil {
				rec.ProteinName = *row.ProteinName
			}
			if row.Location != nil {
				rec.Location = *row.Location
			}
			records = append(records, rec)
		}
		return records, nil
	}

	var records []domain.IdentifierRecord
	err := readDelimited(path, []string{"id", "protein_name", "location"}, func(record map[string]string) error {
		records = append(records, domain.IdentifierRecord{
			ID:          record["id"],
			ProteinName: record["protein_name"],
			Location:    record["location"],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func isParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

// readDelimited streams a CSV (or TSV, by extension) file with a header row
// and hands each record to fn keyed by column name. The named columns must
// all be present in the header.
func readDelimited(path string, columns []string, fn func(map[string]string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		record := make(map[string]string, len(columns))
		for _, col := range columns {
			record[col] = row[index[col]]
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}
