// Package dataset materializes the two source tables (edges, idmap) into an
// embedded SQLite database and owns their process-lifetime handle.
package dataset

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	sqlite "modernc.org/sqlite"

	"github.com/nandini/ppi-explorer/internal/domain"
	"github.com/nandini/ppi-explorer/internal/locations"
)

// Options configures Open.
type Options struct {
	EdgesSource     string
	IdmapSource     string
	CacheDir        string // defaults to os.TempDir()/ppi-explorer
	DownloadTimeout time.Duration
	HTTPClient      *http.Client // optional; tests inject one
	Logger          *slog.Logger
}

// Store holds the loaded, read-only dataset. It is constructed once at
// process start and shared by all queries.
type Store struct {
	db         *sql.DB
	edgeCount  int
	idmapCount int
}

const schema = `
CREATE TABLE edges (
	src      TEXT NOT NULL,
	dst      TEXT NOT NULL,
	score    REAL NOT NULL,
	strength TEXT NOT NULL
);
CREATE INDEX idx_edges_src ON edges(src);
CREATE INDEX idx_edges_dst ON edges(dst);

CREATE TABLE idmap (
	id           TEXT PRIMARY KEY,
	protein_name TEXT,
	location     TEXT
);
`

var (
	registerFunctions sync.Once
	registerErr       error
)

// registerLocCategory exposes the location normalizer as a deterministic
// scalar SQL function so every query applies the same ordered predicate list.
// Registration is driver-global and must happen before connections open.
func registerLocCategory() error {
	registerFunctions.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("loc_category", 1, locCategoryImpl)
	})
	return registerErr
}

func locCategoryImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("loc_category: expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case nil:
		return locations.Categorize(""), nil
	case string:
		return locations.Categorize(v), nil
	case []byte:
		return locations.Categorize(string(v)), nil
	default:
		return nil, fmt.Errorf("loc_category: unsupported argument type %T", args[0])
	}
}

// Open resolves both sources, loads them into an in-memory SQLite database
// and returns the shared handle. Remote sources are fetched through the
// local download cache; see resolveSource.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.EdgesSource == "" || opts.IdmapSource == "" {
		return nil, ErrMissingSource
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "ppi-explorer")
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.DownloadTimeout
		if timeout <= 0 {
			timeout = 5 * time.Minute
		}
		client = &http.Client{Timeout: timeout}
	}

	edgesPath, err := resolveSource(ctx, client, cacheDir, opts.EdgesSource)
	if err != nil {
		return nil, fmt.Errorf("resolve edges source: %w", err)
	}
	idmapPath, err := resolveSource(ctx, client, cacheDir, opts.IdmapSource)
	if err != nil {
		return nil, fmt.Errorf("resolve idmap source: %w", err)
	}

	edges, err := readEdges(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}
	records, err := readIdentifiers(idmapPath)
	if err != nil {
		return nil, fmt.Errorf("load idmap: %w", err)
	}

	if err := registerLocCategory(); err != nil {
		return nil, fmt.Errorf("register loc_category: %w", err)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// An in-memory database lives on a single connection; a second pooled
	// connection would see an empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := insertEdges(ctx, db, edges); err != nil {
		db.Close()
		return nil, err
	}
	if err := insertIdentifiers(ctx, db, records); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("dataset loaded",
		"edges", len(edges),
		"proteins", len(records),
		"edges_path", edgesPath,
		"idmap_path", idmapPath,
	)

	return &Store{
		db:         db,
		edgeCount:  len(edges),
		idmapCount: len(records),
	}, nil
}

func insertEdges(ctx context.Context, db *sql.DB, edges []domain.Edge) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin edges insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO edges(src, dst, score, strength) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edges insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range edges {
		if _, err := stmt.ExecContext(ctx, e.Src, e.Dst, e.Score, string(e.Strength)); err != nil {
			return fmt.Errorf("insert edge %s-%s: %w", e.Src, e.Dst, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit edges insert: %w", err)
	}
	return nil
}

func insertIdentifiers(ctx context.Context, db *sql.DB, records []domain.IdentifierRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin idmap insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO idmap(id, protein_name, location) VALUES (?, NULLIF(?, ''), NULLIF(?, ''))`)
	if err != nil {
		return fmt.Errorf("prepare idmap insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.ProteinName, rec.Location); err != nil {
			return fmt.Errorf("insert identifier %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit idmap insert: %w", err)
	}
	return nil
}

// DB exposes the underlying handle for the query layer.
func (s *Store) DB() *sql.DB { return s.db }

// Counts reports the loaded table sizes.
func (s *Store) Counts() (edges, proteins int) {
	return s.edgeCount, s.idmapCount
}

// Ping verifies the handle still answers queries.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping dataset: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
