// Package runindex keeps a SQLite index of finished engine runs so a map can
// be reproduced later from its seed, size and catalog digest.
package runindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

// ErrEmptyPath indicates Open without a database path.
var ErrEmptyPath = errors.New("runindex: empty db path")

// Run is one indexed run.
type Run struct {
	ID         int64
	Seed       int64
	Size       int
	Catalog    string // catalog digest
	Tiles      int    // catalog variants
	Outcome    string // final engine state
	Stats      wfc.Stats
	Elapsed    time.Duration
	RecordedAt time.Time
}

// FromEngine summarises e after a run that took elapsed.
func FromEngine(e *wfc.Engine, elapsed time.Duration) Run {
	return Run{
		Seed:    e.Seed(),
		Size:    e.Size(),
		Catalog: e.Catalog().Digest(),
		Tiles:   e.Catalog().Len(),
		Outcome: e.State().String(),
		Stats:   e.Stats(),
		Elapsed: elapsed,
	}
}

// Index is a handle on the run database.
type Index struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database at path.
func Open(path string) (*Index, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("runindex: %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			catalog TEXT NOT NULL,
			tiles INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			collapses INTEGER NOT NULL,
			propagations INTEGER NOT NULL,
			removals INTEGER NOT NULL,
			undos INTEGER NOT NULL,
			contradictions INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_seed ON runs(seed);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("runindex: schema: %w", err)
		}
	}
	return nil
}

// Record inserts r and returns its id. A zero RecordedAt is set to now.
func (x *Index) Record(ctx context.Context, r Run) (int64, error) {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	res, err := x.db.ExecContext(ctx, `INSERT INTO runs
		(seed,size,catalog,tiles,outcome,collapses,propagations,removals,undos,contradictions,elapsed_ns,recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.Seed, r.Size, r.Catalog, r.Tiles, r.Outcome,
		r.Stats.Collapses, r.Stats.Propagations, r.Stats.Removals, r.Stats.Undos, r.Stats.Contradictions,
		int64(r.Elapsed), r.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("runindex: insert: %w", err)
	}
	return res.LastInsertId()
}

const selectRuns = `SELECT id,seed,size,catalog,tiles,outcome,collapses,propagations,removals,undos,contradictions,elapsed_ns,recorded_at FROM runs`

// Recent returns up to limit runs, newest first.
func (x *Index) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return x.query(ctx, selectRuns+` ORDER BY id DESC LIMIT ?`, limit)
}

// BySeed returns every run made with seed, oldest first.
func (x *Index) BySeed(ctx context.Context, seed int64) ([]Run, error) {
	return x.query(ctx, selectRuns+` WHERE seed=? ORDER BY id`, seed)
}

func (x *Index) query(ctx context.Context, q string, args ...any) ([]Run, error) {
	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("runindex: query: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			elapsed int64
			at      string
		)
		if err := rows.Scan(&r.ID, &r.Seed, &r.Size, &r.Catalog, &r.Tiles, &r.Outcome,
			&r.Stats.Collapses, &r.Stats.Propagations, &r.Stats.Removals, &r.Stats.Undos, &r.Stats.Contradictions,
			&elapsed, &at); err != nil {
			return nil, fmt.Errorf("runindex: scan: %w", err)
		}
		r.Elapsed = time.Duration(elapsed)
		if r.RecordedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("runindex: run %d recorded_at: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runindex: rows: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}
