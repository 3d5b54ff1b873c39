// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capture records synchronized scene frames in a SQLite database
// so they can be inspected after the fact.
//
// A DB is a csg.Sink: every successful Sync appends one row holding the
// header and the four table blobs exactly as they would reach the GPU.
package capture

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/csg"
	_ "modernc.org/sqlite"
)

// ErrNoFrames is returned by Latest when nothing has been captured yet.
var ErrNoFrames = errors.New("capture: no frames")

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	count INTEGER NOT NULL,
	header BLOB NOT NULL,
	shapes BLOB NOT NULL,
	spheres BLOB NOT NULL,
	cuboids BLOB NOT NULL,
	composites BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Info summarizes one captured frame.
type Info struct {
	Seq       int64
	Count     uint32
	Bytes     int
	CreatedAt time.Time
}

// DB is a frame capture database. It is safe for concurrent use.
type DB struct {
	db     *sql.DB
	insert *sql.Stmt
	mu     sync.Mutex
	now    func() time.Time
}

var _ csg.Sink = (*DB)(nil)

// Open opens or creates the capture database at path. Use ":memory:" for
// a throwaway database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("capture: open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("capture: journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("capture: create schema: %w", err)
	}

	insert, err := db.Prepare(`
		INSERT INTO frames (count, header, shapes, spheres, cuboids, composites, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("capture: prepare insert: %w", err)
	}

	csg.Logger().Debug("capture: opened", "path", path)
	return &DB{db: db, insert: insert, now: time.Now}, nil
}

// WriteFrame appends f as a new row.
func (d *DB) WriteFrame(f *csg.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.insert.Exec(
		int64(f.Count()),
		nonNil(f.Header), nonNil(f.Shapes), nonNil(f.Spheres),
		nonNil(f.Cuboids), nonNil(f.Composites),
		d.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("capture: insert frame: %w", err)
	}
	seq, _ := res.LastInsertId()
	csg.Logger().Debug("capture: frame stored", "seq", seq, "count", f.Count(), "bytes", f.Size())
	return nil
}

// Frames lists every captured frame in capture order.
func (d *DB) Frames() ([]Info, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows, err := d.db.Query(`
		SELECT seq, count,
			length(header) + length(shapes) + length(spheres) + length(cuboids) + length(composites),
			created_at
		FROM frames ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("capture: list frames: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Info
	for rows.Next() {
		var (
			info    Info
			count   int64
			created int64
		)
		if err := rows.Scan(&info.Seq, &count, &info.Bytes, &created); err != nil {
			return nil, fmt.Errorf("capture: scan frame: %w", err)
		}
		info.Count = uint32(count) //nolint:gosec // stored from a uint32
		info.CreatedAt = time.Unix(0, created)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Load returns the frame with sequence number seq.
func (d *DB) Load(seq int64) (*csg.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	row := d.db.QueryRow(`
		SELECT header, shapes, spheres, cuboids, composites FROM frames WHERE seq = ?
	`, seq)
	f, err := scanFrame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("capture: frame %d not found", seq)
	}
	return f, err
}

// Latest returns the most recently captured frame and its sequence number.
func (d *DB) Latest() (int64, *csg.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var seq int64
	err := d.db.QueryRow(`SELECT seq FROM frames ORDER BY seq DESC LIMIT 1`).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, ErrNoFrames
	}
	if err != nil {
		return 0, nil, fmt.Errorf("capture: latest frame: %w", err)
	}

	row := d.db.QueryRow(`
		SELECT header, shapes, spheres, cuboids, composites FROM frames WHERE seq = ?
	`, seq)
	f, err := scanFrame(row)
	if err != nil {
		return 0, nil, err
	}
	return seq, f, nil
}

// Close releases the database.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.insert != nil {
		_ = d.insert.Close()
		d.insert = nil
	}
	return d.db.Close()
}

func scanFrame(row *sql.Row) (*csg.Frame, error) {
	var f csg.Frame
	err := row.Scan(&f.Header, &f.Shapes, &f.Spheres, &f.Cuboids, &f.Composites)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("capture: scan frame: %w", err)
	}
	return &f, nil
}

// nonNil keeps empty tables from being stored as NULL.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
