// Package library implements the per-library persistent unit index (§4.5)
// and its registry (§4.6): a small SQLite-backed table mapping a design
// unit's (kind, identifier, identifier2) to the file and position it was
// last parsed from, so the binder's demand-loader can find a primary unit
// without re-scanning every file in a library.
package library

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"
)

// UnitKind mirrors LIBRARY_UNITS.DESIGNUNIT: the five design unit kinds a
// row can name. Zero is deliberately invalid so a zero-value Row reads as
// "no such row" rather than as a valid entity.
type UnitKind int

const (
	KindInvalid UnitKind = iota
	KindEntity
	KindArchitecture
	KindPackage
	KindPackageBody
	KindConfiguration
)

// Row is one LIBRARY_UNITS record. Identifier2 names the entity an
// architecture or configuration is `of`, or the package a package body
// belongs to; it is empty for entities and packages.
type Row struct {
	Kind        UnitKind
	Line        int
	Column      int
	Filename    string
	Identifier  string
	Identifier2 string
	Timestamp   int64
}

// key returns the composite lookup hash for a row's identity, letting an
// architecture and an entity of the same simple name coexist in one table
// without colliding, and letting two architectures of the same entity
// coexist by folding identifier2 into the hash as well.
func key(kind UnitKind, identifier, identifier2 string) uint64 {
	h := xxhash.New()
	var kbuf [8]byte
	binary.LittleEndian.PutUint64(kbuf[:], uint64(kind))
	h.Write(kbuf[:])
	h.Write([]byte(identifier))
	h.Write([]byte{0})
	h.Write([]byte(identifier2))
	return h.Sum64()
}

// Backend backs one named library. It opens its SQLite store lazily, on
// first write or read, and the store lives either on disk at path or, when
// path is empty, in memory. Whether a library is configured is tracked
// separately by known.
type Backend struct {
	mu       sync.Mutex
	path     string // "" means in-memory (":memory:")
	known    bool
	db       *sql.DB
	valid    bool
	internal bool
}

// newBackend constructs a backend for a library whose persistence target is
// path (empty for an ephemeral, in-memory-only backend). known marks
// whether this library was explicitly configured, per §4.5's is_known flag.
func newBackend(path string, known bool) *Backend {
	return &Backend{path: path, known: known, valid: true}
}

// IsValid reports whether the manager still owns this backend.
func (b *Backend) IsValid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.valid
}

// IsKnown reports whether this library was explicitly configured rather
// than fabricated on demand for an unrecognised name.
func (b *Backend) IsKnown() bool {
	return b.known
}

// HasInternalProblem reports whether this backend's table creation failed;
// once true, every subsequent operation is a silent no-op/empty result.
func (b *Backend) HasInternalProblem() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.internal
}

// invalidate marks the backend disowned; called by the manager when it is
// evicted from the registry (§4.6's initialise/get contract).
func (b *Backend) invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.valid = false
}

const schema = `
CREATE TABLE IF NOT EXISTS LIBRARY_UNITS (
	ID          integer primary key,
	KEYHASH     integer not null,
	LINENUMBER  integer,
	TIMESTAMP   integer,
	FILENAME    text,
	DESIGNUNIT  integer,
	IDENTIFIER  text,
	IDENTIFIER2 text
);
CREATE INDEX IF NOT EXISTS LIBRARY_UNITS_KEYHASH ON LIBRARY_UNITS(KEYHASH);
`

// open lazily establishes the database connection and creates the schema,
// memoizing a table-creation failure into has_internal_problem so callers
// never retry a store that is known to be broken.
func (b *Backend) open() (*sql.DB, bool) {
	if b.internal {
		return nil, false
	}
	if b.db != nil {
		return b.db, true
	}
	target := ":memory:"
	if b.path != "" {
		target = b.path
	}
	db, err := sql.Open("sqlite", target)
	if err != nil {
		b.internal = true
		return nil, false
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		b.internal = true
		return nil, false
	}
	b.db = db
	return b.db, true
}

// Get looks up the row naming (kind, identifier, identifier2); identifier2
// may be empty for a primary unit. It returns (row, true) on a hit and
// (Row{}, false) when there is no such row or the backend has an internal
// problem - a plain boolean is enough here since an "unusable" backend and
// a genuine miss both mean "nothing to resolve against".
func (b *Backend) Get(kind UnitKind, identifier, identifier2 string) (Row, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid {
		return Row{}, false
	}
	db, ok := b.open()
	if !ok {
		return Row{}, false
	}
	k := key(kind, identifier, identifier2)
	row := db.QueryRow(
		`SELECT LINENUMBER, TIMESTAMP, FILENAME, DESIGNUNIT, IDENTIFIER, IDENTIFIER2
		 FROM LIBRARY_UNITS WHERE KEYHASH = ? ORDER BY ID DESC LIMIT 1`, k)
	var r Row
	var id2 sql.NullString
	var kind2 int
	if err := row.Scan(&r.Line, &r.Timestamp, &r.Filename, &kind2, &r.Identifier, &id2); err != nil {
		return Row{}, false
	}
	r.Kind = UnitKind(kind2)
	r.Identifier2 = id2.String
	return r, true
}

// Put inserts or replaces the row naming (row.Kind, row.Identifier,
// row.Identifier2); a later Put for the same composite key supersedes
// earlier ones since Get orders by ID descending.
func (b *Backend) Put(row Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid {
		return fmt.Errorf("library: backend no longer owned by manager")
	}
	db, ok := b.open()
	if !ok {
		return fmt.Errorf("library: backend has an internal problem")
	}
	k := key(row.Kind, row.Identifier, row.Identifier2)
	var id2 sql.NullString
	if row.Identifier2 != "" {
		id2 = sql.NullString{String: row.Identifier2, Valid: true}
	}
	_, err := db.Exec(
		`INSERT INTO LIBRARY_UNITS (KEYHASH, LINENUMBER, TIMESTAMP, FILENAME, DESIGNUNIT, IDENTIFIER, IDENTIFIER2)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		k, row.Line, row.Timestamp, row.Filename, int(row.Kind), row.Identifier, id2)
	return err
}

// Clear empties the table, e.g. before a full re-index of the library.
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid {
		return fmt.Errorf("library: backend no longer owned by manager")
	}
	db, ok := b.open()
	if !ok {
		return fmt.Errorf("library: backend has an internal problem")
	}
	_, err := db.Exec(`DELETE FROM LIBRARY_UNITS`)
	return err
}

// All returns up to limit rows (0 means unbounded) whose identifier
// contains filter as a substring (empty filter matches every row), most
// recently written first.
func (b *Backend) All(limit int, filter string) ([]Row, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.valid {
		return nil, fmt.Errorf("library: backend no longer owned by manager")
	}
	db, ok := b.open()
	if !ok {
		return nil, fmt.Errorf("library: backend has an internal problem")
	}
	query := `SELECT LINENUMBER, TIMESTAMP, FILENAME, DESIGNUNIT, IDENTIFIER, IDENTIFIER2
		FROM LIBRARY_UNITS WHERE IDENTIFIER LIKE ? ORDER BY ID DESC`
	args := []any{"%" + filter + "%"}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		var id2 sql.NullString
		var kind int
		if err := rows.Scan(&r.Line, &r.Timestamp, &r.Filename, &kind, &r.Identifier, &id2); err != nil {
			return nil, err
		}
		r.Kind = UnitKind(kind)
		r.Identifier2 = id2.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle, if one was ever opened.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
