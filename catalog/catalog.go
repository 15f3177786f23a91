// Package catalog persists the codespace reference data in an embedded SQL
// database. The exported tables let other tooling query planes, surrogate
// ranges and noncharacters without linking this module.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"

	"github.com/zerustech/string/codespace"
)

var (
	// ErrUnknownDriver indicates a driver other than sqlite or duckdb.
	ErrUnknownDriver = errors.New("unknown catalog driver")

	// ErrPlaneNotFound indicates no stored plane contains the code point.
	ErrPlaneNotFound = errors.New("plane not found")
)

// Store handles SQL storage of the codespace tables. Both the sqlite and
// the duckdb driver are supported; the SQL is restricted to what the two
// have in common.
type Store struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
}

// Open opens (creating if needed) a catalog database with the given
// driver, "sqlite" or "duckdb".
func Open(driver, path string) (*Store, error) {
	switch driver {
	case "sqlite", "duckdb":
	default:
		return nil, fmt.Errorf("catalog: %q: %w", driver, ErrUnknownDriver)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening database: %w", err)
	}

	s := &Store{db: db, driver: driver}

	if driver == "sqlite" {
		// Set busy timeout for concurrent access
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("catalog: setting busy timeout: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS planes (
			idx INTEGER PRIMARY KEY,
			low INTEGER NOT NULL,
			high INTEGER NOT NULL,
			name TEXT,
			alias TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS noncharacters (
			code_point INTEGER PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS surrogate_ranges (
			kind TEXT PRIMARY KEY,
			low INTEGER NOT NULL,
			high INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("catalog: creating table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Populate replaces the stored tables with the current codespace data.
func (s *Store) Populate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin populate: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM planes",
		"DELETE FROM noncharacters",
		"DELETE FROM surrogate_ranges",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("catalog: clearing tables: %w", err)
		}
	}

	for _, p := range codespace.Planes() {
		_, err := tx.Exec(
			"INSERT INTO planes (idx, low, high, name, alias) VALUES (?, ?, ?, ?, ?)",
			p.Index, int64(p.Low), int64(p.High), nullString(p.Name), nullString(p.Alias),
		)
		if err != nil {
			return fmt.Errorf("catalog: inserting plane %d: %w", p.Index, err)
		}
	}

	for _, cp := range codespace.Noncharacters() {
		if _, err := tx.Exec("INSERT INTO noncharacters (code_point) VALUES (?)", int64(cp)); err != nil {
			return fmt.Errorf("catalog: inserting noncharacter %#x: %w", cp, err)
		}
	}

	ranges := []struct {
		kind      string
		low, high rune
	}{
		{"high", codespace.HighSurrogateMin, codespace.HighSurrogateMax},
		{"low", codespace.LowSurrogateMin, codespace.LowSurrogateMax},
	}
	for _, r := range ranges {
		_, err := tx.Exec(
			"INSERT INTO surrogate_ranges (kind, low, high) VALUES (?, ?, ?)",
			r.kind, int64(r.low), int64(r.high),
		)
		if err != nil {
			return fmt.Errorf("catalog: inserting surrogate range %s: %w", r.kind, err)
		}
	}

	return tx.Commit()
}

// Planes returns the stored plane table in index order.
func (s *Store) Planes() ([]codespace.Plane, error) {
	rows, err := s.db.Query("SELECT idx, low, high, name, alias FROM planes ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("catalog: querying planes: %w", err)
	}
	defer rows.Close()

	var planes []codespace.Plane
	for rows.Next() {
		p, err := scanPlane(rows)
		if err != nil {
			return nil, err
		}
		planes = append(planes, p)
	}
	return planes, rows.Err()
}

// PlaneAt returns the stored plane containing cp.
func (s *Store) PlaneAt(cp rune) (codespace.Plane, error) {
	row := s.db.QueryRow(
		"SELECT idx, low, high, name, alias FROM planes WHERE ? BETWEEN low AND high",
		int64(cp),
	)
	p, err := scanPlane(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return codespace.Plane{}, fmt.Errorf("catalog: code point %#x: %w", cp, ErrPlaneNotFound)
		}
		return codespace.Plane{}, err
	}
	return p, nil
}

// Noncharacters returns the stored noncharacter list in ascending order.
func (s *Store) Noncharacters() ([]rune, error) {
	rows, err := s.db.Query("SELECT code_point FROM noncharacters ORDER BY code_point")
	if err != nil {
		return nil, fmt.Errorf("catalog: querying noncharacters: %w", err)
	}
	defer rows.Close()

	var ncs []rune
	for rows.Next() {
		var cp int64
		if err := rows.Scan(&cp); err != nil {
			return nil, fmt.Errorf("catalog: scanning noncharacter: %w", err)
		}
		ncs = append(ncs, rune(cp))
	}
	return ncs, rows.Err()
}

// SurrogateRange returns the stored bounds for kind "high" or "low".
func (s *Store) SurrogateRange(kind string) (low, high rune, err error) {
	var l, h int64
	err = s.db.QueryRow("SELECT low, high FROM surrogate_ranges WHERE kind = ?", kind).Scan(&l, &h)
	if err != nil {
		return 0, 0, fmt.Errorf("catalog: querying surrogate range %s: %w", kind, err)
	}
	return rune(l), rune(h), nil
}

// Stats reports the stored row count per table.
type Stats struct {
	Planes          int
	Noncharacters   int
	SurrogateRanges int
}

// Stats counts the stored rows.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	counts := []struct {
		table string
		dst   *int
	}{
		{"planes", &st.Planes},
		{"noncharacters", &st.Noncharacters},
		{"surrogate_ranges", &st.SurrogateRanges},
	}
	for _, c := range counts {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("catalog: counting %s: %w", c.table, err)
		}
	}
	return st, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlane(row scanner) (codespace.Plane, error) {
	var (
		idx         int
		low, high   int64
		name, alias sql.NullString
	)
	if err := row.Scan(&idx, &low, &high, &name, &alias); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return codespace.Plane{}, err
		}
		return codespace.Plane{}, fmt.Errorf("catalog: scanning plane: %w", err)
	}
	return codespace.Plane{
		Index: idx,
		Low:   rune(low),
		High:  rune(high),
		Name:  name.String,
		Alias: alias.String,
	}, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
