// Package store persists split-pane layouts in a SQLite database under
// .splitview/layouts.db. Every write bumps a change token that the serve
// layer polls to push refresh events to connected clients.
package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/marcus/splitview/pkg/splitpane"
)

const dbFile = ".splitview/layouts.db"

// ErrNotFound reports a lookup for a layout id that does not exist.
var ErrNotFound = errors.New("layout not found")

// Layout is a stored split-pane configuration. Size fields hold the
// original expressions verbatim so the declared unit choice survives a
// round trip through the store.
type Layout struct {
	ID            string
	Orientation   string
	FirstSize     string
	FirstMinSize  string
	SecondSize    string
	SecondMinSize string
}

// Validate parses every size expression and the orientation, returning the
// first error. Layouts are validated before they reach the database so a
// malformed expression can never be persisted.
func (l *Layout) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("layout id required")
	}
	if _, err := splitpane.ParseOrientation(l.Orientation); err != nil {
		return err
	}
	first, err := splitpane.ParseSize(l.FirstSize)
	if err != nil {
		return fmt.Errorf("first size: %w", err)
	}
	if _, err := splitpane.ParseSize(l.FirstMinSize); err != nil {
		return fmt.Errorf("first min size: %w", err)
	}
	second, err := splitpane.ParseSize(l.SecondSize)
	if err != nil {
		return fmt.Errorf("second size: %w", err)
	}
	if _, err := splitpane.ParseSize(l.SecondMinSize); err != nil {
		return fmt.Errorf("second min size: %w", err)
	}
	if !first.IsEmpty() && !second.IsEmpty() {
		return splitpane.ErrBothSizesDeclared
	}
	return nil
}

// Store wraps the database connection.
type Store struct {
	conn    *sql.DB
	baseDir string
}

// Open opens an existing store. It fails if the database has not been
// initialized yet.
func Open(baseDir string) (*Store, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("store not found: run 'splitview init' first")
	}

	return open(baseDir, dbPath)
}

// Initialize creates the database (and its directory) and applies the schema.
func Initialize(baseDir string) (*Store, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	return open(baseDir, dbPath)
}

func open(baseDir, dbPath string) (*Store, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Set busy timeout as fallback protection against writer contention
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{conn: conn, baseDir: baseDir}
	if err := s.ensureChangeToken(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// SetMaxOpenConns limits the connection pool. Long-running servers set this
// to 1 to match SQLite's single-writer semantics.
func (s *Store) SetMaxOpenConns(n int) {
	s.conn.SetMaxOpenConns(n)
}

// BaseDir returns the base directory for the store.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// SaveLayout validates and upserts a layout, bumping the change token.
func (s *Store) SaveLayout(l *Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}

	_, err := s.conn.Exec(`
		INSERT INTO layouts (id, orientation, first_size, first_min_size, second_size, second_min_size)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			orientation = excluded.orientation,
			first_size = excluded.first_size,
			first_min_size = excluded.first_min_size,
			second_size = excluded.second_size,
			second_min_size = excluded.second_min_size,
			updated_at = CURRENT_TIMESTAMP`,
		l.ID, l.Orientation, l.FirstSize, l.FirstMinSize, l.SecondSize, l.SecondMinSize)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}

	return s.bumpChangeToken()
}

// GetLayout returns a layout by id.
func (s *Store) GetLayout(id string) (*Layout, error) {
	var l Layout
	err := s.conn.QueryRow(`
		SELECT id, orientation, first_size, first_min_size, second_size, second_min_size
		FROM layouts WHERE id = ?`, id).
		Scan(&l.ID, &l.Orientation, &l.FirstSize, &l.FirstMinSize, &l.SecondSize, &l.SecondMinSize)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout: %w", err)
	}
	return &l, nil
}

// ListLayouts returns all layouts ordered by id.
func (s *Store) ListLayouts() ([]Layout, error) {
	rows, err := s.conn.Query(`
		SELECT id, orientation, first_size, first_min_size, second_size, second_min_size
		FROM layouts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	var layouts []Layout
	for rows.Next() {
		var l Layout
		if err := rows.Scan(&l.ID, &l.Orientation, &l.FirstSize, &l.FirstMinSize,
			&l.SecondSize, &l.SecondMinSize); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		layouts = append(layouts, l)
	}
	return layouts, rows.Err()
}

// DeleteLayout removes a layout and bumps the change token.
func (s *Store) DeleteLayout(id string) error {
	res, err := s.conn.Exec(`DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.bumpChangeToken()
}

// SetPaneSize updates a single pane's size expression on a stored layout.
// Drag-adjusted pixel sizes land here, so the expression is validated and
// the dual-declared-size precondition re-checked against the other pane.
func (s *Store) SetPaneSize(id string, pane splitpane.Pane, expr string) error {
	l, err := s.GetLayout(id)
	if err != nil {
		return err
	}

	if pane == splitpane.First {
		l.FirstSize = expr
	} else {
		l.SecondSize = expr
	}
	return s.SaveLayout(l)
}

// ApplyDragSize persists a drag-adjusted size for one pane. Dragging the
// divider redistributes space between the panes, so the other pane's size
// is cleared to flex-fill whatever remains; a drag on either pane of any
// valid layout therefore always yields a valid layout.
func (s *Store) ApplyDragSize(id string, pane splitpane.Pane, expr string) error {
	l, err := s.GetLayout(id)
	if err != nil {
		return err
	}

	if pane == splitpane.First {
		l.FirstSize = expr
		l.SecondSize = ""
	} else {
		l.SecondSize = expr
		l.FirstSize = ""
	}
	return s.SaveLayout(l)
}

// GetChangeToken returns the current change token. The token changes on
// every write, so pollers can cheaply detect that a refresh is needed.
func (s *Store) GetChangeToken() (string, error) {
	var token string
	err := s.conn.QueryRow(`SELECT value FROM meta WHERE key = 'change_token'`).Scan(&token)
	if err != nil {
		return "", fmt.Errorf("get change token: %w", err)
	}
	return token, nil
}

// ensureChangeToken seeds the change token row on first open.
func (s *Store) ensureChangeToken() error {
	token, err := newChangeToken()
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES ('change_token', ?)`, token)
	if err != nil {
		return fmt.Errorf("seed change token: %w", err)
	}
	return nil
}

// bumpChangeToken replaces the change token after a successful write.
func (s *Store) bumpChangeToken() error {
	token, err := newChangeToken()
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(`UPDATE meta SET value = ? WHERE key = 'change_token'`, token)
	if err != nil {
		return fmt.Errorf("bump change token: %w", err)
	}
	return nil
}

// newChangeToken generates a random 16-hex-character token.
func newChangeToken() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate change token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
