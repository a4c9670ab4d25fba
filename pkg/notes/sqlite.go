package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/notes.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// schema is the notes table definition. Field values are stored as a
// JSON object keyed by field name.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id          INTEGER PRIMARY KEY,
	deck        TEXT NOT NULL,
	fields      TEXT NOT NULL,
	modified_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_deck ON notes(deck);
`

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite storage backend. It initializes
// the schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "notes.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStoreError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite note store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStoreError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStoreError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStoreError("sqlite", "create_schema", err)
	}
	s.logger.Debug("database schema created")

	return nil
}

// Insert adds a note to the store. A zero ID lets SQLite assign one;
// the assigned ID is written back to the note.
func (s *SQLiteStore) Insert(ctx context.Context, note *Note) error {
	fieldsJSON, err := json.Marshal(note.Fields)
	if err != nil {
		return NewStoreError("sqlite", "insert", err)
	}
	if note.ModifiedAt.IsZero() {
		note.ModifiedAt = time.Now().UTC()
	}

	if note.ID != 0 {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO notes (id, deck, fields, modified_at) VALUES (?, ?, ?, ?)",
			note.ID, note.Deck, string(fieldsJSON), note.ModifiedAt,
		)
		if err != nil {
			return NewStoreError("sqlite", "insert", err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (deck, fields, modified_at) VALUES (?, ?, ?)",
		note.Deck, string(fieldsJSON), note.ModifiedAt,
	)
	if err != nil {
		return NewStoreError("sqlite", "insert", err)
	}
	note.ID, err = result.LastInsertId()
	if err != nil {
		return NewStoreError("sqlite", "insert", err)
	}
	return nil
}

// List returns notes matching the filter, ordered by ID. The
// MissingField check inspects the JSON field bag, so it is applied in
// Go after the deck filter narrows the scan.
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Note, error) {
	query := "SELECT id, deck, fields, modified_at FROM notes"
	var args []interface{}
	if filter.Deck != "" {
		query += " WHERE deck = ?"
		args = append(args, filter.Deck)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStoreError("sqlite", "list", err)
	}
	defer rows.Close()

	result := []*Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, NewStoreError("sqlite", "scan", err)
		}
		if filter.MissingField != "" && note.Fields[filter.MissingField] != "" {
			continue
		}
		result = append(result, note)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError("sqlite", "list", err)
	}

	return result, nil
}

// Get returns the note with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*Note, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, deck, fields, modified_at FROM notes WHERE id = ?", id)

	note := &Note{}
	var fieldsJSON string
	err := row.Scan(&note.ID, &note.Deck, &fieldsJSON, &note.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStoreError("sqlite", "get", err)
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &note.Fields); err != nil {
		return nil, NewStoreError("sqlite", "get", err)
	}
	return note, nil
}

// UpdateFields merges the given field values into the note inside a
// transaction so concurrent updates to the same note do not lose
// fields.
func (s *SQLiteStore) UpdateFields(ctx context.Context, id int64, fields map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}
	defer tx.Rollback()

	var fieldsJSON string
	err = tx.QueryRowContext(ctx,
		"SELECT fields FROM notes WHERE id = ?", id).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}

	current := map[string]string{}
	if err := json.Unmarshal([]byte(fieldsJSON), &current); err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}
	for name, value := range fields {
		current[name] = value
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE notes SET fields = ?, modified_at = ? WHERE id = ?",
		string(merged), time.Now().UTC(), id,
	)
	if err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("sqlite", "update_fields", err)
	}
	return nil
}

// Close releases resources held by the store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStoreError("sqlite", "close", err)
	}
	s.logger.Info("SQLite note store closed")
	return nil
}

func scanNote(rows *sql.Rows) (*Note, error) {
	note := &Note{}
	var fieldsJSON string
	if err := rows.Scan(&note.ID, &note.Deck, &fieldsJSON, &note.ModifiedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &note.Fields); err != nil {
		return nil, err
	}
	return note, nil
}
