package storyrepo

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS stories (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	body       BLOB NOT NULL,
	version    INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite story repository
type SQLiteConfig struct {
	// Path is the database file; ":memory:" opens a private in-memory database
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("sqlite path is required")
	}
	return nil
}

// SQLiteRepository stores stories as JSON bodies in a single table
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// NewSQLite opens the database and creates the schema
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.Path
	if dsn != ":memory:" {
		dsn = filepath.Clean(dsn) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	if cfg.Path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create schema")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// Create stores a new story
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Story == nil {
		return nil, errors.InvalidArgument(errStoryNil)
	}
	if input.Story.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	body, err := story.EncodeJSON(input.Story)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal story")
	}

	now := r.clock.Now().UTC().Truncate(time.Millisecond)
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO stories (id, title, body, version, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		input.Story.ID, input.Story.Title, body, toMillis(now), toMillis(now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.StoryExists(input.Story.ID)
		}
		return nil, errors.Wrapf(err, "failed to insert story")
	}

	return &CreateOutput{Record: &Record{
		Story:     input.Story,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		body               []byte
		version            int64
		createdAt, updated int64
	)
	if err := row.Scan(&body, &version, &createdAt, &updated); err != nil {
		return nil, err
	}
	s, err := story.DecodeJSON(body)
	if err != nil {
		return nil, err
	}
	return &Record{
		Story:     s,
		Version:   version,
		CreatedAt: fromMillis(createdAt),
		UpdatedAt: fromMillis(updated),
	}, nil
}

// Get retrieves a story by ID
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT body, version, created_at, updated_at FROM stories WHERE id = ?`, input.ID)
	record, err := scanRecord(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.StoryNotFound(input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get story")
	}
	return &GetOutput{Record: record}, nil
}

// Update replaces a story, bumping its version. The version check and write
// happen in one statement.
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Story == nil {
		return nil, errors.InvalidArgument(errStoryNil)
	}
	if input.Story.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	body, err := story.EncodeJSON(input.Story)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal story")
	}

	now := r.clock.Now().UTC().Truncate(time.Millisecond)
	res, err := r.db.ExecContext(ctx,
		`UPDATE stories SET title = ?, body = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND (? = 0 OR version = ?)`,
		input.Story.Title, body, toMillis(now), input.Story.ID, input.ExpectedVersion, input.ExpectedVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update story")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update story")
	}

	current, err := r.Get(ctx, GetInput{ID: input.Story.ID})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.StoryVersionConflict(input.Story.ID, current.Record.Version, input.ExpectedVersion)
	}

	return &UpdateOutput{Record: current.Record}, nil
}

// Delete removes a story
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStoryIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete story")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete story")
	}
	if affected == 0 {
		return nil, errors.StoryNotFound(input.ID)
	}
	return &DeleteOutput{}, nil
}

// List returns stored stories ordered by ID
func (r *SQLiteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	query := `SELECT body, version, created_at, updated_at FROM stories ORDER BY id`
	args := []interface{}{}
	if input.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, input.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list stories")
	}
	defer func() { _ = rows.Close() }()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan story")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate stories")
	}

	return &ListOutput{Records: records}, nil
}
