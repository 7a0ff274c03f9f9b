package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-reportschema/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS report_templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	report_type TEXT NOT NULL,
	is_active   INTEGER NOT NULL DEFAULT 0,
	body        TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_templates_type
	ON report_templates (report_type, is_active);
`

// SQLiteStore implements Store on top of modernc.org/sqlite. The template is
// kept as a JSON document; name, type and activation are mirrored into
// columns for filtering.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens dsn and creates the schema. In-memory databases are pinned
// to a single connection so every query sees the same data.
func OpenSQLite(ctx context.Context, dsn string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db, opts: resolveOptions(opts)}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the report_templates table when missing.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, t model.Template) (Record, error) {
	now := s.opts.now()
	id := s.opts.newID()
	t = t.Clone()
	t.ID = id

	body, err := json.Marshal(t)
	if err != nil {
		return Record{}, fmt.Errorf("store: encode template: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO report_templates (id, name, report_type, is_active, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, t.Name, string(t.ReportType), t.IsActive, string(body), now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("store: insert template: %w", err)
	}
	return Record{ID: id, Template: t, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, is_active, body, created_at, updated_at FROM report_templates WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var conditions []string
	var args []any
	if opts.ReportType != "" {
		conditions = append(conditions, "report_type = ?")
		args = append(args, string(opts.ReportType))
	}
	if opts.ActiveOnly {
		conditions = append(conditions, "is_active = 1")
	}

	query := `SELECT id, is_active, body, created_at, updated_at FROM report_templates`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query templates: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate templates: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, t model.Template) (Record, error) {
	t = t.Clone()
	t.ID = id
	body, err := json.Marshal(t)
	if err != nil {
		return Record{}, fmt.Errorf("store: encode template: %w", err)
	}
	now := s.opts.now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE report_templates SET name = ?, report_type = ?, is_active = ?, body = ?, updated_at = ? WHERE id = ?`,
		t.Name, string(t.ReportType), t.IsActive, string(body), now.UnixNano(), id,
	)
	if err := affected(res, err); err != nil {
		return Record{}, err
	}
	return s.Get(ctx, id)
}

func (s *SQLiteStore) SetActive(ctx context.Context, id string, active bool) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	rec.Template.IsActive = active
	return s.Update(ctx, id, rec.Template)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM report_templates WHERE id = ?`, id)
	return affected(res, err)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                  Record
		active               bool
		body                 string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&rec.ID, &active, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("store: scan template: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &rec.Template); err != nil {
		return Record{}, fmt.Errorf("store: decode template %s: %w", rec.ID, err)
	}
	rec.Template.ID = rec.ID
	rec.Template.IsActive = active
	if rec.Template.Sections == nil {
		rec.Template.Sections = []model.Section{}
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return rec, nil
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("store: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
