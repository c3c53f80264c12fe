package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"synack/pkg/synop/ast"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id          TEXT PRIMARY KEY,
	station_id  TEXT,
	raw         TEXT NOT NULL,
	decoded     TEXT NOT NULL,
	warnings    INTEGER NOT NULL DEFAULT 0,
	received_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_received_at ON reports(received_at);
CREATE INDEX IF NOT EXISTS idx_reports_station_id  ON reports(station_id);
`

// Record is one archived decode: the raw telegram text alongside its
// rendered JSON tree.
type Record struct {
	ID         string
	StationID  string
	Raw        string
	Decoded    json.RawMessage
	Warnings   int
	ReceivedAt time.Time
}

// Store persists decoded reports in SQLite. Safe for concurrent use;
// the driver serializes writes and WAL mode keeps readers unblocked.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the archive database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "archive")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configuring archive: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	logger.Info("archive opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Save renders and stores one decoded report, returning the stored
// record with its generated id.
func (s *Store) Save(ctx context.Context, report *ast.Report, raw string) (*Record, error) {
	decoded, err := json.Marshal(report.Render())
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	rec := &Record{
		ID:         uuid.NewString(),
		Raw:        raw,
		Decoded:    decoded,
		Warnings:   report.Warnings.Count(),
		ReceivedAt: time.Now().UTC(),
	}
	if !report.StationID.IsNull() {
		rec.StationID = report.StationID.AsString()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, station_id, raw, decoded, warnings, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StationID, rec.Raw, string(rec.Decoded), rec.Warnings, rec.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting report: %w", err)
	}

	s.logger.Debug("report archived", "id", rec.ID, "station", rec.StationID)
	return rec, nil
}

// Get fetches one archived record by id. Returns sql.ErrNoRows when the
// id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, station_id, raw, decoded, warnings, received_at
		 FROM reports WHERE id = ?`, id)
	return scanRecord(row)
}

// List returns up to limit records, newest first. A station filter may
// be empty.
func (s *Store) List(ctx context.Context, station string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, station_id, raw, decoded, warnings, received_at
		 FROM reports`
	args := []interface{}{}
	if station != "" {
		query += " WHERE station_id = ?"
		args = append(args, station)
	}
	query += " ORDER BY received_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records received before the cutoff and reports how many
// were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE received_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("archive pruned", "removed", n, "cutoff", cutoff)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var decoded string
	if err := row.Scan(&rec.ID, &rec.StationID, &rec.Raw, &decoded, &rec.Warnings, &rec.ReceivedAt); err != nil {
		return nil, err
	}
	rec.Decoded = json.RawMessage(decoded)
	return &rec, nil
}
