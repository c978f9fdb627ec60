package history

import (
	"database/sql"
	"errors"
	"time"

	"github.com/petrijr/stepline/pkg/api"
)

// SQLiteStore is a RunStore backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements RunStore.
var _ RunStore = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the required schema in the given
// database and returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			pipeline TEXT NOT NULL,
			version TEXT NOT NULL,
			status TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			error TEXT
		);
		CREATE TABLE IF NOT EXISTS run_steps (
			run_id TEXT NOT NULL,
			step TEXT NOT NULL,
			version TEXT NOT NULL,
			step_index INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			error TEXT
		);`,
	)
	return err
}

func (s *SQLiteStore) SaveRun(rec *api.RunRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, pipeline, version, status, started_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Pipeline,
		rec.Version,
		string(rec.Status),
		rec.StartedAt.UnixNano(),
		finishedNanos(rec.FinishedAt),
		rec.Error,
	)
	return err
}

func (s *SQLiteStore) UpdateRun(rec *api.RunRecord) error {
	res, err := s.db.Exec(`
		UPDATE runs
		SET pipeline = ?, version = ?, status = ?, started_at = ?, finished_at = ?, error = ?
		WHERE id = ?`,
		rec.Pipeline,
		rec.Version,
		string(rec.Status),
		rec.StartedAt.UnixNano(),
		finishedNanos(rec.FinishedAt),
		rec.Error,
		rec.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRunNotFound
	}

	return nil
}

func (s *SQLiteStore) SaveStep(rec *api.StepRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO run_steps (run_id, step, version, step_index, elapsed_ns, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Step,
		rec.Version,
		rec.Index,
		rec.Elapsed.Nanoseconds(),
		rec.Error,
	)
	return err
}

func (s *SQLiteStore) GetRun(id string) (*api.RunRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, pipeline, version, status, started_at, finished_at, error
		FROM runs
		WHERE id = ?`,
		id,
	)

	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	return rec, nil
}

func (s *SQLiteStore) ListRuns(filter RunFilter) ([]*api.RunRecord, error) {
	query := `
		SELECT id, pipeline, version, status, started_at, finished_at, error
		FROM runs
		WHERE 1 = 1`
	var args []any

	if filter.Pipeline != "" {
		query += " AND pipeline = ?"
		args = append(args, filter.Pipeline)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*api.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}

	return result, rows.Err()
}

func (s *SQLiteStore) ListSteps(runID string) ([]*api.StepRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, step, version, step_index, elapsed_ns, error
		FROM run_steps
		WHERE run_id = ?
		ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*api.StepRecord
	for rows.Next() {
		var rec api.StepRecord
		var elapsedNs int64
		var errStr sql.NullString

		if err := rows.Scan(&rec.RunID, &rec.Step, &rec.Version, &rec.Index, &elapsedNs, &errStr); err != nil {
			return nil, err
		}
		rec.Elapsed = time.Duration(elapsedNs)
		rec.Error = errStr.String
		result = append(result, &rec)
	}

	return result, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*api.RunRecord, error) {
	var rec api.RunRecord
	var statusStr string
	var startedNs, finishedNs int64
	var errStr sql.NullString

	if err := row.Scan(&rec.ID, &rec.Pipeline, &rec.Version, &statusStr, &startedNs, &finishedNs, &errStr); err != nil {
		return nil, err
	}

	rec.Status = api.Status(statusStr)
	rec.StartedAt = time.Unix(0, startedNs)
	if finishedNs != 0 {
		rec.FinishedAt = time.Unix(0, finishedNs)
	}
	rec.Error = errStr.String

	return &rec, nil
}

// finishedNanos maps the zero time to 0 so unfinished runs round-trip.
func finishedNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
