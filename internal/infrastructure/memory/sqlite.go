package memory

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// SQLiteRepository persists interaction records in a SQLite database. When
// the database cannot be opened it degrades to a no-op: the assistant keeps
// working without durable history.
type SQLiteRepository struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

var _ ports.InteractionRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository creates (or opens) the database at path.
func NewSQLiteRepository(path string) *SQLiteRepository {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteRepository{path: path}
	}
	repo := &SQLiteRepository{db: db, path: path}
	if err := repo.init(); err != nil {
		_ = db.Close()
		return &SQLiteRepository{path: path}
	}
	return repo
}

func (r *SQLiteRepository) init() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		request_id TEXT,
		input TEXT,
		approach TEXT,
		result_type TEXT,
		success INTEGER,
		message TEXT
	);`)
	return err
}

// Save inserts a new record. A degraded repository drops it silently.
func (r *SQLiteRepository) Save(rec domain.InteractionRecord) error {
	if r.db == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.Exec(`INSERT INTO interactions
		(timestamp, request_id, input, approach, result_type, success, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Format(time.RFC3339),
		rec.RequestID,
		rec.Input,
		string(rec.Approach),
		string(rec.Type),
		boolToInt(rec.Success),
		rec.Message,
	)
	return err
}

// Records returns interaction rows, newest first. limit <= 0 means all;
// search filters on input and message.
func (r *SQLiteRepository) Records(limit int, search string) ([]domain.InteractionRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, request_id, input, approach, result_type, success, message FROM interactions")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE input LIKE ? OR message LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := r.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InteractionRecord
	for rows.Next() {
		var rec domain.InteractionRecord
		var ts, approach, resultType string
		var success int
		if err := rows.Scan(&ts, &rec.RequestID, &rec.Input, &approach, &resultType, &success, &rec.Message); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Approach = domain.Approach(approach)
		rec.Type = domain.ResultType(resultType)
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all interaction rows.
func (r *SQLiteRepository) Clear() error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.Exec("DELETE FROM interactions")
	return err
}

// Path returns the database path.
func (r *SQLiteRepository) Path() string {
	return r.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
