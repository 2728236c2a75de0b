// Package benchmark persists per-run performance records, in SQLite when the
// driver can open the database and in a jsonl file otherwise.
package benchmark

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/pkg/filesystem"
	"github.com/doeshing/chatty-go/internal/ports"
)

// SQLiteStore persists benchmark records in a SQLite database. When the
// database cannot be opened or initialized, fallback carries the records
// instead and db stays nil.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the benchmark database under dir,
// defaulting to ~/.chatty/benchmarks/bench.db. On any open/init failure it
// degrades to the jsonl file store next to the intended database.
func NewSQLiteStore(dir string) *SQLiteStore {
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".chatty", "benchmarks")
	}
	path := filepath.Join(dir, "bench.db")
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return degradedStore(path)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return degradedStore(path)
	}
	return store
}

func degradedStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:     path,
		fallback: &FileStore{path: fallbackPath(path)},
	}
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS benchmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		timestamp TEXT,
		model TEXT,
		task TEXT,
		elapsed_ms INTEGER,
		file_size INTEGER,
		prompt_length INTEGER,
		response_length INTEGER,
		fragments INTEGER,
		success INTEGER,
		error_kind TEXT
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.BenchmarkRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO benchmarks
		(session_id, timestamp, model, task, elapsed_ms, file_size, prompt_length, response_length, fragments, success, error_kind)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.SessionID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Model,
		string(record.Task),
		record.ElapsedMS,
		record.FileSize,
		record.PromptLength,
		record.ResponseLength,
		record.Fragments,
		boolToInt(record.Success),
		string(record.ErrorKind),
	)
	return err
}

// Records returns the most recent benchmark entries (limit optional).
func (s *SQLiteStore) Records(limit int) ([]domain.BenchmarkRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit)
	}
	builder := strings.Builder{}
	builder.WriteString(`SELECT session_id, timestamp, model, task, elapsed_ms, file_size,
		prompt_length, response_length, fragments, success, error_kind
		FROM benchmarks ORDER BY datetime(timestamp) DESC`)
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.BenchmarkRecord
	for rows.Next() {
		var rec domain.BenchmarkRecord
		var ts, task, kind string
		var success int
		if err := rows.Scan(&rec.SessionID, &ts, &rec.Model, &task, &rec.ElapsedMS,
			&rec.FileSize, &rec.PromptLength, &rec.ResponseLength, &rec.Fragments, &success, &kind); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Task = domain.TaskType(task)
		rec.Success = success == 1
		rec.ErrorKind = domain.ErrorKind(kind)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportJSON writes the benchmark table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func fallbackPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "bench.jsonl")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.BenchmarkStore = (*SQLiteStore)(nil)
