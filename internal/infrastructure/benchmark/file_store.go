package benchmark

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/pkg/filesystem"
	"github.com/doeshing/chatty-go/internal/ports"
)

// FileStore appends benchmark records to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new store under ~/.chatty/benchmarks/bench.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(filesystem.UserHomeDir(), ".chatty", "benchmarks", "bench.jsonl"),
	}
}

// Save implements ports.BenchmarkStore.
func (f *FileStore) Save(record domain.BenchmarkRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Records loads stored entries, newest first (best-effort).
func (f *FileStore) Records(limit int) ([]domain.BenchmarkRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.BenchmarkRecord
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) == 0 {
			continue
		}
		var rec domain.BenchmarkRecord
		if err := json.Unmarshal(lines[i], &rec); err == nil {
			records = append(records, rec)
		}
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records, nil
}

// ExportJSON copies the store to dest in jsonl form.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
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

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.BenchmarkStore = (*FileStore)(nil)
