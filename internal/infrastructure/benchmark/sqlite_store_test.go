package benchmark

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(t.TempDir())
	if store.db == nil {
		t.Fatal("sqlite database did not open")
	}

	for _, session := range []string{"first", "second"} {
		if err := store.Save(testRecord(session, 42)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	records, err := store.Records(0)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	rec := records[0]
	if rec.Model != "deepseek-coder" || rec.ElapsedMS != 42 || !rec.Success {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestDegradedStoreSharesOneFallback(t *testing.T) {
	dir := t.TempDir()
	store := degradedStore(filepath.Join(dir, "bench.db"))

	if store.fallback == nil {
		t.Fatal("degraded store has no fallback")
	}

	// All writes must land in the one shared jsonl store.
	var wg sync.WaitGroup
	for _, session := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			if err := store.Save(testRecord(session, 1)); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(session)
	}
	wg.Wait()

	records, err := store.Records(0)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
	if store.Path() != filepath.Join(dir, "bench.db") {
		t.Errorf("Path should still report the intended database: %q", store.Path())
	}
}
