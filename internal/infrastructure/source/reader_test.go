package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/chatty-go/internal/domain"
)

func TestReadReturnsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.py")
	if err := os.WriteFile(path, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := NewReader().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "print('hi')\n" {
		t.Errorf("got %q", data)
	}
}

func TestReadMissingFileIsInvalidInput(t *testing.T) {
	_, err := NewReader().Read(filepath.Join(t.TempDir(), "nope.py"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := domain.KindOf(err); kind != domain.ErrKindInvalidInput {
		t.Errorf("got kind %q, want %q", kind, domain.ErrKindInvalidInput)
	}
}
