package ai

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/doeshing/chatty-go/internal/domain"
)

func ndjsonBody(lines ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n")))
}

func TestNDJSONStreamTerminalChunkMayCarryText(t *testing.T) {
	stream := newNDJSONStream(ndjsonBody(
		`{"response":"almost"}`,
		`{"response":" done","done":true}`,
	))
	defer stream.Close()

	for _, want := range []string{"almost", " done"} {
		got, err := stream.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v after done marker, want io.EOF", err)
	}
}

func TestNDJSONStreamHandlesMissingDoneMarker(t *testing.T) {
	stream := newNDJSONStream(ndjsonBody(`{"response":"partial"}`))
	defer stream.Close()

	got, err := stream.Next()
	if err != nil || got != "partial" {
		t.Fatalf("got (%q, %v), want (\"partial\", nil)", got, err)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v when the server closed without done, want io.EOF", err)
	}
}

func TestNDJSONStreamMalformedChunk(t *testing.T) {
	stream := newNDJSONStream(ndjsonBody(`{"response":"ok"}`, `not json at all`))
	defer stream.Close()

	if _, err := stream.Next(); err != nil {
		t.Fatalf("first chunk failed: %v", err)
	}
	_, err := stream.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("got %v for a malformed chunk, want a transport error", err)
	}
	if kind := domain.KindOf(err); kind != domain.ErrKindConnection {
		t.Errorf("got kind %q, want %q", kind, domain.ErrKindConnection)
	}
}

func TestNDJSONStreamStopsAfterClose(t *testing.T) {
	stream := newNDJSONStream(ndjsonBody(`{"response":"a"}`, `{"response":"b"}`))
	if err := stream.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v after Close, want io.EOF", err)
	}
}

func TestValueStreamYieldsExactlyOnce(t *testing.T) {
	stream := newValueStream("whole answer")
	defer stream.Close()

	got, err := stream.Next()
	if err != nil || got != "whole answer" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v on second Next, want io.EOF", err)
	}
}

func TestValueStreamYieldsBlankAnswer(t *testing.T) {
	// A blank resolved value is still one fragment; the renderer decides
	// whether blank output counts as empty.
	stream := newValueStream("")
	defer stream.Close()

	got, err := stream.Next()
	if err != nil || got != "" {
		t.Fatalf("got (%q, %v), want one blank fragment", got, err)
	}
	if _, err := stream.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v on second Next, want io.EOF", err)
	}
}
