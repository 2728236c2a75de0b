package ai

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/doeshing/chatty-go/internal/ports"
)

// ndjsonStream yields fragments from a streaming /api/generate body: one
// JSON object per line, ending with the object carrying done=true. Fragments
// are surfaced in arrival order with no buffering beyond the decoder's.
type ndjsonStream struct {
	body io.ReadCloser
	dec  *json.Decoder
	done bool
}

func newNDJSONStream(body io.ReadCloser) *ndjsonStream {
	return &ndjsonStream{body: body, dec: json.NewDecoder(body)}
}

func (s *ndjsonStream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	var chunk generateChunk
	if err := s.dec.Decode(&chunk); err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			// Server closed the connection without a done marker.
			return "", io.EOF
		}
		return "", classifyTransport(err)
	}

	if chunk.Done {
		s.done = true
		// The terminal object may still carry text.
		if chunk.Response != "" {
			return chunk.Response, nil
		}
		return "", io.EOF
	}
	return chunk.Response, nil
}

func (s *ndjsonStream) Close() error {
	s.done = true
	return s.body.Close()
}

// valueStream adapts a fully resolved response to the FragmentStream shape
// so the renderer has one code path regardless of mode. It yields exactly
// one fragment, even when the answer is blank.
type valueStream struct {
	text    string
	yielded bool
}

func newValueStream(text string) *valueStream {
	return &valueStream{text: text}
}

func (s *valueStream) Next() (string, error) {
	if s.yielded {
		return "", io.EOF
	}
	s.yielded = true
	return s.text, nil
}

func (s *valueStream) Close() error {
	return nil
}

var (
	_ ports.FragmentStream = (*ndjsonStream)(nil)
	_ ports.FragmentStream = (*valueStream)(nil)
)
