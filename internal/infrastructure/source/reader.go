// Package source provides the file-bytes capability behind ports.SourceReader.
package source

import (
	"fmt"
	"os"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

// Reader reads source files from the local filesystem.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the file's bytes. An unreadable path is an input error: the
// pipeline never gets to the network for it.
func (r *Reader) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrKindInvalidInput, fmt.Sprintf("cannot read %s", path), err)
	}
	return data, nil
}

var _ ports.SourceReader = (*Reader)(nil)
