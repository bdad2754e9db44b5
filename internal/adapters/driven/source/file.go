package source

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

// Ensure FileSource implements the interface.
var _ driven.DomainSource = (*FileSource)(nil)

// FileSource reads domain entries from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Describe returns the file path.
func (s *FileSource) Describe() string {
	return s.path
}

// Fetch reads and splits the file contents.
func (s *FileSource) Fetch(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return splitEntries(string(data)), nil
}
