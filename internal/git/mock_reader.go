package git

import (
	"context"

	"github.com/masmgr/folio/internal/loc"
)

// MockLineReader is a test double for BlameReader.
// It allows tests to provide predefined records without needing a real Git repository.
type MockLineReader struct {
	Records []loc.LineRecord
	Error   error
}

// NewMockLineReader creates a new MockLineReader with the given data.
func NewMockLineReader(records []loc.LineRecord, err error) *MockLineReader {
	return &MockLineReader{
		Records: records,
		Error:   err,
	}
}

// ReadLines returns the predefined records or error.
func (m *MockLineReader) ReadLines(_ context.Context) ([]loc.LineRecord, error) {
	return m.Records, m.Error
}

// Compile-time interface conformance check.
var _ LineReader = (*MockLineReader)(nil)
