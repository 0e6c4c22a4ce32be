package git

import (
	"context"

	"github.com/masmgr/folio/internal/loc"
)

// LineReader produces per-line records for a repository snapshot.
type LineReader interface {
	ReadLines(ctx context.Context) ([]loc.LineRecord, error)
}

// Compile-time interface conformance check.
var _ LineReader = (*BlameReader)(nil)
