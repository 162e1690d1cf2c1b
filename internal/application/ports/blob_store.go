package ports

import (
	"context"
	"io"
)

// BlobStore persists uploaded binaries and resolves their public paths.
type BlobStore interface {
	// Save streams r into a blob named name; the write must look atomic to
	// readers (fully present or absent).
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// PublicPath returns the client-facing reference for a stored name,
	// e.g. "/uploads/<name>".
	PublicPath(name string) string
}
