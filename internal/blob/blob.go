// Package blob stores product images under opaque storage paths.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type Store interface {
	// Save writes the blob and returns nothing; the caller picks the path.
	Save(ctx context.Context, path string, r io.Reader) error
	// Delete removes the blob. A missing blob is not an error.
	Delete(ctx context.Context, path string) error
	// Resolve reports whether the path points at an existing blob.
	Resolve(ctx context.Context, path string) bool
}
