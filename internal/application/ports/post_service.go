package ports

import (
	"context"
	"io"

	"github.com/Asror571/insta-server/internal/domain/post"
)

type PostService interface {
	// Upload persists the stream under a fresh random name, records it in
	// the owner's aggregate and returns the public reference path.
	Upload(ctx context.Context, username, originalFilename string, f io.Reader) (string, error)
	// ListOwn returns the owner's references in upload order; empty when
	// the owner has no aggregate.
	ListOwn(ctx context.Context, username string) ([]string, error)
	// Feed returns every (owner, image) pair in the store, freshly
	// shuffled per call.
	Feed(ctx context.Context) (post.Feed, error)
}
