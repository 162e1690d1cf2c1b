package post

import (
	"context"
)

type Repository interface {
	// EnsureAggregate creates the empty aggregate for username if it does
	// not exist yet. Idempotent.
	EnsureAggregate(ctx context.Context, username string) error
	// AppendImage appends image to the username's aggregate in a single
	// atomic store mutation, creating the aggregate if missing. Concurrent
	// appends for the same username must all survive.
	AppendImage(ctx context.Context, username, image string) error
	// FetchImages returns the aggregate's images in upload order, or an
	// empty slice when no aggregate exists.
	FetchImages(ctx context.Context, username string) ([]string, error)
	FetchAll(ctx context.Context) (Aggregates, error)
	// DeleteAggregates removes whole aggregates for the given usernames.
	// Only dev tooling (seeding) uses this.
	DeleteAggregates(ctx context.Context, usernames []string) error
}
