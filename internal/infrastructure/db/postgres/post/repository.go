package post

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Asror571/insta-server/internal/domain/post"
	"github.com/Asror571/insta-server/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) post.Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureAggregate(ctx context.Context, username string) error {
	_, err := r.db.Exec(ctx, InsertAggregate, username)
	return err
}

func (r *Repository) AppendImage(ctx context.Context, username, image string) error {
	_, err := r.db.Exec(ctx, AppendImage, username, image)
	return err
}

func (r *Repository) FetchImages(ctx context.Context, username string) ([]string, error) {
	var images []string
	err := r.db.QueryRow(ctx, SelectImagesByUsername, username).Scan(&images)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}

	return images, nil
}

func (r *Repository) FetchAll(ctx context.Context) (post.Aggregates, error) {
	rows, err := r.db.Query(ctx, SelectAggregates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggs post.Aggregates
	for rows.Next() {
		a := new(post.Aggregate)

		if err = rows.Scan(
			&a.Username,
			&a.Images,
		); err != nil {
			return nil, err
		}

		aggs = append(aggs, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return aggs, nil
}

func (r *Repository) DeleteAggregates(ctx context.Context, usernames []string) error {
	_, err := r.db.Exec(ctx, DeleteAggregatesByUsernames, usernames)
	return err
}
