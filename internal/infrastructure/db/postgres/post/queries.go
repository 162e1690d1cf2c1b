package post

const (
	// InsertAggregate creates the empty per-username document; a no-op when
	// it already exists.
	InsertAggregate = `
		INSERT INTO posts (username)
		VALUES ($1)
		ON CONFLICT (username) DO NOTHING
	`
	// AppendImage is the upsert-append. A single statement, so the store's
	// per-row atomicity serializes concurrent appends for one username.
	AppendImage = `
		INSERT INTO posts (username, images)
		VALUES ($1, ARRAY[$2::text])
		ON CONFLICT (username) DO UPDATE
		SET images = posts.images || EXCLUDED.images
	`
	SelectImagesByUsername = `
		SELECT images
		FROM posts
		WHERE username = $1
	`
	SelectAggregates = `
		SELECT username, images
		FROM posts
	`
	DeleteAggregatesByUsernames = `
		DELETE FROM posts
		WHERE username = ANY($1)
	`
)
