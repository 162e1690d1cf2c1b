package user

const (
	SelectUserByUUID = `
		SELECT id, uuid, username, password_hash, email, full_name, created_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByUsername = `
		SELECT id, uuid, username, password_hash, email, full_name, created_at
		FROM users
		WHERE username = $1
	`
	InsertUser = `
		INSERT INTO users (uuid, username, password_hash, email, full_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, uuid, username, password_hash, email, full_name, created_at
	`
)
