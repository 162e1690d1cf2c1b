package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/Asror571/insta-server/internal/infrastructure/db/postgres/migrations"
)

// Migrate brings the schema up to date with the embedded goose migrations.
// It opens its own database/sql connection because goose does not speak pgx
// pools.
func Migrate(ctx context.Context, logger *zap.Logger, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err = goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("db migrations applied")

	return nil
}
