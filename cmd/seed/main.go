// Seed fills a local instance with fake feed content: it clears the fake
// users' aggregates, fabricates a handful of image files in the upload dir
// and appends each one to a random fake user. Dev-only tooling; never run it
// against anything you care about.
package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	mrand "math/rand/v2"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Asror571/insta-server/config"
	"github.com/Asror571/insta-server/internal/infrastructure/db/postgres"
	postRepo "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/post"
	"github.com/Asror571/insta-server/internal/infrastructure/storage"
)

var fakeUsers = []string{"nature_lover", "travel_blogger", "food_critic"}

const imageCount = 5

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	if err = godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using environment and defaults")
	}
	cfg := config.Load()

	if err = run(ctx, logger, cfg); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, cfg config.Config) error {
	dsn, err := cfg.DBDSN()
	if err != nil {
		return err
	}
	db, err := postgres.New(ctx, logger, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err = postgres.Migrate(ctx, logger, dsn); err != nil {
		return err
	}

	blobs, err := storage.NewDisk(logger, cfg.Storage)
	if err != nil {
		return err
	}
	posts := postRepo.NewRepository(db)

	logger.Info("clearing old fake posts", zap.Strings("users", fakeUsers))
	if err = posts.DeleteAggregates(ctx, fakeUsers); err != nil {
		return fmt.Errorf("clear fake aggregates: %w", err)
	}

	for i := 0; i < imageCount; i++ {
		name, content, err := fakeImage()
		if err != nil {
			return err
		}
		if _, err = blobs.Save(ctx, name, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("store seed image: %w", err)
		}

		owner := fakeUsers[mrand.IntN(len(fakeUsers))]
		if err = posts.AppendImage(ctx, owner, name); err != nil {
			return fmt.Errorf("append seed image: %w", err)
		}

		logger.Info("seeded image", zap.String("owner", owner), zap.String("file", name))
	}

	logger.Info("seeding done", zap.Int("images", imageCount))

	return nil
}

// fakeImage fabricates a uniquely named pseudo-image; the bytes only need to
// exist, nothing renders them.
func fakeImage() (string, []byte, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	name := "seed_" + hex.EncodeToString(buf) + ".jpg"

	content := make([]byte, 1024)
	if _, err := rand.Read(content); err != nil {
		return "", nil, err
	}

	return name, content, nil
}
