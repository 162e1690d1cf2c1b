package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Asror571/insta-server/config"
)

// Disk stores uploaded blobs as plain files under a single directory; the
// router serves that directory back under the public prefix.
type Disk struct {
	logger       *zap.Logger
	dir          string
	publicPrefix string
}

func NewDisk(logger *zap.Logger, cfg config.Storage) (*Disk, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.UploadDir, err)
	}

	logger.Info("upload dir ready", zap.String("dir", cfg.UploadDir))

	return &Disk{
		logger:       logger,
		dir:          cfg.UploadDir,
		publicPrefix: cfg.PublicPrefix,
	}, nil
}

// Save streams r into the blob named name. The stream goes through a temp
// file first and is renamed into place, so a reader never observes a
// half-written blob. On any failure the temp file is removed and the final
// name does not exist.
func (d *Disk) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("write %s: %w", name, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(d.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("finalize %s: %w", name, err)
	}

	return n, nil
}

func (d *Disk) PublicPath(name string) string {
	return path.Join(d.publicPrefix, name)
}

func (d *Disk) Dir() string { return d.dir }

// ctxReader aborts the copy as soon as the request context is cancelled, so
// an abandoned upload stops writing instead of draining the dead stream.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
