package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Asror571/insta-server/internal/application/ports"
	domain "github.com/Asror571/insta-server/internal/domain/post"
	"github.com/Asror571/insta-server/internal/infrastructure/mq"
)

// randomNameBytes gives 128 bits of entropy per stored name, hex-encoded to
// 32 characters. Collisions are not handled; they do not happen.
const randomNameBytes = 16

const maxFileNameLen = 100

type PostService struct {
	postRepository domain.Repository
	blobs          ports.BlobStore
	logger         *zap.Logger
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewPostService(
	postRepository domain.Repository,
	blobs ports.BlobStore,
	logger *zap.Logger,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.PostService {
	return &PostService{
		postRepository: postRepository,
		blobs:          blobs,
		logger:         logger,
		mq:             mq,
		mCounter:       mCounter,
	}
}

// Upload runs the pipeline in a fixed order: name, blob write, aggregate
// append. Stream failures surface before any store mutation. An append
// failure after a successful write leaves an orphaned blob; that is accepted
// and logged, never rolled back.
func (ps *PostService) Upload(ctx context.Context, username, originalFilename string, f io.Reader) (string, error) {
	name, err := randomFileName(originalFilename)
	if err != nil {
		return "", fmt.Errorf("derive storage name: %w", err)
	}

	if _, err = ps.blobs.Save(ctx, name, f); err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}

	if err = ps.postRepository.AppendImage(ctx, username, name); err != nil {
		ps.logger.Error("image append failed, stored file orphaned",
			zap.String("username", username),
			zap.String("file", name),
			zap.Error(err),
		)
		return "", err
	}

	if ps.mq != nil {
		ps.mq.GetInputChan() <- mq.Event{
			Id:       uuid.New(),
			TS:       time.Now(),
			Action:   mq.ActionPostUploaded,
			Username: username,
			Image:    name,
			FileName: sanitizeFileName(originalFilename),
		}
	}

	ps.mCounter.WithLabelValues("posts_uploaded_total").Inc()

	return ps.blobs.PublicPath(name), nil
}

func (ps *PostService) ListOwn(ctx context.Context, username string) ([]string, error) {
	images, err := ps.postRepository.FetchImages(ctx, username)
	if err != nil {
		return nil, err
	}

	refs := make([]string, len(images))
	for i, img := range images {
		refs[i] = ps.blobs.PublicPath(img)
	}

	return refs, nil
}

func (ps *PostService) Feed(ctx context.Context) (domain.Feed, error) {
	aggs, err := ps.postRepository.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make(domain.Feed, 0)
	for _, a := range aggs {
		for _, img := range a.Images {
			feed = append(feed, domain.FeedEntry{
				Username: a.Username,
				Image:    ps.blobs.PublicPath(img),
			})
		}
	}

	// Fisher–Yates, freshly randomized per call; callers get no ordering
	// guarantee beyond "same multiset".
	mrand.Shuffle(len(feed), func(i, j int) {
		feed[i], feed[j] = feed[j], feed[i]
	})

	return feed, nil
}

// randomFileName keeps the original extension verbatim; only the base name
// is replaced by random hex.
func randomFileName(original string) (string, error) {
	buf := make([]byte, randomNameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf) + filepath.Ext(original), nil
}

// sanitizeFileName normalizes the client-supplied name to plain ASCII for
// event payloads and audit logs. The stored name never depends on it.
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := path.Ext(s)
	base := strings.TrimSuffix(s, ext)
	ext = strings.ToLower(ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if len(base)+len(ext) > maxFileNameLen {
		base = base[:maxFileNameLen-len(ext)]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
