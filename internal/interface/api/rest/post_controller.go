package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/infrastructure/jwt"
	postDTO "github.com/Asror571/insta-server/internal/interface/api/rest/dto/post"
	"github.com/Asror571/insta-server/internal/interface/api/rest/middleware"
)

// 10MB
const maxSize = int64(10 << 20)

type PostController struct {
	postService ports.PostService
	logger      *zap.Logger
}

func NewPostController(
	r *gin.Engine,
	postService ports.PostService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	userService ports.UserService,
) *PostController {
	pc := &PostController{
		postService: postService,
		logger:      logger,
	}

	gate := middleware.AuthMiddleware(jwtService, userService)
	r.GET(RoutePosts, gate, pc.ListPostsHandler)
	r.POST(RoutePosts, gate, pc.UploadPostHandler)
	r.GET(RouteFeed, gate, pc.FeedHandler)

	return pc
}

func (pc *PostController) ListPostsHandler(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
		return
	}

	refs, err := pc.postService.ListOwn(c.Request.Context(), u.Username)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get posts"},
		)
		pc.logger.Error("ListOwn() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, refs)
}

func (pc *PostController) UploadPostHandler(c *gin.Context) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please authenticate."})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fh.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to read uploaded file"},
		)
		pc.logger.Error("FormFile Open() error", zap.Error(err))
		return
	}
	defer f.Close()

	filePath, err := pc.postService.Upload(c.Request.Context(), u.Username, fh.Filename, f)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "internal server error during file upload"},
		)
		pc.logger.Error("Upload() error", zap.Error(err), zap.String("username", u.Username))
		return
	}

	c.JSON(http.StatusOK, postDTO.UploadResponse{
		OK:       true,
		FilePath: filePath,
	})
}

func (pc *PostController) FeedHandler(c *gin.Context) {
	feed, err := pc.postService.Feed(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to assemble feed"},
		)
		pc.logger.Error("Feed() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, postDTO.ToResponseFeed(feed))
}
