package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/application/services"
	userDB "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/user"
	"github.com/Asror571/insta-server/internal/interface/api/rest/dto/auth"
	"github.com/Asror571/insta-server/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteSignup, ac.SignupHandler)
	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) SignupHandler(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if errs := validator.ValidateSignup(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "username and password are required",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.Register(c.Request.Context(), ports.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, userDB.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		ac.logger.Error("Register() error", zap.Error(err))
		return
	}

	token, err := ac.authService.IssueToken(u)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to issue a token"},
		)
		ac.logger.Error("IssueToken() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		return
	}

	c.JSON(http.StatusCreated, auth.TokenResponse{
		OK:    true,
		Token: token,
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "username and password are required",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		ac.logger.Error("FindByUsername() error", zap.Error(err))
		return
	}
	if u == nil {
		// identical body for unknown username and wrong password, so
		// responses carry no user-enumeration signal
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to issue a token"},
		)
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		OK:    true,
		Token: token,
	})
}
