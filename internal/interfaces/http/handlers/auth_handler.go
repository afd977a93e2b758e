package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/config"
	domainservice "github.com/finsmart/finsmart/internal/domain/service"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// AuthHandler issues bearer tokens for the demo principal directory.
type AuthHandler struct {
	directory domainservice.UserDirectory
	cfg       *config.AuthConfig
	log       logger.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(directory domainservice.UserDirectory, cfg *config.AuthConfig, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		directory: directory,
		cfg:       cfg,
		log:       log.WithComponent("auth_handler"),
	}
}

// Login handles POST /api/v1/auth/login. This path sits in the strict
// rate-limit class.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}
	if req.Email == "" {
		dto.SendError(c, errors.ErrMissingField("email"))
		return
	}
	if req.Password == "" {
		dto.SendError(c, errors.ErrMissingField("password"))
		return
	}

	userID, err := h.directory.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn(c.Request.Context(), "rejected login attempt",
			logger.String("email", req.Email),
		)
		dto.SendError(c, err)
		return
	}

	now := time.Now().UTC()
	ttl := time.Duration(h.cfg.TokenTTL) * time.Second
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": req.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.log.Error(c.Request.Context(), "failed to sign token", err)
		dto.SendError(c, errors.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.cfg.TokenTTL,
	})
}
