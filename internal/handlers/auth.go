package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service   *services.Service
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *services.Service, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		service:   service,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// AuthResponse carries the session token of a fresh login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login checks the credentials and starts a new session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// generateJWT issues a token for user. Every token gets its own session id,
// which keys the write cooldown.
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
