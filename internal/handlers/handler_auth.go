package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/SscSPs/mf_receipt_desk/internal/middleware"
	"github.com/SscSPs/mf_receipt_desk/internal/platform/config"
	"github.com/SscSPs/mf_receipt_desk/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
	desks       portssvc.DeskLifecycleSvc
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, desks portssvc.DeskLifecycleSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: as,
		desks:       desks,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := NewAuthHandler(services.Auth, services.Desk, cfg)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)

		authed := auth.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		authed.POST("/logout", h.Logout)
		authed.GET("/status", h.Status)
	}
}

// Login godoc
// @Summary Cashier login
// @Description Authenticates against the MF backend, stores the session and returns a desk token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	expiresAt := time.Now().Add(h.jwtDuration)
	token, err := utils.GenerateJWT(session.Username, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      dto.ToSessionResponse(session),
	})
}

// Logout godoc
// @Summary Cashier logout
// @Description Ends the MF backend session, clears the stored keys and closes the cashier's desks.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LogoutResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := h.authService.Logout(ctx, username)
	resp := dto.LogoutResponse{Message: "Logged out"}
	if err != nil {
		if !isUpstream(err) {
			respondError(c, err, "Failed to log out")
			return
		}
		resp.UpstreamError = apperrors.UserMessage(err)
	}
	resp.ClosedDesks = h.desks.CloseAll(ctx, username)

	c.JSON(http.StatusOK, resp)
}

// Status godoc
// @Summary Session status
// @Description Asks the MF backend whether the cashier's stored session is still valid.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	username, ok := currentUser(c)
	if !ok {
		return
	}
	authenticated, err := h.authService.IsAuthenticated(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "Failed to check session")
		return
	}
	c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: authenticated, Username: username})
}
