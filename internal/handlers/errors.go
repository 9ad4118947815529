package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/services"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/SscSPs/mf_receipt_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError translates a service error into a status code and JSON body.
// Upstream messages are passed through verbatim; anything unclassified is a 500 with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		declined *services.DeclinedError
		fields   apperrors.FieldErrors
		server   *apperrors.ServerError
		timeout  *apperrors.TimeoutError
		network  *apperrors.NetworkError
		parse    *apperrors.ParseError
	)
	switch {
	case errors.As(err, &declined):
		c.JSON(http.StatusConflict, dto.PromptResponse{Error: declined.Error(), Prompt: declined.Prompt})
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: fields})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &server):
		logger.Warn("MF backend rejected request", slog.Int("upstream_status", server.Status), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: apperrors.UserMessage(server)})
	case errors.As(err, &timeout):
		logger.Warn("MF backend timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: apperrors.UserMessage(timeout)})
	case errors.As(err, &network):
		logger.Warn("MF backend unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: apperrors.UserMessage(network)})
	case errors.As(err, &parse):
		logger.Error("Unexpected MF backend response", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: apperrors.UserMessage(parse)})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// currentUser reads the username put in context by AuthMiddleware and answers 401 when it is missing.
func currentUser(c *gin.Context) (string, bool) {
	username, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Username not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return username, true
}

// bindError answers 400 for a malformed body.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// isUpstream reports whether err came from talking to the MF backend.
func isUpstream(err error) bool {
	var (
		server  *apperrors.ServerError
		timeout *apperrors.TimeoutError
		network *apperrors.NetworkError
		parse   *apperrors.ParseError
	)
	return errors.As(err, &server) || errors.As(err, &timeout) || errors.As(err, &network) || errors.As(err, &parse)
}
