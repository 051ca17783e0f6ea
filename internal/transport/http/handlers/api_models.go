package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse describes the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse describes the readiness payload with per-dependency status.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// TokenRevokeRequest defines the payload for single-token revocation.
type TokenRevokeRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// TokenRevokeAllRequest defines the payload for cascade revocation. Either an
// access token or a user id plus client id pair selects the scope.
type TokenRevokeAllRequest struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	ClientID    int64  `json:"client_id"`
}

// TokenValidateRequest defines the payload for blacklist validation.
type TokenValidateRequest struct {
	Token string `json:"token" binding:"required"`
	Kind  string `json:"kind" binding:"required,oneof=access refresh"`
}

// TokenValidateResponse reports whether the token survived validation.
type TokenValidateResponse struct {
	Active bool `json:"active"`
}
