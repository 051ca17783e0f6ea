package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamaashishjha/redis-token-black-list/internal/usecase"
)

// RevocationHandler exposes the blacklist operations over HTTP.
type RevocationHandler struct {
	revocations *usecase.RevocationService
}

// NewRevocationHandler builds a revocation handler instance.
func NewRevocationHandler(revocations *usecase.RevocationService) *RevocationHandler {
	return &RevocationHandler{revocations: revocations}
}

// RegisterRoutes wires the token endpoints onto the provided router group.
func (h *RevocationHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/revoke", h.Revoke)
	group.POST("/revoke-all", h.RevokeAll)
	group.POST("/validate", h.Validate)
}

// Revoke godoc
// @Summary Revoke a single access token
// @Description Blacklists the presented access token and tears down the user's sessions.
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body TokenRevokeRequest true "Access token to revoke"
// @Success 202 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/tokens/revoke [post]
func (h *RevocationHandler) Revoke(c *gin.Context) {
	var req TokenRevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "access_token is required"))
		return
	}

	if err := h.revocations.RevokeUserAccessToken(c.Request.Context(), req.AccessToken); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "revocation failed"))
		return
	}

	c.JSON(http.StatusAccepted, MessageResponse{Message: "token revoked"})
}

// RevokeAll godoc
// @Summary Revoke all tokens for a user
// @Description Cascades over every valid access and refresh token for the user under one client.
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body TokenRevokeAllRequest true "Cascade scope"
// @Success 202 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/tokens/revoke-all [post]
func (h *RevocationHandler) RevokeAll(c *gin.Context) {
	var req TokenRevokeAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	var err error
	switch {
	case req.AccessToken != "":
		err = h.revocations.RevokeAllTokensViaAccessToken(c.Request.Context(), req.AccessToken)
	case req.UserID > 0 && req.ClientID > 0:
		err = h.revocations.RevokeAllTokensViaUserIDAndClientID(c.Request.Context(), req.UserID, req.ClientID)
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "either access_token or user_id and client_id are required"))
		return
	}

	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "either access_token or user_id and client_id are required"},
		}, http.StatusInternalServerError, "revocation failed")
		return
	}

	c.JSON(http.StatusAccepted, MessageResponse{Message: "tokens revoked"})
}

// Validate godoc
// @Summary Check a token against the blacklist
// @Description Reports whether the presented token is still active.
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body TokenValidateRequest true "Token and kind"
// @Success 200 {object} TokenValidateResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/tokens/validate [post]
func (h *RevocationHandler) Validate(c *gin.Context) {
	var req TokenValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "token and kind are required"))
		return
	}

	var err error
	if req.Kind == "refresh" {
		err = h.revocations.ValidateRefreshToken(c.Request.Context(), req.Token)
	} else {
		err = h.revocations.ValidateAccessToken(c.Request.Context(), req.Token)
	}

	if err != nil {
		if errors.Is(err, usecase.ErrTokenRevoked) {
			c.JSON(http.StatusOK, TokenValidateResponse{Active: false})
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "validation failed"))
		return
	}

	c.JSON(http.StatusOK, TokenValidateResponse{Active: true})
}
