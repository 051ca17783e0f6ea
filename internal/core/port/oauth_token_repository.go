package port

import (
	"context"
	"time"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

// OAuthTokenRepository reads the authoritative token database. All queries are
// read-only; the relational schema is owned by the issuing application.
type OAuthTokenRepository interface {
	// GetAccessToken fetches a single access token row by id.
	GetAccessToken(ctx context.Context, id string) (*domain.AccessToken, error)
	// ListActiveAccessTokens returns access tokens for (clientID, userID)
	// whose expiry is on or after the supplied cutoff.
	ListActiveAccessTokens(ctx context.Context, clientID, userID int64, cutoff time.Time) ([]domain.AccessToken, error)
	// ListActiveRefreshTokens returns unrevoked refresh tokens referencing any
	// of the supplied access token ids with expiry on or after the cutoff.
	ListActiveRefreshTokens(ctx context.Context, accessTokenIDs []string, cutoff time.Time) ([]domain.RefreshToken, error)
}
