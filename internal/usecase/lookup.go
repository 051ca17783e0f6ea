package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
)

// ErrInvalidArgument indicates a caller contract violation: a cascade lookup
// needs either an anchor access token id or a client id.
var ErrInvalidArgument = errors.New("either access token id or client id must be provided")

// TokenLookupService resolves the set of currently valid tokens affected by a
// revocation trigger against the authoritative token database.
type TokenLookupService struct {
	tokens port.OAuthTokenRepository
	now    func() time.Time
}

// NewTokenLookupService constructs a TokenLookupService instance.
func NewTokenLookupService(tokens port.OAuthTokenRepository) *TokenLookupService {
	service := &TokenLookupService{tokens: tokens}
	service.now = func() time.Time { return time.Now().UTC() }
	return service
}

// WithClock overrides the service clock for deterministic tests.
func (s *TokenLookupService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// TokensToRevoke returns all currently valid access tokens for the user under
// one client, plus the refresh tokens referencing them. The client scope comes
// either from the anchor access token's row or from an explicit client id;
// exactly one of the two must be supplied. Validity is decided at date
// granularity: anything expiring on or after the start of today counts.
func (s *TokenLookupService) TokensToRevoke(ctx context.Context, userID int64, accessTokenID string, clientID int64) ([]domain.AccessToken, []domain.RefreshToken, error) {
	accessTokenID = strings.TrimSpace(accessTokenID)

	switch {
	case accessTokenID != "":
		anchor, err := s.tokens.GetAccessToken(ctx, accessTokenID)
		if err != nil {
			return nil, nil, fmt.Errorf("get anchor access token: %w", err)
		}
		clientID = anchor.ClientID
	case clientID > 0:
	default:
		return nil, nil, ErrInvalidArgument
	}

	cutoff := domain.StartOfDay(s.now())

	accessTokens, err := s.tokens.ListActiveAccessTokens(ctx, clientID, userID, cutoff)
	if err != nil {
		return nil, nil, fmt.Errorf("list access tokens: %w", err)
	}

	accessTokenIDs := make([]string, 0, len(accessTokens))
	for _, token := range accessTokens {
		accessTokenIDs = append(accessTokenIDs, token.ID)
	}

	refreshTokens, err := s.tokens.ListActiveRefreshTokens(ctx, accessTokenIDs, cutoff)
	if err != nil {
		return nil, nil, fmt.Errorf("list refresh tokens: %w", err)
	}

	return accessTokens, refreshTokens, nil
}
