package usecase

import (
	"context"
	"time"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/repository"
)

type stubTokenRepository struct {
	accessTokens  map[string]domain.AccessToken
	refreshTokens []domain.RefreshToken
	listErr       error
	lastCutoff    time.Time
}

func newStubTokenRepository() *stubTokenRepository {
	return &stubTokenRepository{accessTokens: make(map[string]domain.AccessToken)}
}

func (s *stubTokenRepository) GetAccessToken(_ context.Context, id string) (*domain.AccessToken, error) {
	token, ok := s.accessTokens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &token, nil
}

func (s *stubTokenRepository) ListActiveAccessTokens(_ context.Context, clientID, userID int64, cutoff time.Time) ([]domain.AccessToken, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.lastCutoff = cutoff

	var matched []domain.AccessToken
	for _, token := range s.accessTokens {
		if token.ClientID == clientID && token.UserID == userID && !token.ExpiresAt.Before(cutoff) {
			matched = append(matched, token)
		}
	}
	return matched, nil
}

func (s *stubTokenRepository) ListActiveRefreshTokens(_ context.Context, accessTokenIDs []string, cutoff time.Time) ([]domain.RefreshToken, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	ids := make(map[string]bool, len(accessTokenIDs))
	for _, id := range accessTokenIDs {
		ids[id] = true
	}

	var matched []domain.RefreshToken
	for _, token := range s.refreshTokens {
		if ids[token.AccessTokenID] && !token.Revoked && !token.ExpiresAt.Before(cutoff) {
			matched = append(matched, token)
		}
	}
	return matched, nil
}
