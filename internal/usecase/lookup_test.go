package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/repository"
)

func TestTokenLookupService_AnchorResolvesClient(t *testing.T) {
	tokens := newStubTokenRepository()
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tokens.accessTokens["anchor"] = domain.AccessToken{ID: "anchor", UserID: 42, ClientID: 3, ExpiresAt: now.Add(time.Hour)}
	tokens.accessTokens["sibling"] = domain.AccessToken{ID: "sibling", UserID: 42, ClientID: 3, ExpiresAt: now.Add(2 * time.Hour)}
	tokens.accessTokens["other-client"] = domain.AccessToken{ID: "other-client", UserID: 42, ClientID: 9, ExpiresAt: now.Add(time.Hour)}

	service := NewTokenLookupService(tokens)
	service.WithClock(func() time.Time { return now })

	accessTokens, _, err := service.TokensToRevoke(context.Background(), 42, "anchor", 0)
	if err != nil {
		t.Fatalf("TokensToRevoke returned error: %v", err)
	}

	ids := make([]string, 0, len(accessTokens))
	for _, token := range accessTokens {
		ids = append(ids, token.ID)
	}
	sort.Strings(ids)

	if len(ids) != 2 || ids[0] != "anchor" || ids[1] != "sibling" {
		t.Fatalf("expected anchor and sibling only, got %v", ids)
	}
}

func TestTokenLookupService_DateGranularityCutoff(t *testing.T) {
	tokens := newStubTokenRepository()
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	// Expired earlier today but still on or after midnight.
	tokens.accessTokens["expired-today"] = domain.AccessToken{ID: "expired-today", UserID: 42, ClientID: 3, ExpiresAt: now.Add(-time.Hour)}
	tokens.accessTokens["expired-yesterday"] = domain.AccessToken{ID: "expired-yesterday", UserID: 42, ClientID: 3, ExpiresAt: now.Add(-24 * time.Hour)}

	service := NewTokenLookupService(tokens)
	service.WithClock(func() time.Time { return now })

	accessTokens, _, err := service.TokensToRevoke(context.Background(), 42, "", 3)
	if err != nil {
		t.Fatalf("TokensToRevoke returned error: %v", err)
	}

	if len(accessTokens) != 1 || accessTokens[0].ID != "expired-today" {
		t.Fatalf("expected only the token that expired today, got %+v", accessTokens)
	}

	if want := domain.StartOfDay(now); !tokens.lastCutoff.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, tokens.lastCutoff)
	}
}

func TestTokenLookupService_RefreshJoin(t *testing.T) {
	tokens := newStubTokenRepository()
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tokens.accessTokens["token-1"] = domain.AccessToken{ID: "token-1", UserID: 42, ClientID: 3, ExpiresAt: now.Add(time.Hour)}
	tokens.refreshTokens = []domain.RefreshToken{
		{ID: "refresh-live", AccessTokenID: "token-1", ExpiresAt: now.Add(72 * time.Hour)},
		{ID: "refresh-revoked", AccessTokenID: "token-1", ExpiresAt: now.Add(72 * time.Hour), Revoked: true},
		{ID: "refresh-foreign", AccessTokenID: "unrelated", ExpiresAt: now.Add(72 * time.Hour)},
	}

	service := NewTokenLookupService(tokens)
	service.WithClock(func() time.Time { return now })

	_, refreshTokens, err := service.TokensToRevoke(context.Background(), 42, "", 3)
	if err != nil {
		t.Fatalf("TokensToRevoke returned error: %v", err)
	}

	if len(refreshTokens) != 1 || refreshTokens[0].ID != "refresh-live" {
		t.Fatalf("expected only the live joined refresh token, got %+v", refreshTokens)
	}
}

func TestTokenLookupService_MissingAnchor(t *testing.T) {
	tokens := newStubTokenRepository()
	service := NewTokenLookupService(tokens)

	_, _, err := service.TokensToRevoke(context.Background(), 42, "missing", 0)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenLookupService_NoAnchorNoClient(t *testing.T) {
	tokens := newStubTokenRepository()
	service := NewTokenLookupService(tokens)

	_, _, err := service.TokensToRevoke(context.Background(), 42, "", 0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
