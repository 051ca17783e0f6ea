package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/iamaashishjha/redis-token-black-list/internal/repository"
)

func TestOAuthTokenRepository_GetAccessToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOAuthTokenRepository(mock)

	expiresAt := time.Now().UTC().Add(time.Hour)
	rows := pgxmock.NewRows([]string{"id", "user_id", "client_id", "expires_at"}).
		AddRow("token-1", int64(42), int64(3), expiresAt)

	mock.ExpectQuery(`SELECT id, user_id, client_id, expires_at FROM oauth_access_tokens`).
		WithArgs("token-1").
		WillReturnRows(rows)

	token, err := repo.GetAccessToken(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("GetAccessToken returned error: %v", err)
	}
	if token.ID != "token-1" || token.UserID != 42 || token.ClientID != 3 {
		t.Fatalf("unexpected token: %+v", token)
	}
	if !token.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("unexpected expiry: %v", token.ExpiresAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOAuthTokenRepository_GetAccessTokenNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOAuthTokenRepository(mock)

	mock.ExpectQuery(`SELECT id, user_id, client_id, expires_at FROM oauth_access_tokens`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "client_id", "expires_at"}))

	if _, err := repo.GetAccessToken(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOAuthTokenRepository_ListActiveAccessTokens(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOAuthTokenRepository(mock)

	cutoff := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "user_id", "client_id", "expires_at"}).
		AddRow("token-1", int64(42), int64(3), cutoff.Add(2*time.Hour)).
		AddRow("token-2", int64(42), int64(3), cutoff.Add(26*time.Hour))

	mock.ExpectQuery(`SELECT id, user_id, client_id, expires_at FROM oauth_access_tokens`).
		WithArgs(int64(3), int64(42), cutoff).
		WillReturnRows(rows)

	tokens, err := repo.ListActiveAccessTokens(context.Background(), 3, 42, cutoff)
	if err != nil {
		t.Fatalf("ListActiveAccessTokens returned error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].ID != "token-1" || tokens[1].ID != "token-2" {
		t.Fatalf("unexpected token ids: %+v", tokens)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOAuthTokenRepository_ListActiveRefreshTokens(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOAuthTokenRepository(mock)

	cutoff := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "access_token_id", "expires_at", "revoked"}).
		AddRow("refresh-1", "token-1", cutoff.Add(72*time.Hour), false)

	mock.ExpectQuery(`SELECT id, access_token_id, expires_at, revoked FROM oauth_refresh_tokens`).
		WithArgs("token-1", "token-2", false, cutoff).
		WillReturnRows(rows)

	tokens, err := repo.ListActiveRefreshTokens(context.Background(), []string{"token-1", "token-2"}, cutoff)
	if err != nil {
		t.Fatalf("ListActiveRefreshTokens returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].ID != "refresh-1" || tokens[0].AccessTokenID != "token-1" {
		t.Fatalf("unexpected refresh tokens: %+v", tokens)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOAuthTokenRepository_ListActiveRefreshTokensEmptyInput(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewOAuthTokenRepository(mock)

	tokens, err := repo.ListActiveRefreshTokens(context.Background(), nil, time.Now())
	if err != nil {
		t.Fatalf("ListActiveRefreshTokens returned error: %v", err)
	}
	if tokens != nil {
		t.Fatalf("expected nil result for empty id list, got %+v", tokens)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
