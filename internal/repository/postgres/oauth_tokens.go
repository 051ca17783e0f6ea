package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
	"github.com/iamaashishjha/redis-token-black-list/internal/repository"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OAuthTokenRepository reads the issuing application's token tables. All
// statements are plain selects; this service never mutates the token schema.
type OAuthTokenRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewOAuthTokenRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewOAuthTokenRepository(exec pgExecutor) *OAuthTokenRepository {
	repo := &OAuthTokenRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// GetAccessToken fetches a single access token row by id.
func (r *OAuthTokenRepository) GetAccessToken(ctx context.Context, id string) (*domain.AccessToken, error) {
	stmt, args, err := r.builder.Select("id", "user_id", "client_id", "expires_at").
		From("oauth_access_tokens").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select access token sql: %w", err)
	}

	var token domain.AccessToken
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&token.ID, &token.UserID, &token.ClientID, &token.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan access token: %w", err)
	}

	return &token, nil
}

// ListActiveAccessTokens returns access tokens for (clientID, userID) whose
// expiry is on or after the supplied cutoff.
func (r *OAuthTokenRepository) ListActiveAccessTokens(ctx context.Context, clientID, userID int64, cutoff time.Time) ([]domain.AccessToken, error) {
	stmt, args, err := r.builder.Select("id", "user_id", "client_id", "expires_at").
		From("oauth_access_tokens").
		Where(squirrel.Eq{"client_id": clientID, "user_id": userID}).
		Where(squirrel.GtOrEq{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select access tokens sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select access tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.AccessToken
	for rows.Next() {
		var token domain.AccessToken
		if err := rows.Scan(&token.ID, &token.UserID, &token.ClientID, &token.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan access token row: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access token rows: %w", err)
	}

	return tokens, nil
}

// ListActiveRefreshTokens returns unrevoked refresh tokens referencing any of
// the supplied access token ids with expiry on or after the cutoff.
func (r *OAuthTokenRepository) ListActiveRefreshTokens(ctx context.Context, accessTokenIDs []string, cutoff time.Time) ([]domain.RefreshToken, error) {
	if len(accessTokenIDs) == 0 {
		return nil, nil
	}

	stmt, args, err := r.builder.Select("id", "access_token_id", "expires_at", "revoked").
		From("oauth_refresh_tokens").
		Where(squirrel.Eq{"access_token_id": accessTokenIDs, "revoked": false}).
		Where(squirrel.GtOrEq{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select refresh tokens sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select refresh tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.RefreshToken
	for rows.Next() {
		var token domain.RefreshToken
		if err := rows.Scan(&token.ID, &token.AccessTokenID, &token.ExpiresAt, &token.Revoked); err != nil {
			return nil, fmt.Errorf("scan refresh token row: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refresh token rows: %w", err)
	}

	return tokens, nil
}

var _ port.OAuthTokenRepository = (*OAuthTokenRepository)(nil)
