package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
)

const (
	defaultAccessTokenPrefix  = "oauth_access_tokens"
	defaultRefreshTokenPrefix = "oauth_refresh_tokens"

	// expiresAtLayout is the normalized absolute timestamp format stored in
	// blacklist record hashes.
	expiresAtLayout = "2006-01-02 15:04:05"
)

// BlacklistRepository persists token blacklist records as Redis hashes whose
// key TTL matches the remaining token lifetime.
type BlacklistRepository struct {
	client        *red.Client
	accessPrefix  string
	refreshPrefix string
	now           func() time.Time
}

// NewBlacklistRepository wires a Redis client into a blacklist repository.
func NewBlacklistRepository(client *red.Client, accessPrefix, refreshPrefix string) *BlacklistRepository {
	access := strings.TrimSpace(accessPrefix)
	if access == "" {
		access = defaultAccessTokenPrefix
	}
	refresh := strings.TrimSpace(refreshPrefix)
	if refresh == "" {
		refresh = defaultRefreshTokenPrefix
	}

	repo := &BlacklistRepository{client: client, accessPrefix: access, refreshPrefix: refresh}
	repo.now = func() time.Time { return time.Now().UTC() }
	return repo
}

// WithClock overrides the repository clock for deterministic TTL tests.
func (r *BlacklistRepository) WithClock(clock func() time.Time) {
	if clock != nil {
		r.now = clock
	}
}

// PutRecord writes all record fields and applies the whole-key TTL in one
// pipelined operation. An expiry already in the past must not leave a durable
// key behind, so a non-positive TTL deletes instead of expiring.
func (r *BlacklistRepository) PutRecord(ctx context.Context, record domain.BlacklistRecord) error {
	key := r.key(record.Kind, record.UserID, record.TokenID)
	if key == "" {
		return fmt.Errorf("token id must not be empty")
	}

	fields := map[string]any{
		"id":         record.TokenID,
		"user_id":    strconv.FormatInt(record.UserID, 10),
		"expires_at": record.ExpiresAt.UTC().Format(expiresAtLayout),
	}

	ttl := record.TTLAt(r.now())

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	} else {
		pipe.Del(ctx, key)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis put blacklist record: %w", err)
	}

	return nil
}

// SetField writes a single scalar hash field, leaving any existing TTL alone.
func (r *BlacklistRepository) SetField(ctx context.Context, kind domain.TokenKind, userID int64, tokenID, field, value string) error {
	key := r.key(kind, userID, tokenID)
	if key == "" {
		return fmt.Errorf("token id must not be empty")
	}
	if strings.TrimSpace(field) == "" {
		return fmt.Errorf("field name must not be empty")
	}

	if err := r.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("redis set blacklist field: %w", err)
	}

	return nil
}

// Exists reports whether a blacklist record is present for the token.
func (r *BlacklistRepository) Exists(ctx context.Context, kind domain.TokenKind, userID int64, tokenID string) (bool, error) {
	key := r.key(kind, userID, tokenID)
	if key == "" {
		return false, fmt.Errorf("token id must not be empty")
	}

	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check blacklist record: %w", err)
	}

	return count > 0, nil
}

func (r *BlacklistRepository) key(kind domain.TokenKind, userID int64, tokenID string) string {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return ""
	}

	prefix := r.accessPrefix
	if kind == domain.TokenKindRefresh {
		prefix = r.refreshPrefix
	}

	return fmt.Sprintf("%s:%d:%s", prefix, userID, tokenID)
}

var _ port.BlacklistStore = (*BlacklistRepository)(nil)
