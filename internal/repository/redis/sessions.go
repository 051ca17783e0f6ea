package redis

import (
	"context"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
)

const defaultSessionPrefix = "sessions"

// SessionIndexRepository tracks the per-user session-id set and the
// per-session records it references. The set and records are written by the
// session subsystem; revocation only enumerates and tears them down.
type SessionIndexRepository struct {
	client *red.Client
	prefix string
}

// NewSessionIndexRepository wires a Redis client into a session index.
func NewSessionIndexRepository(client *red.Client, keyPrefix string) *SessionIndexRepository {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultSessionPrefix
	}

	return &SessionIndexRepository{client: client, prefix: prefix}
}

// AddSession registers a session id in the user's session set.
func (r *SessionIndexRepository) AddSession(ctx context.Context, userID int64, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id must not be empty")
	}

	if err := r.client.SAdd(ctx, r.indexKey(userID), sessionID).Err(); err != nil {
		return fmt.Errorf("redis add session: %w", err)
	}

	return nil
}

// Sessions returns every session id registered for the user. A missing set
// yields an empty slice.
func (r *SessionIndexRepository) Sessions(ctx context.Context, userID int64) ([]string, error) {
	members, err := r.client.SMembers(ctx, r.indexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list sessions: %w", err)
	}
	return members, nil
}

// DeleteSession removes a single per-session record.
func (r *SessionIndexRepository) DeleteSession(ctx context.Context, userID int64, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id must not be empty")
	}

	key := fmt.Sprintf("%s:%s", r.indexKey(userID), sessionID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete session record: %w", err)
	}

	return nil
}

// DeleteIndex removes the user's session-id set itself.
func (r *SessionIndexRepository) DeleteIndex(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, r.indexKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete session index: %w", err)
	}
	return nil
}

func (r *SessionIndexRepository) indexKey(userID int64) string {
	return fmt.Sprintf("%s:%d", r.prefix, userID)
}

var _ port.SessionIndex = (*SessionIndexRepository)(nil)
