package port

import "context"

// SessionIndex exposes the per-user session-id set and the per-session records
// it references. Entries are created by an external session subsystem; this
// service only enumerates and removes them.
type SessionIndex interface {
	AddSession(ctx context.Context, userID int64, sessionID string) error
	Sessions(ctx context.Context, userID int64) ([]string, error)
	DeleteSession(ctx context.Context, userID int64, sessionID string) error
	DeleteIndex(ctx context.Context, userID int64) error
}
