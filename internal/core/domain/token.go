package domain

import "time"

// TokenKind distinguishes the two bearer token families the service handles.
type TokenKind string

const (
	// TokenKindAccess marks RS256-signed OAuth access tokens.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh marks encrypted OAuth refresh tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenIdentity is the stable identity extracted from a presented bearer token.
// It is derived per call and never persisted as a whole; only its fields end up
// inside blacklist records.
type TokenIdentity struct {
	TokenID   string
	UserID    int64
	ExpiresAt *time.Time
}

// BlacklistRecord marks a single token as revoked until its natural expiry.
type BlacklistRecord struct {
	Kind      TokenKind
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
}

// TTLAt returns the storage-level time-to-live the record must carry when
// inserted at the supplied instant. Elapsed expiries yield a non-positive
// duration; the store treats those as immediate-expire.
func (r BlacklistRecord) TTLAt(at time.Time) time.Duration {
	return r.ExpiresAt.Sub(at)
}

// AccessToken mirrors a row of the authoritative oauth_access_tokens table.
// The service only ever reads these rows.
type AccessToken struct {
	ID        string
	UserID    int64
	ClientID  int64
	ExpiresAt time.Time
}

// RefreshToken mirrors a row of the authoritative oauth_refresh_tokens table.
type RefreshToken struct {
	ID            string
	AccessTokenID string
	ExpiresAt     time.Time
	Revoked       bool
}

// StartOfDay truncates the supplied instant to midnight UTC. Token validity is
// decided at date granularity: a token expiring later today still counts as
// currently valid.
func StartOfDay(at time.Time) time.Time {
	at = at.UTC()
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}
