package port

import (
	"context"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

// BlacklistStore is the durable "is this token revoked" ledger. Records are
// hash-shaped, keyed per (kind, user, token), and expire on their own once the
// token they shadow would have expired anyway.
type BlacklistStore interface {
	// PutRecord writes all record fields and sets the whole-key TTL to the
	// distance between now and the record expiry in one logical operation.
	PutRecord(ctx context.Context, record domain.BlacklistRecord) error
	// SetField writes a single scalar field without touching the key TTL.
	SetField(ctx context.Context, kind domain.TokenKind, userID int64, tokenID, field, value string) error
	// Exists reports whether a blacklist record is present for the token.
	Exists(ctx context.Context, kind domain.TokenKind, userID int64, tokenID string) (bool, error)
}
