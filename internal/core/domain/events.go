package domain

import "time"

// Revocation triggers carried on published events.
const (
	RevocationTriggerSingleToken  = "single_token"
	RevocationTriggerAccessToken  = "access_token_cascade"
	RevocationTriggerUserClient   = "user_client_cascade"
)

// TokensRevokedEvent describes a completed revocation pass for downstream
// consumers (audit, cache invalidation in sibling services).
type TokensRevokedEvent struct {
	EventID         string
	UserID          int64
	ClientID        int64
	AccessTokenIDs  []string
	RefreshTokenIDs []string
	SessionIDs      []string
	Trigger         string
	RevokedAt       time.Time
}
