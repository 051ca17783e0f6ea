package usecase

import (
	"context"
	"errors"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
	"github.com/iamaashishjha/redis-token-black-list/internal/infra/logger"
)

// ErrTokenRevoked signals a confirmed blacklist hit. It is the only error the
// validation operations ever surface to their caller.
var ErrTokenRevoked = errors.New("token has been revoked")

// TokenDecoder resolves opaque bearer strings to token identities.
type TokenDecoder interface {
	ParseAccessToken(token string) (domain.TokenIdentity, error)
	DecodeRefreshToken(token string) (domain.TokenIdentity, error)
}

// RevocationService orchestrates blacklist writes, session teardown and
// validation probes. Revocation entry points are best-effort: by default every
// internal failure is logged and swallowed so that a garbage token presented
// at logout never breaks the logout flow. Validation likewise treats internal
// failures as "not revoked". Strict mode lifts both shields.
type RevocationService struct {
	codec     TokenDecoder
	blacklist port.BlacklistStore
	sessions  port.SessionIndex
	lookup    *TokenLookupService
	events    port.EventPublisher
	logger    *zap.Logger
	strict    bool
	now       func() time.Time
}

// NewRevocationService constructs a RevocationService instance.
func NewRevocationService(
	codec TokenDecoder,
	blacklist port.BlacklistStore,
	sessions port.SessionIndex,
	lookup *TokenLookupService,
	logger *zap.Logger,
) *RevocationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	service := &RevocationService{
		codec:     codec,
		blacklist: blacklist,
		sessions:  sessions,
		lookup:    lookup,
		logger:    logger,
	}
	service.now = func() time.Time { return time.Now().UTC() }
	return service
}

// WithEventPublisher attaches a publisher for revocation events.
func (s *RevocationService) WithEventPublisher(events port.EventPublisher) *RevocationService {
	s.events = events
	return s
}

// WithStrictMode makes internal failures visible to callers instead of being
// swallowed. Off by default.
func (s *RevocationService) WithStrictMode(strict bool) *RevocationService {
	s.strict = strict
	return s
}

// WithClock overrides the service clock for deterministic tests.
func (s *RevocationService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// RevokeUserAccessToken blacklists exactly the presented access token using
// its own claims, then tears down the user's sessions. The user's other
// tokens are left alone.
func (s *RevocationService) RevokeUserAccessToken(ctx context.Context, accessToken string) error {
	identity, err := s.codec.ParseAccessToken(accessToken)
	if err != nil {
		return s.suppress("revoke access token", err, zap.String("token", logger.MaskToken(accessToken)))
	}

	record := domain.BlacklistRecord{
		Kind:    domain.TokenKindAccess,
		TokenID: identity.TokenID,
		UserID:  identity.UserID,
	}
	if identity.ExpiresAt != nil {
		record.ExpiresAt = *identity.ExpiresAt
	}

	if err := s.blacklist.PutRecord(ctx, record); err != nil {
		return s.suppress("revoke access token", err)
	}

	sessionIDs, err := s.teardownSessions(ctx, identity.UserID)
	if err != nil {
		return s.suppress("revoke access token", err)
	}

	s.publish(ctx, domain.TokensRevokedEvent{
		UserID:         identity.UserID,
		AccessTokenIDs: []string{identity.TokenID},
		SessionIDs:     sessionIDs,
		Trigger:        domain.RevocationTriggerSingleToken,
	})

	return nil
}

// RevokeAllTokensViaAccessToken extracts the user from the presented access
// token and cascades over every currently valid access and refresh token for
// that user under the token's client.
func (s *RevocationService) RevokeAllTokensViaAccessToken(ctx context.Context, accessToken string) error {
	identity, err := s.codec.ParseAccessToken(accessToken)
	if err != nil {
		return s.suppress("revoke all via access token", err, zap.String("token", logger.MaskToken(accessToken)))
	}

	err = s.revokeForUser(ctx, identity.UserID, identity.TokenID, 0, domain.RevocationTriggerAccessToken)
	return s.suppress("revoke all via access token", err)
}

// RevokeAllTokensViaUserIDAndClientID cascades over every currently valid
// access and refresh token for the user under the supplied client.
func (s *RevocationService) RevokeAllTokensViaUserIDAndClientID(ctx context.Context, userID, clientID int64) error {
	err := s.revokeForUser(ctx, userID, "", clientID, domain.RevocationTriggerUserClient)
	return s.suppress("revoke all via user and client", err)
}

// ValidateAccessToken reports whether the presented access token has been
// revoked. Decode failures and store outages validate as "not revoked".
func (s *RevocationService) ValidateAccessToken(ctx context.Context, accessToken string) error {
	identity, err := s.codec.ParseAccessToken(accessToken)
	if err != nil {
		return s.suppress("validate access token", err, zap.String("token", logger.MaskToken(accessToken)))
	}

	return s.checkBlacklist(ctx, domain.TokenKindAccess, identity, "validate access token")
}

// ValidateRefreshToken reports whether the presented refresh token has been
// revoked, under the same fail-open policy as ValidateAccessToken.
func (s *RevocationService) ValidateRefreshToken(ctx context.Context, refreshToken string) error {
	identity, err := s.codec.DecodeRefreshToken(refreshToken)
	if err != nil {
		return s.suppress("validate refresh token", err, zap.String("token", logger.MaskToken(refreshToken)))
	}

	return s.checkBlacklist(ctx, domain.TokenKindRefresh, identity, "validate refresh token")
}

func (s *RevocationService) checkBlacklist(ctx context.Context, kind domain.TokenKind, identity domain.TokenIdentity, op string) error {
	exists, err := s.blacklist.Exists(ctx, kind, identity.UserID, identity.TokenID)
	if err != nil {
		return s.suppress(op, err)
	}
	if exists {
		return ErrTokenRevoked
	}
	return nil
}

func (s *RevocationService) revokeForUser(ctx context.Context, userID int64, accessTokenID string, clientID int64, trigger string) error {
	accessTokens, refreshTokens, err := s.lookup.TokensToRevoke(ctx, userID, accessTokenID, clientID)
	if err != nil {
		return err
	}

	accessTokenIDs := make([]string, 0, len(accessTokens))
	for _, token := range accessTokens {
		if err := s.blacklistOnce(ctx, domain.TokenKindAccess, userID, token.ID, token.ExpiresAt); err != nil {
			return err
		}
		accessTokenIDs = append(accessTokenIDs, token.ID)
	}

	refreshTokenIDs := make([]string, 0, len(refreshTokens))
	for _, token := range refreshTokens {
		if err := s.blacklistOnce(ctx, domain.TokenKindRefresh, userID, token.ID, token.ExpiresAt); err != nil {
			return err
		}
		refreshTokenIDs = append(refreshTokenIDs, token.ID)
	}

	sessionIDs, err := s.teardownSessions(ctx, userID)
	if err != nil {
		return err
	}

	s.publish(ctx, domain.TokensRevokedEvent{
		UserID:          userID,
		ClientID:        clientID,
		AccessTokenIDs:  accessTokenIDs,
		RefreshTokenIDs: refreshTokenIDs,
		SessionIDs:      sessionIDs,
		Trigger:         trigger,
	})

	return nil
}

// blacklistOnce writes a blacklist record unless one already exists for the
// token. Re-revocation is a no-op, never an error. Two concurrent revocations
// of the same token can both pass the existence check and write identical
// records, which is harmless.
func (s *RevocationService) blacklistOnce(ctx context.Context, kind domain.TokenKind, userID int64, tokenID string, expiresAt time.Time) error {
	exists, err := s.blacklist.Exists(ctx, kind, userID, tokenID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.blacklist.PutRecord(ctx, domain.BlacklistRecord{
		Kind:      kind,
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
}

// teardownSessions removes the user's session-id set and every per-session
// record it references. The index key is deleted once per member, which is
// redundant after the first pass but harmless; the net effect is that no
// session survives.
func (s *RevocationService) teardownSessions(ctx context.Context, userID int64) ([]string, error) {
	sessionIDs, err := s.sessions.Sessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, sessionID := range sessionIDs {
		if err := s.sessions.DeleteIndex(ctx, userID); err != nil {
			return nil, err
		}
		if err := s.sessions.DeleteSession(ctx, userID, sessionID); err != nil {
			return nil, err
		}
	}

	return sessionIDs, nil
}

func (s *RevocationService) publish(ctx context.Context, event domain.TokensRevokedEvent) {
	if s.events == nil {
		return
	}

	event.EventID = uuid.NewString()
	event.RevokedAt = s.now()

	if err := s.events.PublishTokensRevoked(ctx, event); err != nil {
		s.logger.Warn("publish tokens revoked event failed",
			zap.Int64("user_id", event.UserID),
			zap.Error(err),
		)
	}
}

// suppress implements the propagation policy: log and swallow unless strict
// mode is on. ErrTokenRevoked is never routed through here.
func (s *RevocationService) suppress(op string, err error, fields ...zap.Field) error {
	if err == nil {
		return nil
	}

	s.logger.Warn(op+" failed", append(fields, zap.Error(err))...)
	if s.strict {
		return err
	}
	return nil
}
