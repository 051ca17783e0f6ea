package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, userID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.Int64("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishTokensRevoked logs blacklist.tokens.revoked events.
func (p *StubPublisher) PublishTokensRevoked(_ context.Context, event domain.TokensRevokedEvent) error {
	payload := map[string]any{
		"user_id":           event.UserID,
		"client_id":         event.ClientID,
		"access_token_ids":  event.AccessTokenIDs,
		"refresh_token_ids": event.RefreshTokenIDs,
		"session_ids":       event.SessionIDs,
		"trigger":           event.Trigger,
		"revoked_at":        event.RevokedAt,
	}
	p.logEvent("blacklist.tokens.revoked", event.UserID, event.RevokedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
