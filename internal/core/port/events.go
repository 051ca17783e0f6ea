package port

import (
	"context"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

// EventPublisher emits revocation events for downstream consumers.
type EventPublisher interface {
	PublishTokensRevoked(ctx context.Context, event domain.TokensRevokedEvent) error
}
