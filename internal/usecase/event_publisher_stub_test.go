package usecase

import (
	"context"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

type stubEventPublisher struct {
	events []domain.TokensRevokedEvent
	err    error
}

func (s *stubEventPublisher) PublishTokensRevoked(_ context.Context, event domain.TokensRevokedEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}
