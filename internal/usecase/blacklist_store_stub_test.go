package usecase

import (
	"context"
	"fmt"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
)

type stubBlacklistStore struct {
	records   map[string]domain.BlacklistRecord
	puts      []domain.BlacklistRecord
	putErr    error
	existsErr error
}

func newStubBlacklistStore() *stubBlacklistStore {
	return &stubBlacklistStore{records: make(map[string]domain.BlacklistRecord)}
}

func blacklistKey(kind domain.TokenKind, userID int64, tokenID string) string {
	return fmt.Sprintf("%s:%d:%s", kind, userID, tokenID)
}

func (s *stubBlacklistStore) PutRecord(_ context.Context, record domain.BlacklistRecord) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts = append(s.puts, record)
	s.records[blacklistKey(record.Kind, record.UserID, record.TokenID)] = record
	return nil
}

func (s *stubBlacklistStore) SetField(_ context.Context, kind domain.TokenKind, userID int64, tokenID, _, _ string) error {
	if _, ok := s.records[blacklistKey(kind, userID, tokenID)]; !ok {
		return fmt.Errorf("no record for %s", tokenID)
	}
	return nil
}

func (s *stubBlacklistStore) Exists(_ context.Context, kind domain.TokenKind, userID int64, tokenID string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.records[blacklistKey(kind, userID, tokenID)]
	return ok, nil
}
