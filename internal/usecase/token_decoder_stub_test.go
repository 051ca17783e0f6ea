package usecase

import (
	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/infra/security"
)

type stubTokenDecoder struct {
	accessIdentities  map[string]domain.TokenIdentity
	refreshIdentities map[string]domain.TokenIdentity
}

func newStubTokenDecoder() *stubTokenDecoder {
	return &stubTokenDecoder{
		accessIdentities:  make(map[string]domain.TokenIdentity),
		refreshIdentities: make(map[string]domain.TokenIdentity),
	}
}

func (s *stubTokenDecoder) ParseAccessToken(token string) (domain.TokenIdentity, error) {
	identity, ok := s.accessIdentities[token]
	if !ok {
		return domain.TokenIdentity{}, security.ErrInvalidToken
	}
	return identity, nil
}

func (s *stubTokenDecoder) DecodeRefreshToken(token string) (domain.TokenIdentity, error) {
	identity, ok := s.refreshIdentities[token]
	if !ok {
		return domain.TokenIdentity{}, security.ErrInvalidToken
	}
	return identity, nil
}
