package usecase

import "context"

type stubSessionIndex struct {
	sessions         map[int64][]string
	listErr          error
	deleteIndexCalls int
	deletedSessions  []string
}

func newStubSessionIndex() *stubSessionIndex {
	return &stubSessionIndex{sessions: make(map[int64][]string)}
}

func (s *stubSessionIndex) AddSession(_ context.Context, userID int64, sessionID string) error {
	s.sessions[userID] = append(s.sessions[userID], sessionID)
	return nil
}

func (s *stubSessionIndex) Sessions(_ context.Context, userID int64) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sessions[userID], nil
}

func (s *stubSessionIndex) DeleteSession(_ context.Context, userID int64, sessionID string) error {
	s.deletedSessions = append(s.deletedSessions, sessionID)
	remaining := s.sessions[userID][:0]
	for _, id := range s.sessions[userID] {
		if id != sessionID {
			remaining = append(remaining, id)
		}
	}
	s.sessions[userID] = remaining
	return nil
}

func (s *stubSessionIndex) DeleteIndex(_ context.Context, userID int64) error {
	s.deleteIndexCalls++
	return nil
}
