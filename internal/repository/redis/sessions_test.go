package redis

import (
	"context"
	"sort"
	"testing"
)

func TestSessionIndexRepository_AddAndList(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionIndexRepository(client, "")

	ctx := context.Background()

	if err := repo.AddSession(ctx, 42, "session-a"); err != nil {
		t.Fatalf("AddSession returned error: %v", err)
	}
	if err := repo.AddSession(ctx, 42, "session-b"); err != nil {
		t.Fatalf("AddSession returned error: %v", err)
	}

	sessions, err := repo.Sessions(ctx, 42)
	if err != nil {
		t.Fatalf("Sessions returned error: %v", err)
	}

	sort.Strings(sessions)
	if len(sessions) != 2 || sessions[0] != "session-a" || sessions[1] != "session-b" {
		t.Fatalf("unexpected session list: %v", sessions)
	}
}

func TestSessionIndexRepository_MissingIndex(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionIndexRepository(client, "")

	sessions, err := repo.Sessions(context.Background(), 99)
	if err != nil {
		t.Fatalf("Sessions returned error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty list for missing index, got %v", sessions)
	}
}

func TestSessionIndexRepository_Delete(t *testing.T) {
	client, server := newTestRedis(t)
	repo := NewSessionIndexRepository(client, "")

	ctx := context.Background()

	if err := repo.AddSession(ctx, 7, "session-x"); err != nil {
		t.Fatalf("AddSession returned error: %v", err)
	}
	if err := server.Set("sessions:7:session-x", "payload"); err != nil {
		t.Fatalf("seed session record: %v", err)
	}

	if err := repo.DeleteSession(ctx, 7, "session-x"); err != nil {
		t.Fatalf("DeleteSession returned error: %v", err)
	}
	if server.Exists("sessions:7:session-x") {
		t.Fatalf("expected per-session record to be deleted")
	}

	if err := repo.DeleteIndex(ctx, 7); err != nil {
		t.Fatalf("DeleteIndex returned error: %v", err)
	}
	if server.Exists("sessions:7") {
		t.Fatalf("expected session index to be deleted")
	}
}

func TestSessionIndexRepository_InvalidInput(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionIndexRepository(client, "")

	ctx := context.Background()

	if err := repo.AddSession(ctx, 1, " "); err == nil {
		t.Fatalf("expected error for empty session id")
	}
	if err := repo.DeleteSession(ctx, 1, ""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}
