package session

import (
	"context"
	"testing"
	"time"
)

var t0 = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNewSession(t *testing.T) {
	s := New(42, t0)
	if s.ChatID != 42 {
		t.Fatalf("chat id = %d", s.ChatID)
	}
	if s.Memory == nil {
		t.Fatal("memory must be initialized")
	}
	if s.State != nil {
		t.Fatal("state must be nil before the first reading")
	}
	if s.Therapy.State != "idle" {
		t.Fatalf("therapy state = %q, want idle", s.Therapy.State)
	}
}

func TestHistoryRing(t *testing.T) {
	s := New(1, t0)
	for i := 0; i < historyLimit+10; i++ {
		s.AppendHistory("user", "msg", t0.Add(time.Duration(i)*time.Second))
	}
	if len(s.History) != historyLimit {
		t.Fatalf("history = %d, want %d", len(s.History), historyLimit)
	}

	recent := s.RecentHistory(5)
	if len(recent) != 5 {
		t.Fatalf("recent = %d, want 5", len(recent))
	}
	if !recent[4].SentAt.After(recent[0].SentAt) {
		t.Fatal("recent history must be oldest first")
	}
	if got := s.RecentHistory(0); got != nil {
		t.Fatalf("RecentHistory(0) = %v, want nil", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Get(ctx, 7)
	if err != nil || got != nil {
		t.Fatalf("Get on empty store = %v, %v", got, err)
	}

	s := New(7, t0)
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err = store.Get(ctx, 7)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if err := store.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, 7); got != nil {
		t.Fatal("session survived Delete")
	}
	if err := store.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete of missing session: %v", err)
	}
}

func TestMemoryStoreDigestChats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, chatID := range []int64{30, 10, 20} {
		s := New(chatID, t0)
		s.DigestEnabled = chatID != 20
		if err := store.Put(ctx, s); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	ids, err := store.DigestChats(ctx)
	if err != nil {
		t.Fatalf("DigestChats: %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 30 {
		t.Fatalf("DigestChats = %v, want [10 30]", ids)
	}
}
