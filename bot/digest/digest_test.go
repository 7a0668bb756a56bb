package digest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/engine/session"
)

var now = time.Date(2026, time.March, 15, 19, 0, 0, 0, time.UTC) // Sunday

func newScheduler(t *testing.T, store session.Store, send SendFunc) *Scheduler {
	t.Helper()
	s, err := New(config.DigestConfig{
		Enabled:              true,
		Cron:                 "0 19 * * 0",
		CheckIntervalSeconds: 60,
	}, store, send)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsBadCron(t *testing.T) {
	_, err := New(config.DigestConfig{Cron: "not a cron"}, session.NewMemoryStore(), nil)
	if err == nil {
		t.Fatal("invalid cron must be rejected")
	}
}

func TestDeliverOnlySubscribed(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	on := session.New(1, now)
	on.DigestEnabled = true
	on.Memory.Record("anxiety", 8, "дедлайн на работе", "переживаю из-за дедлайна на работе", now.Add(-24*time.Hour))
	off := session.New(2, now)

	for _, s := range []*session.Session{on, off} {
		if err := store.Put(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	var sentTo []int64
	var sentText string
	sched := newScheduler(t, store, func(_ context.Context, chatID int64, text string) error {
		sentTo = append(sentTo, chatID)
		sentText = text
		return nil
	})

	sched.Deliver(ctx, now)

	if len(sentTo) != 1 || sentTo[0] != 1 {
		t.Fatalf("sent to %v, want [1]", sentTo)
	}
	if !strings.Contains(sentText, "Еженедельный дайджест") {
		t.Errorf("digest text = %q", sentText)
	}
	if !strings.Contains(sentText, "anxiety") {
		t.Errorf("digest should mention the week's top emotion: %q", sentText)
	}
}

func TestTickFiresOncePerMinute(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	s := session.New(5, now)
	s.DigestEnabled = true
	if err := store.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	calls := 0
	sched := newScheduler(t, store, func(context.Context, int64, string) error {
		calls++
		return nil
	})

	// Sunday 19:00 matches "0 19 * * 0"; repeated checks within the same
	// minute must not refire.
	sched.tick(ctx, now)
	sched.tick(ctx, now.Add(10*time.Second))
	sched.tick(ctx, now.Add(30*time.Second))
	if calls != 1 {
		t.Fatalf("delivered %d times within one minute, want 1", calls)
	}

	sched.tick(ctx, now.Add(2*time.Minute))
	if calls != 1 {
		t.Fatalf("19:02 is off schedule, deliveries = %d", calls)
	}
}
