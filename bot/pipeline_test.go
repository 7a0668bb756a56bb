package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mindberry/teplo/bot/classifier"
	"github.com/mindberry/teplo/bot/crisis"
	"github.com/mindberry/teplo/bot/responder"
	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/engine/session"
	"github.com/mindberry/teplo/engine/therapy"
)

var t0 = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(&config.Config{
		Telegram: config.TelegramConfig{Token: "test"},
		Sessions: config.SessionsConfig{Backend: config.SessionsMemory},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	app.silenceDelay = 0
	return app
}

func TestProcessTurnAdvancesTherapyArc(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	sess := session.New(1, t0)

	// High-anxiety opener moves idle into reflection.
	reply, _ := app.processTurn(ctx, sess, "Я очень тревожусь из-за работы", t0)
	if reply == "" {
		t.Fatal("empty reply")
	}
	if sess.Therapy.State != therapy.StateReflecting {
		t.Fatalf("therapy state = %q, want reflecting", sess.Therapy.State)
	}
	if sess.State == nil || sess.State.PrimaryEmotion != "anxiety" {
		t.Fatalf("state = %+v", sess.State)
	}

	// After the dwell period a second distressed message advances the arc.
	_, _ = app.processTurn(ctx, sess, "мне очень страшно, не знаю что делать", t0.Add(5*time.Second))
	if sess.Therapy.State != therapy.StateReframing {
		t.Fatalf("therapy state = %q, want reframing", sess.Therapy.State)
	}

	if len(sess.History) != 4 {
		t.Fatalf("history = %d entries, want 4", len(sess.History))
	}
}

func TestProcessTurnCrisisPreempts(t *testing.T) {
	app := newTestApp(t)
	sess := session.New(2, t0)

	reply, _ := app.processTurn(context.Background(), sess, "я не хочу жить", t0)
	if reply != crisis.SupportResources {
		t.Fatalf("crisis must answer with support resources, got %q", reply)
	}
	if sess.Therapy.State != therapy.StateCrisis {
		t.Fatalf("therapy state = %q, want crisis", sess.Therapy.State)
	}
}

func TestProcessTurnSilenceDirective(t *testing.T) {
	app := newTestApp(t)
	sess := session.New(3, t0)

	_, directives := app.processTurn(context.Background(), sess, "накрыла паника, все рушится", t0)
	if !directives.UseSilence {
		t.Fatal("acute distress must pace the reply")
	}
	if directives.MaxTokens != 100 {
		t.Fatalf("max tokens = %d, want 100", directives.MaxTokens)
	}
}

func TestProcessTurnResetsStaleSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	sess := session.New(4, t0)

	_, _ = app.processTurn(ctx, sess, "Я очень тревожусь из-за работы", t0)
	if sess.Therapy.State != therapy.StateReflecting {
		t.Fatalf("therapy state = %q", sess.Therapy.State)
	}

	// 11 minutes of silence resets the arc; the next reading starts fresh.
	later := t0.Add(11 * time.Minute)
	_, _ = app.processTurn(ctx, sess, "опять тревожно на работе", later)
	if sess.Therapy.State != therapy.StateReflecting {
		t.Fatalf("therapy state after reset = %q, want reflecting", sess.Therapy.State)
	}
	if !sess.Therapy.SessionStart.Equal(later) {
		t.Fatalf("session start = %v, want %v", sess.Therapy.SessionStart, later)
	}
}

func TestProcessTurnRecordsMemory(t *testing.T) {
	app := newTestApp(t)
	sess := session.New(6, t0)

	_, _ = app.processTurn(context.Background(), sess, "Меня все бесит на работе", t0)
	if len(sess.Memory.Moments) != 1 {
		t.Fatalf("moments = %d, want 1", len(sess.Memory.Moments))
	}
	if sess.Memory.Moments[0].Emotion != "anger" {
		t.Fatalf("moment emotion = %q", sess.Memory.Moments[0].Emotion)
	}
}

func TestChatLocksPerChat(t *testing.T) {
	var locks chatLocks

	a, b := locks.forChat(1), locks.forChat(2)
	if a == b {
		t.Fatal("different chats must get different locks")
	}
	if locks.forChat(1) != a {
		t.Fatal("same chat must get the same lock")
	}

	// The lock must actually serialize.
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := locks.forChat(7)
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Fatalf("counter = %d", counter)
	}
}

func TestNewSelectsBackends(t *testing.T) {
	_, err := New(&config.Config{
		Sessions: config.SessionsConfig{Backend: config.SessionsPostgres},
	}, nil)
	if err == nil {
		t.Fatal("postgres backend without a database must fail")
	}

	app := newTestApp(t)
	if _, ok := app.classify.(*classifier.Keyword); !ok {
		t.Fatalf("no API key should select the keyword classifier, got %T", app.classify)
	}
	if _, ok := app.reply.(*responder.Static); !ok {
		t.Fatalf("no API key should select the static responder, got %T", app.reply)
	}
}
