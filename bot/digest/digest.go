// Package digest pushes the weekly emotion digest to subscribed chats on a
// cron schedule. The scheduler polls the clock instead of sleeping until the
// next tick: an interval check against the cron expression survives restarts
// and clock jumps without extra bookkeeping.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"

	"github.com/mindberry/teplo/bot/report"
	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/core/logger"
	"github.com/mindberry/teplo/engine/analytics"
	"github.com/mindberry/teplo/engine/session"
)

// SendFunc delivers one Markdown message to a chat.
type SendFunc func(ctx context.Context, chatID int64, text string) error

// Scheduler checks the cron expression on an interval and fans out digests
// to every opted-in chat when it fires.
type Scheduler struct {
	store    session.Store
	send     SendFunc
	cron     string
	interval time.Duration
	gron     *gronx.Gronx

	lastFired time.Time
}

// New validates the cron expression and builds the scheduler.
func New(cfg config.DigestConfig, store session.Store, send SendFunc) (*Scheduler, error) {
	g := gronx.New()
	if !g.IsValid(cfg.Cron) {
		return nil, fmt.Errorf("digest: invalid cron expression %q", cfg.Cron)
	}
	return &Scheduler{
		store:    store,
		send:     send,
		cron:     cfg.Cron,
		interval: time.Duration(cfg.CheckIntervalSeconds) * time.Second,
		gron:     g,
	}, nil
}

// Run blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info(ctx, "digest", "scheduler.start",
		slog.String("cron", s.cron),
		slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "digest", "scheduler.stop")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick fires at most once per cron minute even when the check interval is
// shorter than a minute.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	minute := now.Truncate(time.Minute)
	if !minute.After(s.lastFired) {
		return
	}

	due, err := s.gron.IsDue(s.cron, minute)
	if err != nil {
		logger.Error(ctx, "digest", "cron.check",
			slog.String("error", err.Error()))
		return
	}
	if !due {
		return
	}
	s.lastFired = minute

	s.Deliver(ctx, now)
}

// Deliver sends the digest to every subscribed chat. Exposed so an operator
// command can trigger an off-schedule run.
func (s *Scheduler) Deliver(ctx context.Context, now time.Time) {
	ids, err := s.store.DigestChats(ctx)
	if err != nil {
		logger.Error(ctx, "digest", "chats.list",
			slog.String("error", err.Error()))
		return
	}

	sent := 0
	for _, chatID := range ids {
		if err := s.deliverOne(ctx, chatID, now); err != nil {
			logger.Warn(ctx, "digest", "deliver.failed",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	logger.Info(ctx, "digest", "deliver.done",
		slog.Int("chats", len(ids)),
		slog.Int("sent", sent))
}

func (s *Scheduler) deliverOne(ctx context.Context, chatID int64, now time.Time) error {
	sess, err := s.store.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if sess == nil || sess.Memory == nil {
		return nil
	}

	rep := analytics.AnalyzeTrends(sess.Memory, now)
	return s.send(ctx, chatID, report.FormatDigest(sess.Memory, rep, now))
}
