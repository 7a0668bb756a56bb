package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/mindberry/teplo/bot/crisis"
	"github.com/mindberry/teplo/bot/responder"
	"github.com/mindberry/teplo/core/logger"
	tghelpers "github.com/mindberry/teplo/core/telegram/helpers"
	"github.com/mindberry/teplo/engine/adapt"
	"github.com/mindberry/teplo/engine/emotion"
	"github.com/mindberry/teplo/engine/session"
	"github.com/mindberry/teplo/engine/state"
	"github.com/mindberry/teplo/engine/therapy"
)

// historyTurns is how many recent dialogue turns reach the generator.
const historyTurns = 10

// handleMessage receives one user message, runs the therapy turn under the
// chat lock and sends the reply. One chat is processed strictly one message
// at a time.
func (a *App) handleMessage(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	chatID := c.Chat().ID
	now := a.clock()

	mu := a.locks.forChat(chatID)
	mu.Lock()
	defer mu.Unlock()

	sess := a.loadOrCreate(ctx, chatID, now)
	reply, directives := a.processTurn(ctx, sess, text, now)

	if directives.UseSilence && a.silenceDelay > 0 {
		// A held pause before replying to acute messages; the typing
		// indicator shows the bot has not gone away.
		_ = c.Notify(tele.Typing)
		time.Sleep(a.silenceDelay)
	}

	if err := a.store.Put(ctx, sess); err != nil {
		logger.Error(ctx, "store", "session.put",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("error", err.Error()))
	}

	return tghelpers.SendText(c, reply)
}

// processTurn is the per-message therapy pipeline: classify, update the
// emotional state and memory, advance the therapy flow, derive response
// directives and generate the reply. The session is mutated in place; the
// history already contains both sides of the turn on return.
func (a *App) processTurn(ctx context.Context, sess *session.Session, text string, now time.Time) (string, adapt.Response) {
	if therapy.ShouldReset(sess.Therapy, now) {
		logger.Debug(ctx, "engine", "therapy.reset",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("state", string(sess.Therapy.State)))
		sess.Therapy = therapy.NewContext(now)
	}

	rec, err := a.classify.Classify(ctx, text, now)
	if err != nil {
		// Both shipped classifiers absorb their own failures; this guards
		// a misbehaving custom implementation.
		logger.Warn(ctx, "engine", "classify.error",
			slog.String("error", err.Error()))
		rec = emotion.Record{Primary: emotion.Neutral, Intensity: 3, Timestamp: now}
	}

	hasCrisis := crisis.Detect(text)

	st := state.Update(sess.State, rec.Primary, rec.Intensity, 0)
	sess.State = &st

	sess.Memory.Record(rec.Primary, rec.Intensity, text, text, now)

	next := therapy.Next(sess.Therapy, rec.Primary, rec.Intensity, hasCrisis, now)
	sess.Therapy = therapy.Apply(sess.Therapy, next, now)

	logger.Debug(ctx, "engine", "pipeline.reading",
		slog.String("emotion", rec.Primary),
		slog.Int("intensity", rec.Intensity),
		slog.String("trend", string(st.Trend)),
		slog.String("therapy_state", string(next)),
		slog.Bool("crisis", hasCrisis))

	directives := adapt.Respond(st, sess.TonePreference)

	var reply string
	if hasCrisis {
		reply = crisis.SupportResources
	} else {
		reply, err = a.reply.Reply(ctx, responder.Request{
			Text:       text,
			Emotion:    rec.Primary,
			Intensity:  rec.Intensity,
			Stress:     st.StressLevel,
			Therapy:    therapy.Prompt(next, rec.Primary, rec.Intensity),
			Directives: directives,
			Cues:       sess.Memory.Relevant(rec.Primary, text, now),
			History:    sess.RecentHistory(historyTurns),
		})
		if err != nil {
			logger.Error(ctx, "responder", "reply.error",
				slog.String("error", err.Error()))
			reply = "Я рядом и слушаю тебя. Расскажи, что происходит?"
		}
	}

	sess.AppendHistory("user", text, now)
	sess.AppendHistory("assistant", reply, now)

	return reply, directives
}

// loadOrCreate returns the chat's session, starting a fresh one when the
// store has none or fails to load it.
func (a *App) loadOrCreate(ctx context.Context, chatID int64, now time.Time) *session.Session {
	sess, err := a.store.Get(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "store", "session.get",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}
	if sess == nil {
		sess = session.New(chatID, now)
	}
	return sess
}
