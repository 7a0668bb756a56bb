// Package bot assembles the Telegram application: command handlers, the
// per-message therapy pipeline, the tone keyboard and the digest scheduler,
// all on top of the shared telegram runtime.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/mindberry/teplo/bot/classifier"
	"github.com/mindberry/teplo/bot/digest"
	"github.com/mindberry/teplo/bot/responder"
	"github.com/mindberry/teplo/core/config"
	coretelegram "github.com/mindberry/teplo/core/telegram"
	"github.com/mindberry/teplo/core/telegram/router"
	"github.com/mindberry/teplo/engine/session"
	storepostgres "github.com/mindberry/teplo/store/postgres"
)

// App wires the engine, the external model clients and the session store
// into a runnable Telegram bot.
type App struct {
	cfg   *config.Config
	store session.Store

	classify classifier.Classifier
	reply    responder.Generator

	locks chatLocks
	clock func() time.Time
	// silenceDelay is the pacing pause before replies to acute messages.
	silenceDelay time.Duration

	startedAt    time.Time
	digestCancel context.CancelFunc
}

// New builds the application. db may be nil when sessions.backend is memory.
func New(cfg *config.Config, db *sqlx.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}

	var store session.Store
	switch cfg.Sessions.Backend {
	case config.SessionsPostgres:
		if db == nil {
			return nil, fmt.Errorf("bot: postgres backend requires a database connection")
		}
		store = storepostgres.New(db)
	default:
		store = session.NewMemoryStore()
	}

	classifierCfg := cfg.OpenAI
	classifierCfg.Model = cfg.OpenAI.ClassifierModel

	return &App{
		cfg:          cfg,
		store:        store,
		classify:     classifier.NewOpenAI(classifierCfg),
		reply:        responder.NewOpenAI(cfg.OpenAI),
		clock:        time.Now,
		silenceDelay: 1500 * time.Millisecond,
		startedAt:    time.Now(),
	}, nil
}

// CoreConfig exposes the embedded configuration for the shared runner.
func (a *App) CoreConfig() *config.Config {
	return a.cfg
}

// TelegramRunOptions assembles routes, middlewares and lifecycle hooks for
// the shared telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)
	reg.SetTextFallback(a.handleMessage)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: rejectAdminCommand,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(_ context.Context, rt coretelegram.Runtime) error {
	if !a.cfg.Digest.Enabled {
		return nil
	}

	bot := rt.Bot
	send := func(_ context.Context, chatID int64, text string) error {
		_, err := bot.Send(&tele.Chat{ID: chatID}, text,
			&tele.SendOptions{ParseMode: tele.ModeMarkdown})
		return err
	}

	sched, err := digest.New(a.cfg.Digest, a.store, send)
	if err != nil {
		return err
	}

	// The scheduler outlives individual updates; it stops at onStop, not
	// with the update context.
	dctx, cancel := context.WithCancel(context.Background())
	a.digestCancel = cancel
	go sched.Run(dctx)
	return nil
}

func (a *App) onStop(context.Context, coretelegram.Runtime) error {
	if a.digestCancel != nil {
		a.digestCancel()
	}
	return nil
}

// chatLocks serializes the load-update-store cycle per chat. The engine's
// session mutations are not safe under concurrent updates for one chat.
type chatLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func (l *chatLocks) forChat(chatID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = make(map[int64]*sync.Mutex)
	}
	cl, ok := l.m[chatID]
	if !ok {
		cl = &sync.Mutex{}
		l.m[chatID] = cl
	}
	return cl
}
