package bot

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/mindberry/teplo/bot/report"
	"github.com/mindberry/teplo/core/buildinfo"
	"github.com/mindberry/teplo/core/logger"
	coretelegram "github.com/mindberry/teplo/core/telegram"
	"github.com/mindberry/teplo/core/telegram/callbacks"
	"github.com/mindberry/teplo/core/telegram/commands"
	"github.com/mindberry/teplo/core/telegram/format"
	tghelpers "github.com/mindberry/teplo/core/telegram/helpers"
	"github.com/mindberry/teplo/core/telegram/keyboard"
	"github.com/mindberry/teplo/engine/adapt"
	"github.com/mindberry/teplo/engine/analytics"
)

const welcomeGreeting = "Привет! Я бот эмоциональной поддержки 💙"

const welcomeText = `Просто напиши, что ты сейчас чувствуешь или что произошло — я выслушаю и помогу разобраться.

Команды:
/report — эмоциональный анализ за неделю
/tone — выбрать тон общения
/digest — включить или выключить еженедельный дайджест
/reset — начать разговор заново
/help — справка`

const helpText = `📖 *Как со мной разговаривать*

Пиши обычными сообщениями — я распознаю эмоцию, запоминаю важные моменты и подстраиваю ответы под твое состояние.

*Команды:*
/start — начать работу
/report — эмоциональный анализ за неделю
/tone — выбрать тон общения
/digest — еженедельный дайджест вкл/выкл
/reset — стереть сессию и начать заново
/help — эта справка

Это не замена профессиональной терапии. Если тебе очень тяжело — обратись к специалисту.`

var toneLabels = []struct {
	tone  adapt.Tone
	label string
}{
	{adapt.ToneWarm, "🤗 Теплый"},
	{adapt.ToneCalm, "😌 Спокойный"},
	{adapt.ToneSupportive, "💪 Поддерживающий"},
	{adapt.ToneGentle, "🕊 Бережный"},
	{adapt.ToneHumorous, "😄 С юмором"},
}

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Начать работу с ботом",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.cmdHelp,
		Description: "Справка",
	})
	reg.RegisterCommand("/report", commands.Command{
		Handler:     a.cmdReport,
		Description: "Эмоциональный анализ за неделю",
	})
	reg.RegisterCommand("/tone", commands.Command{
		Handler:     a.cmdTone,
		Description: "Выбрать тон общения",
	})
	reg.RegisterCommand("/digest", commands.Command{
		Handler:     a.cmdDigest,
		Description: "Еженедельный дайджест вкл/выкл",
	})
	reg.RegisterCommand("/reset", commands.Command{
		Handler:     a.cmdReset,
		Description: "Начать разговор заново",
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler:     a.cmdStatus,
		Description: "Статус сервиса",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) {
	if err := reg.RegisterCallback("tone", a.cbTone); err != nil {
		logger.TWire.Warn("callback registration failed",
			slog.String("key", "tone"),
			slog.String("err", err.Error()))
	}
}

func (a *App) cmdStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	now := a.clock()

	mu := a.locks.forChat(c.Chat().ID)
	mu.Lock()
	defer mu.Unlock()

	sess := a.loadOrCreate(ctx, c.Chat().ID, now)
	if err := a.store.Put(ctx, sess); err != nil {
		logger.Error(ctx, "store", "session.put",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("error", err.Error()))
	}

	greeting := welcomeGreeting
	if u := c.Sender(); u != nil && strings.TrimSpace(u.FirstName) != "" {
		if name, err := format.EscapeMarkdown(u.FirstName, format.MarkdownV1, ""); err == nil {
			greeting = fmt.Sprintf("Привет, %s! Я бот эмоциональной поддержки 💙", name)
		}
	}
	return tghelpers.SendMD(c, greeting+"\n\n"+welcomeText)
}

func (a *App) cmdHelp(c tele.Context) error {
	return tghelpers.SendMD(c, helpText)
}

func (a *App) cmdReport(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	now := a.clock()

	mu := a.locks.forChat(c.Chat().ID)
	mu.Lock()
	defer mu.Unlock()

	sess := a.loadOrCreate(ctx, c.Chat().ID, now)
	rep := analytics.AnalyzeTrends(sess.Memory, now)
	return tghelpers.SendMD(c, report.Format(rep))
}

func (a *App) cmdTone(c tele.Context) error {
	buttons := make([]keyboard.InlineBtn, 0, len(toneLabels))
	for _, t := range toneLabels {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   t.label,
			Unique: "tone",
			Data:   string(t.tone),
		})
	}
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	return tghelpers.SendMD(c, "Каким тоном мне лучше с тобой говорить?", markup)
}

func (a *App) cbTone(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	now := a.clock()

	choice := adapt.Tone(callbacks.CallbackPayload(c))
	label := ""
	for _, t := range toneLabels {
		if t.tone == choice {
			label = t.label
			break
		}
	}
	if label == "" {
		return c.Respond(&tele.CallbackResponse{Text: "Неизвестный тон"})
	}

	mu := a.locks.forChat(c.Chat().ID)
	mu.Lock()
	defer mu.Unlock()

	sess := a.loadOrCreate(ctx, c.Chat().ID, now)
	sess.TonePreference = choice
	if err := a.store.Put(ctx, sess); err != nil {
		logger.Error(ctx, "store", "session.put",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("error", err.Error()))
	}

	return tghelpers.EditOrSendMD(c, fmt.Sprintf("Понял, буду говорить так: %s", label))
}

func (a *App) cmdDigest(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	now := a.clock()

	mu := a.locks.forChat(c.Chat().ID)
	mu.Lock()
	defer mu.Unlock()

	sess := a.loadOrCreate(ctx, c.Chat().ID, now)
	sess.DigestEnabled = !sess.DigestEnabled
	if err := a.store.Put(ctx, sess); err != nil {
		logger.Error(ctx, "store", "session.put",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("error", err.Error()))
	}

	if sess.DigestEnabled {
		return tghelpers.SendText(c, "Еженедельный дайджест включен. Буду присылать анализ по воскресеньям 📊")
	}
	return tghelpers.SendText(c, "Еженедельный дайджест выключен.")
}

func (a *App) cmdReset(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	mu := a.locks.forChat(c.Chat().ID)
	mu.Lock()
	defer mu.Unlock()

	if err := a.store.Delete(ctx, c.Chat().ID); err != nil {
		logger.Error(ctx, "store", "session.delete",
			slog.Int64("chat_id", c.Chat().ID),
			slog.String("error", err.Error()))
		return tghelpers.SendText(c, "Не получилось сбросить сессию, попробуй еще раз.")
	}

	return tghelpers.SendText(c, "Сессия сброшена. Можем начать с чистого листа 🌱")
}

func (a *App) cmdStatus(c tele.Context) error {
	uptime := time.Since(a.startedAt).Round(time.Second)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	text := fmt.Sprintf(`📊 *Статус сервиса*

Версия: %s (%s)
Uptime: %s
Память: %d MB
Сессии: %s
Дайджест: %s`,
		buildinfo.Version, buildinfo.Commit,
		uptime,
		ms.HeapInuse/1024/1024,
		a.cfg.Sessions.Backend,
		onOff(a.cfg.Digest.Enabled),
	)
	return tghelpers.SendMD(c, text)
}

func onOff(v bool) string {
	if v {
		return "включен"
	}
	return "выключен"
}

func rejectAdminCommand(c tele.Context) error {
	return tghelpers.SendText(c, "❌ У тебя нет доступа к этой команде")
}
