package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"personal-ops-assistant/internal/command"
	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/internal/task"
	pkgLog "personal-ops-assistant/pkg/log"
	pkgResponse "personal-ops-assistant/pkg/response"
	pkgTelegram "personal-ops-assistant/pkg/telegram"
)

type handler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      *pkgTelegram.Bot
	scope    model.Scope
	security *SecurityValidator
}

const helpText = `*Commands*
` + "`tarea: <text>`" + ` — create a task (add high/alta/p1 or low/baja/p3 for priority)
` + "`top`" + ` — top open tasks
` + "`hoy`" + ` / ` + "`today`" + ` — today's tasks and events
` + "`done <n>`" + ` — mark task n done
` + "`event: title / when / minutes / loc: … / desc: … / invite: a@b.com / task: …`" + ` — schedule an event
Examples of *when*: "tomorrow 9am", "hoy 15:30", "2025-06-11 9:00"`

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine to stay within Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateSecretToken(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	if h.security.IsDuplicate(update.UpdateID) {
		pkgResponse.OK(c, map[string]string{"status": "duplicate"})
		return
	}

	msg := update.Message
	if msg.From != nil {
		if err := h.security.CheckRateLimit(msg.From.ID); err != nil {
			h.l.Warnf(ctx, "telegram handler: %v", err)
			pkgResponse.TooManyRequests(c)
			return
		}
	}

	// Process in a goroutine and return 200 immediately to Telegram.
	go func() {
		// Detach from the HTTP request context, which is cancelled after
		// the response is written.
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong handling that. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage classifies a single chat message and dispatches it to the
// matching usecase operation. Parse and validation failures are converted to
// chat replies here; they are never retried.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	if msg.Text == "/start" {
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"👋 Welcome! I manage your tasks and calendar.\n\n"+helpText, "Markdown")
	}

	intent := command.Classify(msg.Text)

	switch intent.Kind {
	case command.IntentCreateTask:
		return h.replyCreateTask(ctx, msg.Chat.ID, intent.Payload)
	case command.IntentListTop:
		return h.replyListTop(ctx, msg.Chat.ID)
	case command.IntentListToday:
		return h.replyListToday(ctx, msg.Chat.ID)
	case command.IntentMarkDone:
		return h.replyMarkDone(ctx, msg.Chat.ID, intent.Payload)
	case command.IntentCreateEvent:
		return h.replyCreateEvent(ctx, msg.Chat.ID, intent.Payload)
	default:
		return h.bot.SendMessageWithMode(msg.Chat.ID, helpText, "Markdown")
	}
}

func (h *handler) replyCreateTask(ctx context.Context, chatID int64, payload string) error {
	created, err := h.uc.CreateTask(ctx, h.scope, task.CreateTaskInput{Text: payload, Source: model.TaskSourceChat})
	if err != nil {
		return h.bot.SendMessage(chatID, userMessage(err))
	}
	return h.bot.SendMessage(chatID, fmt.Sprintf("✅ Task #%d created (P%d): %s", created.Seq, created.Priority, created.Title))
}

func (h *handler) replyListTop(ctx context.Context, chatID int64) error {
	tasks, err := h.uc.ListTop(ctx, h.scope)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ListTop failed: %v", err)
		return h.bot.SendMessage(chatID, userMessage(err))
	}
	if len(tasks) == 0 {
		return h.bot.SendMessage(chatID, "No open tasks. 🎉")
	}

	var b strings.Builder
	b.WriteString("📌 Top tasks\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "%d. %s (P%d)\n", t.Seq, t.Title, t.Priority)
	}
	return h.bot.SendMessage(chatID, b.String())
}

func (h *handler) replyListToday(ctx context.Context, chatID int64) error {
	today, err := h.uc.ListToday(ctx, h.scope)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ListToday failed: %v", err)
		return h.bot.SendMessage(chatID, userMessage(err))
	}

	var b strings.Builder
	b.WriteString("📅 Today\n")
	if len(today.Tasks) == 0 && len(today.Events) == 0 {
		b.WriteString("Nothing on the books today.")
	}
	for _, t := range today.Tasks {
		fmt.Fprintf(&b, "%d. %s (P%d)\n", t.Seq, t.Title, t.Priority)
	}
	for _, ev := range today.Events {
		line := fmt.Sprintf("• %s %s", ev.Start, ev.Summary)
		if ev.Location != "" {
			line += fmt.Sprintf(" (%s)", ev.Location)
		}
		b.WriteString(line + "\n")
	}
	return h.bot.SendMessage(chatID, b.String())
}

func (h *handler) replyMarkDone(ctx context.Context, chatID int64, payload string) error {
	updated, err := h.uc.MarkDone(ctx, h.scope, payload)
	if err != nil {
		return h.bot.SendMessage(chatID, userMessage(err))
	}
	return h.bot.SendMessage(chatID, fmt.Sprintf("✅ Done: #%d %s", updated.Seq, updated.Title))
}

func (h *handler) replyCreateEvent(ctx context.Context, chatID int64, payload string) error {
	out, err := h.uc.CreateEvent(ctx, h.scope, task.CreateEventInput{RawText: payload})
	if err != nil {
		return h.bot.SendMessage(chatID, userMessage(err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Scheduled: %s\n%s – %s",
		out.Request.Title,
		out.Request.StartLocal.Format("Mon 2006-01-02 15:04"),
		out.Request.EndLocal.Format("15:04"),
	)
	if out.EventLink != "" {
		fmt.Fprintf(&b, "\n%s", out.EventLink)
	}
	if out.AttendeesDropped {
		b.WriteString("\n⚠️ Invitees were rejected by the calendar; event created without them.")
	}
	if out.LinkedTask != nil {
		fmt.Fprintf(&b, "\n🔗 Linked task #%d: %s", out.LinkedTask.Seq, out.LinkedTask.Title)
	}
	return h.bot.SendMessage(chatID, b.String())
}
