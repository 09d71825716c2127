package telegram

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	pkgResponse "kairos/pkg/response"
	pkgTelegram "kairos/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: Telegram expects a response within a few seconds,
// while a single message may need LLM and database round trips.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning the goroutine to avoid data
	// races on the gin context.
	msg := update.Message

	go func() {
		// Detach from the request context, which is cancelled once the
		// 200 goes out.
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong handling that. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message: slash commands first,
// then the natural-language fallback chain.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	if msg.Document != nil && msg.Text == "" {
		return h.bot.SendMessage(msg.Chat.ID, "I can't read attachments yet. Paste the schedule as text after /import_schedule.")
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		return h.dispatchCommand(ctx, msg, text)
	}
	return h.handleFreeText(ctx, msg, text)
}

// reply sends text honoring the user's language and voice preferences.
func (h *handler) reply(ctx context.Context, userID, chatID int64, text string) error {
	lang := h.deps.Prefs.Language(userID)
	if lang != "en" {
		text = h.deps.QA.Translate(ctx, text, lang)
	}

	if h.deps.Prefs.TTS(userID) {
		audio, err := h.deps.TTS.Synthesize(ctx, stripMarkup(text), lang)
		if err != nil {
			h.l.Warnf(ctx, "telegram handler: tts synth failed: %v", err)
		} else if err := h.bot.SendVoice(chatID, audio, "reply.mp3"); err != nil {
			h.l.Warnf(ctx, "telegram handler: send voice failed: %v", err)
		}
	}
	return h.bot.SendMessageWithMode(chatID, text, "Markdown")
}

// stripMarkup removes the markdown markers before speech synthesis.
func stripMarkup(s string) string {
	return strings.NewReplacer("*", "", "_", "", "`", "").Replace(s)
}
