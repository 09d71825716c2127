package telegram

import (
	"github.com/gin-gonic/gin"

	"kairos/internal/analytics"
	"kairos/internal/habit"
	"kairos/internal/notify"
	"kairos/internal/pomodoro"
	"kairos/internal/prefs"
	"kairos/internal/qa"
	"kairos/internal/router"
	"kairos/internal/task"
	pkgLog "kairos/pkg/log"
	pkgTelegram "kairos/pkg/telegram"
	pkgTTS "kairos/pkg/tts"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Deps carries everything the handler dispatches to.
type Deps struct {
	Tasks    task.UseCase
	Habits   *habit.Service
	Reporter *analytics.Reporter
	Pomodoro *pomodoro.Manager
	Notify   *notify.Service
	Router   *router.Router
	QA       *qa.Responder
	Prefs    *prefs.Store
	TTS      *pkgTTS.Client
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, bot *pkgTelegram.Bot, deps Deps) Handler {
	return &handler{
		l:    l,
		bot:  bot,
		deps: deps,
	}
}

type handler struct {
	l    pkgLog.Logger
	bot  *pkgTelegram.Bot
	deps Deps
}
